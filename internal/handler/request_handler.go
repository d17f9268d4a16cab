package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/internal/application"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"github.com/shareit-hub/service-shareit/pkg/response"
)

// RequestService is the item request surface the handler needs.
type RequestService interface {
	CreateRequest(ctx context.Context, requestorID int64, req application.CreateItemRequestRequest) (*application.ItemRequestDTO, error)
	ListOwnRequests(ctx context.Context, requestorID int64) ([]application.ItemRequestDTO, error)
	ListOtherRequests(ctx context.Context, userID int64) ([]application.ItemRequestDTO, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*application.ItemRequestDTO, error)
}

// RequestHandler handles HTTP requests for item requests.
type RequestHandler struct {
	service RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item request routes.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	requests.Use(middleware.RequireUserID())
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListOwnRequests)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:id", h.GetRequest)
	}
}

// CreateRequest handles POST /requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListOwnRequests handles GET /requests.
func (h *RequestHandler) ListOwnRequests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwnRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOtherRequests handles GET /requests/all.
func (h *RequestHandler) ListOtherRequests(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOtherRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRequest handles GET /requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
