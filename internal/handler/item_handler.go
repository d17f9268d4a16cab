package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/internal/application"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"github.com/shareit-hub/service-shareit/pkg/response"
)

// ItemService is the item catalog surface the handler needs.
type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, req application.CreateItemRequest) (*application.ItemDTO, error)
	UpdateItem(ctx context.Context, actorID, itemID int64, req application.UpdateItemRequest) (*application.ItemDTO, error)
	GetItem(ctx context.Context, viewerID, itemID int64) (*application.ItemView, error)
	ListOwnerItems(ctx context.Context, ownerID int64) ([]application.ItemView, error)
	SearchItems(ctx context.Context, text string) ([]application.ItemDTO, error)
	AddComment(ctx context.Context, authorID, itemID int64, req application.CreateCommentRequest) (*application.CommentDTO, error)
}

// ItemHandler handles HTTP requests for items and their comments.
type ItemHandler struct {
	service ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	items.Use(middleware.RequireUserID())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListOwnerItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PATCH /items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	actorID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), actorID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	viewerID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), viewerID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwnerItems handles GET /items.
func (h *ItemHandler) ListOwnerItems(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwnerItems(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SearchItems handles GET /items/search?text=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	result, err := h.service.SearchItems(c.Request.Context(), c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	authorID, ok := callerID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), authorID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
