package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/internal/application"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"github.com/shareit-hub/service-shareit/pkg/response"
)

// defaultState is used when the state query parameter is absent.
const defaultState = "ALL"

// BookingService is the booking use-case surface the handler needs.
type BookingService interface {
	CreateBooking(ctx context.Context, callerID int64, req application.CreateBookingRequest) (*application.BookingView, error)
	UpdateBooking(ctx context.Context, actorID, bookingID int64, approve bool) (*application.BookingView, error)
	GetBooking(ctx context.Context, requesterID, bookingID int64) (*application.BookingView, error)
	ListForBooker(ctx context.Context, callerID int64, state string) ([]application.BookingView, error)
	ListForOwner(ctx context.Context, callerID int64, state string) ([]application.BookingView, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.RequireUserID())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateBooking handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForBooker handles GET /bookings?state=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListForBooker(c.Request.Context(), userID, stateParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListForOwner handles GET /bookings/owner?state=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListForOwner(c.Request.Context(), userID, stateParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// stateParam treats an empty state the same as a missing one.
func stateParam(c *gin.Context) string {
	if s := c.Query("state"); s != "" {
		return s
	}
	return defaultState
}
