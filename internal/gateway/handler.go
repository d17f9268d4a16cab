package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"github.com/shareit-hub/service-shareit/pkg/response"
	"go.uber.org/zap"
)

// Handler validates incoming requests and forwards the valid ones to the server.
type Handler struct {
	client *ServerClient
	logger *zap.Logger
}

// NewHandler creates a new gateway Handler.
func NewHandler(client *ServerClient, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// RegisterRoutes mirrors the server's routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.passThrough)
		users.GET("/:id", h.withID(h.passThrough))
		users.PATCH("/:id", h.withID(h.UpdateUser))
		users.DELETE("/:id", h.withID(h.passThrough))
	}

	items := r.Group("/items")
	items.Use(middleware.RequireUserID())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.passThrough)
		items.GET("/search", h.passThrough)
		items.GET("/:id", h.withID(h.passThrough))
		items.PATCH("/:id", h.withID(h.UpdateItem))
		items.POST("/:id/comment", h.withID(h.AddComment))
	}

	bookings := r.Group("/bookings")
	bookings.Use(middleware.RequireUserID())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.passThrough)
		bookings.GET("/owner", h.passThrough)
		bookings.GET("/:id", h.withID(h.passThrough))
		bookings.PATCH("/:id", h.withID(h.UpdateBooking))
	}

	requests := r.Group("/requests")
	requests.Use(middleware.RequireUserID())
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.passThrough)
		requests.GET("/all", h.passThrough)
		requests.GET("/:id", h.withID(h.passThrough))
	}
}

// CreateUser handles POST /users.
func (h *Handler) CreateUser(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// UpdateUser handles PATCH /users/:id.
func (h *Handler) UpdateUser(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// CreateItem handles POST /items.
func (h *Handler) CreateItem(c *gin.Context) {
	var dto CreateItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// UpdateItem handles PATCH /items/:id.
func (h *Handler) UpdateItem(c *gin.Context) {
	var dto UpdateItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// AddComment handles POST /items/:id/comment.
func (h *Handler) AddComment(c *gin.Context) {
	var dto CommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// CreateBooking handles POST /bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var dto BookingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// UpdateBooking handles PATCH /bookings/:id?approved=.
func (h *Handler) UpdateBooking(c *gin.Context) {
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}
	h.forward(c, nil)
}

// CreateRequest handles POST /requests.
func (h *Handler) CreateRequest(c *gin.Context) {
	var dto ItemRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.forward(c, dto)
}

// passThrough forwards requests that carry no body to validate.
func (h *Handler) passThrough(c *gin.Context) {
	h.forward(c, nil)
}

// withID rejects non-numeric ids before they reach the server.
func (h *Handler) withID(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err != nil || id <= 0 {
			response.BadRequest(c, "invalid id: "+c.Param("id"))
			return
		}
		next(c)
	}
}

// forward relays the request path and query to the server and the server's reply to the client.
func (h *Handler) forward(c *gin.Context, body any) {
	call := Call{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Body:   body,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		call.UserID = userID
	}

	resp, err := h.client.Do(c.Request.Context(), call)
	if err != nil {
		h.logger.Error("failed to forward request",
			zap.String("method", call.Method),
			zap.String("path", call.Path),
			zap.Error(err),
		)
		if errors.Is(err, ErrUpstreamUnavailable) {
			response.ServiceUnavailable(c, err.Error())
			return
		}
		response.BadGateway(c, "shareit server did not respond")
		return
	}

	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}
	c.Data(resp.StatusCode, resp.ContentType, resp.Body)
}
