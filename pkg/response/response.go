// Package response writes the JSON envelope shared by every ShareIt endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// Envelope is the body of every response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 validation failure.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Error: &ErrorBody{Code: string(domain.KindValidation), Message: message},
	})
}

// BadGateway writes a 502 for an upstream that could not be reached.
func BadGateway(c *gin.Context, message string) {
	c.JSON(http.StatusBadGateway, Envelope{
		Error: &ErrorBody{Code: "UPSTREAM_ERROR", Message: message},
	})
}

// ServiceUnavailable writes a 503 when an upstream is refused without being called.
func ServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, Envelope{
		Error: &ErrorBody{Code: "UPSTREAM_UNAVAILABLE", Message: message},
	})
}

// Error maps err to a status code. Errors that are not domain errors become 500
// and their message is not exposed.
func Error(c *gin.Context, err error) {
	var de *domain.DomainError
	if !errors.As(err, &de) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, Envelope{
			Error: &ErrorBody{Code: "INTERNAL", Message: "internal server error"},
		})
		return
	}
	c.JSON(StatusFor(de.Kind), Envelope{
		Error: &ErrorBody{Code: string(de.Kind), Message: de.Message},
	})
}

// StatusFor returns the HTTP status for an error kind.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation, domain.KindLogical:
		return http.StatusBadRequest
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
