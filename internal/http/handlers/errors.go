package handlers

import (
	"net/http"

	"fleetops/internal/domain"
	"fleetops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

var kindStatus = map[string]int{
	domain.KindValidation:           http.StatusBadRequest,
	domain.KindUniqueConstraint:     http.StatusConflict,
	domain.KindReferentialIntegrity: http.StatusConflict,
	domain.KindAlreadyRegistered:    http.StatusConflict,
	domain.KindNotRegistered:        http.StatusNotFound,
	domain.KindCapacityExceeded:     http.StatusConflict,
	domain.KindNotFound:             http.StatusNotFound,
	domain.KindInternal:             http.StatusInternalServerError,
}

// StatusForKind maps an error kind to its HTTP status.
func StatusForKind(kind string) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal details stay in the logs.
func RespondDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == domain.KindInternal {
		msg = "terjadi kesalahan pada server"
	}
	respondError(c, StatusForKind(kind), kind, msg)
}
