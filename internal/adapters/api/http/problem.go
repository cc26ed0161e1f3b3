package http

import (
	"errors"
	"net/http"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/sdkerrors"
	"github.com/gin-gonic/gin"
)

const problemContentType = "application/problem+json"

// problem is an RFC 7807 body extended with the error kind and request id.
type problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	Kind      string `json:"kind"`
	RequestID string `json:"requestId,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrIndexOutOfBounds), errors.Is(err, domain.ErrNotDeployed):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRecordingInProgress):
		return http.StatusConflict
	}

	switch sdkerrors.KindOf(err) {
	case sdkerrors.KindValidation:
		return http.StatusBadRequest
	case sdkerrors.KindAuthorization:
		return http.StatusForbidden
	case sdkerrors.KindConnectivity:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeProblem(c *gin.Context, status int, err error) {
	_ = c.Error(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "internal error"
	}

	c.Header("Content-Type", problemContentType)
	c.AbortWithStatusJSON(status, problem{
		Type:      "about:blank",
		Title:     http.StatusText(status),
		Status:    status,
		Detail:    detail,
		Kind:      string(sdkerrors.KindOf(err)),
		RequestID: getRequestID(c),
	})
}

func writeError(c *gin.Context, err error) {
	writeProblem(c, statusFor(err), err)
}
