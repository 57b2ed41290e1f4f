// Package response writes the JSON envelope every endpoint answers with.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

// Body is the envelope shared by all responses.
type Body struct {
	Success bool        `json:"success"`
	Refused bool        `json:"refused,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed or refused request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// Created writes a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

// Unauthorized writes a 401 response and aborts the chain.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Body{
		Error: &ErrorBody{Code: "UNAUTHORIZED", Message: message},
	})
}

// Forbidden writes a 403 response and aborts the chain.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Body{
		Error: &ErrorBody{Code: "FORBIDDEN", Message: message},
	})
}

// Refused writes a business refusal. Only a schedule conflict carries a
// non-2xx status; the other refusals are ordinary answers.
func Refused(c *gin.Context, r *apperror.Refusal) {
	status := http.StatusOK
	if r.Reason == apperror.ReasonScheduleConflict {
		status = http.StatusConflict
	}
	c.JSON(status, Body{
		Refused: true,
		Error:   &ErrorBody{Code: string(r.Reason), Message: r.Message},
	})
}

// Error maps an error returned by the application layer onto a response.
// Unknown errors are store failures: they are logged and hidden from the caller.
func Error(c *gin.Context, err error) {
	var (
		refusal      *apperror.Refusal
		validation   *apperror.ValidationError
		notFound     *apperror.NotFoundError
		forbidden    *apperror.ForbiddenError
		unauthorized *apperror.UnauthorizedError
	)

	switch {
	case errors.As(err, &refusal):
		Refused(c, refusal)
	case errors.As(err, &validation):
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", validation.Message)
	case errors.As(err, &notFound):
		fail(c, http.StatusNotFound, "NOT_FOUND", notFound.Error())
	case errors.As(err, &forbidden):
		fail(c, http.StatusForbidden, "FORBIDDEN", forbidden.Message)
	case errors.As(err, &unauthorized):
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", unauthorized.Message)
	default:
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "something went wrong, please try again later")
	}
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Body{Error: &ErrorBody{Code: code, Message: message}})
}
