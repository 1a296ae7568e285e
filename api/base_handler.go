// Package api holds the response envelope shared by the admin and shop
// routers.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type BaseResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Success bool   `json:"success"`
}

// Fail writes an unsuccessful envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, BaseResponse{Success: false, Message: message})
}

// InternalError records err on the context for the request logger and
// answers 500 without leaking it.
func InternalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	Fail(c, http.StatusInternalServerError, message)
}

// SplitList parses a comma separated query value, dropping blanks.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
