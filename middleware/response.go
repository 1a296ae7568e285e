// Package middleware holds the request chain shared by the admin and shop
// services.
package middleware

import "github.com/gin-gonic/gin"

// Context keys populated by the middleware chain.
const (
	RequestIDKey = "request_id"
	CookiesKey   = "cookies"
	BodyKey      = "body"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Success: false, Message: message})
}
