package middleware

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

// CookieMiddleware parses the Cookie header into a request-scoped map.
// Percent-encoded values are decoded; the first occurrence of a name wins.
func CookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies := make(map[string]string)
		for _, ck := range c.Request.Cookies() {
			if _, seen := cookies[ck.Name]; seen {
				continue
			}
			value := ck.Value
			if decoded, err := url.QueryUnescape(value); err == nil {
				value = decoded
			}
			cookies[ck.Name] = value
		}

		c.Set(CookiesKey, cookies)
		c.Next()
	}
}

// Cookies returns the parsed cookies of the request, never nil.
func Cookies(c *gin.Context) map[string]string {
	if v, ok := c.Get(CookiesKey); ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	return map[string]string{}
}
