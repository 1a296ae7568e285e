package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// JSONBodyMiddleware parses JSON request bodies before routing. Bodies larger
// than limit get 413; malformed JSON, or a top-level value that is neither an
// object nor an array, gets 400. The parsed value is stored under BodyKey and
// the raw bytes are put back so handlers can bind them again.
func JSONBodyMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody || !isJSON(c.ContentType()) {
			c.Next()
			return
		}

		raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortWithMessage(c, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			abortWithMessage(c, http.StatusBadRequest, "Unable to read request body")
			return
		}

		var parsed any
		trimmed := bytes.TrimSpace(raw)
		switch {
		case len(trimmed) == 0:
			parsed = map[string]any{}
		case trimmed[0] != '{' && trimmed[0] != '[':
			abortWithMessage(c, http.StatusBadRequest, "Request body must be a JSON object or array")
			return
		default:
			if err := json.Unmarshal(trimmed, &parsed); err != nil {
				abortWithMessage(c, http.StatusBadRequest, "Malformed JSON in request body")
				return
			}
		}

		c.Set(BodyKey, parsed)
		c.Request.Body = io.NopCloser(bytes.NewReader(raw))
		c.Next()
	}
}

// Body returns the parsed JSON body, or nil when the request had none.
func Body(c *gin.Context) any {
	v, _ := c.Get(BodyKey)
	return v
}

func isJSON(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}
