package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ObjectIDParamMiddleware rejects path params that are not MongoDB ObjectIDs
// and stores the parsed id under the param name.
func ObjectIDParamMiddleware(params ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, param := range params {
			id, err := bson.ObjectIDFromHex(c.Param(param))
			if err != nil {
				abortWithMessage(c, http.StatusBadRequest, "Invalid "+param)
				return
			}
			c.Set(param, id)
		}
		c.Next()
	}
}

// ObjectID returns an id stored by ObjectIDParamMiddleware.
func ObjectID(c *gin.Context, param string) bson.ObjectID {
	if v, ok := c.Get(param); ok {
		if id, ok := v.(bson.ObjectID); ok {
			return id
		}
	}
	return bson.NilObjectID
}
