package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Code    int
	Message string
}

type HandlerFunc func(ctx *gin.Context) (any, *Error)

// ResolveEndpoint adapts a result-or-Error handler onto gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, err := h(ctx)
		if err != nil {
			ctx.JSON(err.Code, gin.H{"error": err.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
