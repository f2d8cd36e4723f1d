package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerRootRoutes serves "/" on platform hosts. With a default store configured visitors are
// sent to it; otherwise the server reports its status.
func registerRootRoutes(r *gin.Engine, defaultStoreSlug string) {
	if defaultStoreSlug != "" {
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/"+defaultStoreSlug)
		})
		return
	}
	r.GET("/", getHome)
}

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Vehicle export storefront is running"})
}
