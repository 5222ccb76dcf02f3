package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexPage renders the landing page with navigation to the operator surfaces.
func IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}
