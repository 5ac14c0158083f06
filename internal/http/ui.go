package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UIController struct {
	version string
}

func NewUIController(version string) *UIController {
	return &UIController{
		version: version,
	}
}

// CollectionPage renders the collection page. Books are loaded by the page
// itself through the book endpoint.
func (controller *UIController) CollectionPage(c *gin.Context) {
	c.HTML(http.StatusOK, "collection", gin.H{
		"Version": controller.version,
	})
}
