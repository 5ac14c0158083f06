package http

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CoversController handles book cover requests.
type CoversController struct {
	covers     CoverResolver
	bookReader BookReader
}

// NewCoversController creates a new CoversController.
func NewCoversController(covers CoverResolver, reader BookReader) *CoversController {
	return &CoversController{
		covers:     covers,
		bookReader: reader,
	}
}

// GetCover serves the stored cover of a book.
// GET /api/books/:id/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	book, err := cc.bookReader.GetBookByID(uint(id))
	if err != nil || book.Cover == "" {
		c.Status(http.StatusNotFound)
		return
	}

	coverPath, err := cc.covers.Path(book.Cover)
	if err != nil {
		log.Printf("Book %d has an invalid cover reference: %v", id, err)
		c.Status(http.StatusNotFound)
		return
	}
	if _, err := os.Stat(coverPath); err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(coverPath)
}
