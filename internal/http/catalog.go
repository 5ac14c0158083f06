package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcollection/internal/entities"
	"github.com/mrlokans/bookcollection/internal/query"
)

// CatalogController serves the author and book query endpoints. Both accept
// only POST; every validation failure is a plain-text 200 response.
type CatalogController struct {
	store CatalogStore
}

func NewCatalogController(store CatalogStore) *CatalogController {
	return &CatalogController{
		store: store,
	}
}

// AuthorEndpoint returns the authors whose name contains the searched value.
// POST /probe/authorApi/ with body "author=<value>"
func (controller *CatalogController) AuthorEndpoint(c *gin.Context) {
	body, ok := readPostBody(c)
	if !ok {
		return
	}

	name, err := query.ParseAuthorQuery(body)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	authors, err := controller.store.SearchAuthors(name)
	if err != nil {
		respondQueryFailed(c, err, "search authors")
		return
	}

	c.JSON(http.StatusOK, authors)
}

// BookEndpoint returns the books matching every posted filter, with their
// authors flattened into one string.
// POST /probe/bookApi/ with body "name=<value>;author=<value>;..."
func (controller *CatalogController) BookEndpoint(c *gin.Context) {
	body, ok := readPostBody(c)
	if !ok {
		return
	}

	filters, err := query.ParseBookQuery(body)
	if err != nil {
		respondQueryError(c, err)
		return
	}

	books, err := controller.store.FilterBooks(filters)
	if err != nil {
		respondQueryFailed(c, err, "filter books")
		return
	}

	c.JSON(http.StatusOK, entities.NewBookRecords(books))
}
