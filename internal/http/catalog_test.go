package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookcollection/internal/database"
	"github.com/mrlokans/bookcollection/internal/entities"
	"github.com/mrlokans/bookcollection/internal/query"
)

func setupCatalogTestDB(t *testing.T) *database.Database {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_catalog.db"), logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func seedTestCatalog(t *testing.T, db *database.Database) {
	t.Helper()
	tolkien, err := db.CreateAuthor("J. R. R. Tolkien")
	require.NoError(t, err)
	christopher, err := db.CreateAuthor("Christopher Tolkien")
	require.NoError(t, err)
	pratchett, err := db.CreateAuthor("Terry Pratchett")
	require.NoError(t, err)

	require.NoError(t, db.CreateBook(&entities.Book{
		Name:    "The Hobbit",
		Authors: []entities.Author{*tolkien},
		Cover:   "covers/the_hobbit_0a1b2c3d.jpg",
		DescEN:  strPtr("There and back again."),
	}))
	require.NoError(t, db.CreateBook(&entities.Book{
		Name:    "The Silmarillion",
		Authors: []entities.Author{*tolkien, *christopher},
	}))
	require.NoError(t, db.CreateBook(&entities.Book{
		Name:       "Guards! Guards!",
		Authors:    []entities.Author{*pratchett},
		SeriesName: strPtr("Discworld"),
	}))
	require.NoError(t, db.CreateBook(&entities.Book{
		Name:    "The Hobbit Companion",
		Authors: []entities.Author{*pratchett},
	}))
}

func postQuery(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	router.ServeHTTP(w, req)
	return w
}

func newCatalogRouter(store CatalogStore) *gin.Engine {
	controller := NewCatalogController(store)
	router := gin.New()
	router.Any("/probe/authorApi/", controller.AuthorEndpoint)
	router.Any("/probe/bookApi/", controller.BookEndpoint)
	return router
}

type failingStore struct{}

func (failingStore) SearchAuthors(string) ([]entities.Author, error) {
	return nil, errors.New("database is locked")
}

func (failingStore) FilterBooks([]query.Filter) ([]entities.Book, error) {
	return nil, errors.New("database is locked")
}

func TestCatalogController_AuthorEndpoint(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedTestCatalog(t, db)
	router := newCatalogRouter(db)

	t.Run("GET is rejected", func(t *testing.T) {
		w := postQuery(router, "GET", "/probe/authorApi/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Error: POST-Requests only!", w.Body.String())
	})

	t.Run("body without separator", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/authorApi/", "Tolkien")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Error: Bad POST-Body!", w.Body.String())
	})

	t.Run("wrong parameter", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/authorApi/", "name=Tolkien")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Error: Bad Parameter!", w.Body.String())
	})

	t.Run("returns matching authors", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/authorApi/", "author=tolkien")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var authors []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authors))
		require.Len(t, authors, 2)
		assert.Equal(t, map[string]any{"id": float64(1), "name": "J. R. R. Tolkien"}, authors[0])
		assert.Equal(t, map[string]any{"id": float64(2), "name": "Christopher Tolkien"}, authors[1])
	})

	t.Run("key is case-insensitive", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/authorApi/", "Author=PRATCHETT")

		var authors []entities.Author
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authors))
		require.Len(t, authors, 1)
		assert.Equal(t, "Terry Pratchett", authors[0].Name)
	})

	t.Run("no match is an empty array", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/authorApi/", "author=Rowling")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("segments after the first pair are ignored", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/authorApi/", "author=Terry=ignored")

		var authors []entities.Author
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authors))
		require.Len(t, authors, 1)
		assert.Equal(t, "Terry Pratchett", authors[0].Name)
	})

	t.Run("store failure", func(t *testing.T) {
		w := postQuery(newCatalogRouter(failingStore{}), "POST", "/probe/authorApi/", "author=x")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error: Query failed!", w.Body.String())
	})
}

func TestCatalogController_BookEndpoint(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedTestCatalog(t, db)
	router := newCatalogRouter(db)

	decode := func(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
		t.Helper()
		var books []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &books))
		return books
	}

	t.Run("GET is rejected", func(t *testing.T) {
		w := postQuery(router, "GET", "/probe/bookApi/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Error: POST-Requests only!", w.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Error: No Parameters given!", w.Body.String())
	})

	t.Run("malformed pair", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "name=Hobbit;author")

		assert.Equal(t, "Error: Bad POST-Body!", w.Body.String())
	})

	t.Run("parameter outside allow-list", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "foo=bar")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Error: Bad Parameter!", w.Body.String())
	})

	t.Run("name and author narrow the result", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "name=Hobbit;author=Tolkien")

		assert.Equal(t, http.StatusOK, w.Code)
		books := decode(t, w)
		require.Len(t, books, 1)
		assert.Equal(t, "The Hobbit", books[0]["name"])
		assert.Equal(t, "J. R. R. Tolkien", books[0]["author"])
	})

	t.Run("empty value lists every book", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "name=")

		assert.Len(t, decode(t, w), 4)
	})

	t.Run("author is a comma-joined string", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "author=tolkien")

		books := decode(t, w)
		require.Len(t, books, 2)
		for _, b := range books {
			_, isString := b["author"].(string)
			assert.True(t, isString, "author must be a string, got %T", b["author"])
		}
		assert.Equal(t, "J. R. R. Tolkien, Christopher Tolkien", books[1]["author"])
	})

	t.Run("response carries every book field", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "NAME=the hobbit;DESC_EN=back")

		books := decode(t, w)
		require.Len(t, books, 1)
		assert.Equal(t, map[string]any{
			"id":         float64(1),
			"name":       "The Hobbit",
			"author":     "J. R. R. Tolkien",
			"seriesName": nil,
			"cover":      "covers/the_hobbit_0a1b2c3d.jpg",
			"desc_de":    nil,
			"desc_en":    "There and back again.",
		}, books[0])
	})

	t.Run("series filter", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "seriesName=discworld")

		books := decode(t, w)
		require.Len(t, books, 1)
		assert.Equal(t, "Guards! Guards!", books[0]["name"])
		assert.Equal(t, "Discworld", books[0]["seriesName"])
	})

	t.Run("no match is an empty array", func(t *testing.T) {
		w := postQuery(router, "POST", "/probe/bookApi/", "name=Hobbit;author=Gaiman")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		w := postQuery(newCatalogRouter(failingStore{}), "POST", "/probe/bookApi/", "name=x")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error: Query failed!", w.Body.String())
	})
}
