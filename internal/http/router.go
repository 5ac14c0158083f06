package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcollection/internal/web"
)

const (
	AuthorEndpointPath = "/probe/authorApi/"
	BookEndpointPath   = "/probe/bookApi/"
	CollectionPagePath = "/bookCollection/"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// Embedded templates are validated by the web package tests
	tmpl := template.Must(web.Templates(template.FuncMap{}))
	router.SetHTMLTemplate(tmpl)

	router.StaticFS("/static", http.FS(web.Static()))
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	catalog := NewCatalogController(cfg.Store)
	ui := NewUIController(cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Query endpoints check the method themselves so that every method gets
	// the same plain-text answer
	router.Any(AuthorEndpointPath, catalog.AuthorEndpoint)
	router.Any(BookEndpointPath, catalog.BookEndpoint)

	if cfg.Covers != nil && cfg.BookReader != nil {
		covers := NewCoversController(cfg.Covers, cfg.BookReader)
		router.GET("/api/books/:id/cover", covers.GetCover)
	}

	// UI routes
	router.GET("/", ui.CollectionPage)
	router.GET(CollectionPagePath, ui.CollectionPage)

	return router
}
