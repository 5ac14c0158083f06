package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Store      CatalogStore
	Database   Pinger
	BookReader BookReader

	// Resolves cover references for /api/books/:id/cover. Nil disables it.
	Covers CoverResolver

	// Directory served under /media (cover images). Empty disables it.
	MediaDir string

	// Application info
	Version string
}
