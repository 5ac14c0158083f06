package http

import (
	"github.com/mrlokans/bookcollection/internal/entities"
	"github.com/mrlokans/bookcollection/internal/query"
)

// CatalogStore answers the substring queries of the catalog endpoints.
// Implemented by *database.Database.
type CatalogStore interface {
	SearchAuthors(name string) ([]entities.Author, error)
	FilterBooks(filters []query.Filter) ([]entities.Book, error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping() error
}

// BookReader loads a single book.
type BookReader interface {
	GetBookByID(id uint) (*entities.Book, error)
}

// CoverResolver maps a stored cover reference to a file on disk.
// Implemented by *covers.Store.
type CoverResolver interface {
	Path(ref string) (string, error)
}
