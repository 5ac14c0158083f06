// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, delegation
//	└── catalog/         # Author and book queries and administration
//
// The Database struct owns the GORM connection and delegates to the catalog
// repository, so HTTP handlers and CLI commands depend on a single handle:
//
//	db, err := database.NewDatabase("./bookcollection.db", logger.Warn)
//	authors, err := db.SearchAuthors("tolkien")
//	books, err := db.FilterBooks([]query.Filter{{Field: query.FieldName, Value: "hobbit"}})
//
// # Schema
//
// Authors and books are linked through the book_authors join table. Deleting
// an author only removes its join rows; books are never deleted with it.
package database
