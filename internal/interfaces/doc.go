// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - CatalogStore: author and book substring queries (internal/http/stores.go)
//   - BookReader: single book lookup (internal/http/stores.go)
//   - Pinger: database health (internal/http/stores.go)
//   - CoverReferences: cover references still in use (internal/scheduler/cover_cleanup.go)
//
// ## Cover Storage Interfaces
//
//   - CoverResolver: reference to file path (internal/http/stores.go)
//   - CoverStore: orphan listing and removal (internal/scheduler/cover_cleanup.go)
//
// All of them are implemented by *database.Database or *covers.Store.
//
// # Adding a New Searchable Book Field
//
//  1. Add the column to entities.Book and to BookRecord.
//
//  2. Add a query.Field constant, list it in the allow-list and map it in
//     Field.Column.
//
//  3. The catalog repository picks it up through Field.Column; no handler
//     changes are needed.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the current list.
package interfaces
