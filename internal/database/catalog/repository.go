// Package catalog provides database operations for authors and books.
//
// Searches are case-insensitive substring matches. Wildcard characters in
// the searched value are escaped, so "50%" only matches a literal "50%".
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	books, err := repo.FilterBooks([]query.Filter{
//		{Field: query.FieldName, Value: "hobbit"},
//		{Field: query.FieldAuthor, Value: "tolkien"},
//	})
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcollection/internal/entities"
	"github.com/mrlokans/bookcollection/internal/query"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const containsClause = "LOWER(%s) LIKE LOWER(?) ESCAPE '\\'"

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// Repository handles all author and book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SearchAuthors returns authors whose name contains name, ordered by ID.
func (r *Repository) SearchAuthors(name string) ([]entities.Author, error) {
	authors := []entities.Author{}
	err := r.db.Where(fmt.Sprintf(containsClause, "name"), containsPattern(name)).
		Order("id ASC").
		Find(&authors).Error
	return authors, err
}

// FilterBooks returns the books matching every filter, ordered by ID, with
// their authors preloaded. An author filter keeps a book when at least one
// of its authors matches; the book is still returned once.
func (r *Repository) FilterBooks(filters []query.Filter) ([]entities.Book, error) {
	tx := r.db.Model(&entities.Book{}).Preload("Authors", func(db *gorm.DB) *gorm.DB {
		return db.Order("authors.id ASC")
	})

	for _, f := range filters {
		pattern := containsPattern(f.Value)
		if f.Field == query.FieldAuthor {
			tx = tx.Where("books.id IN (?)", r.authorBookIDs(pattern))
			continue
		}
		column := f.Field.Column()
		if column == "" {
			return nil, fmt.Errorf("unsupported filter field %q", f.Field)
		}
		tx = tx.Where(fmt.Sprintf(containsClause, "books."+column), pattern)
	}

	books := []entities.Book{}
	err := tx.Order("books.id ASC").Find(&books).Error
	return books, err
}

// authorBookIDs builds a subquery selecting IDs of books that have an author
// whose name matches pattern.
func (r *Repository) authorBookIDs(pattern string) *gorm.DB {
	return r.db.Table("book_authors").
		Select("book_authors.book_id").
		Joins("JOIN authors ON authors.id = book_authors.author_id").
		Where(fmt.Sprintf(containsClause, "authors.name"), pattern)
}

// CreateAuthor creates a new author.
func (r *Repository) CreateAuthor(name string) (*entities.Author, error) {
	author := &entities.Author{Name: name}
	if err := r.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

// GetOrCreateAuthor retrieves an author by exact name or creates it.
func (r *Repository) GetOrCreateAuthor(name string) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Where("name = ?", name).Order("id ASC").First(&author).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.CreateAuthor(name)
	}
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetAuthorByID retrieves an author by ID.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// DeleteAuthor detaches the author from all books and deletes it. The books
// themselves are kept.
func (r *Repository) DeleteAuthor(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var author entities.Author
		if err := tx.First(&author, id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM book_authors WHERE author_id = ?", id).Error; err != nil {
			return fmt.Errorf("detach author %d: %w", id, err)
		}
		return tx.Delete(&author).Error
	})
}

// CreateBook creates a book and links it to its authors. Authors without an
// ID are created alongside.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// GetBookByID retrieves a book with its authors.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Authors", func(db *gorm.DB) *gorm.DB {
		return db.Order("authors.id ASC")
	}).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListCoverRefs returns the cover reference of every book that has one.
func (r *Repository) ListCoverRefs() ([]string, error) {
	var refs []string
	err := r.db.Model(&entities.Book{}).Where("cover <> ''").Pluck("cover", &refs).Error
	return refs, err
}
