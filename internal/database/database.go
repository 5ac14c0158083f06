package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookcollection/internal/database/catalog"
	"github.com/mrlokans/bookcollection/internal/entities"
	"github.com/mrlokans/bookcollection/internal/query"
)

type Database struct {
	DB      *gorm.DB
	catalog *catalog.Repository
}

// ParseLogLevel maps a config value to a GORM log level. Unknown values fall
// back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewDatabase(dbPath string, logLevel logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Creates book_authors through the many2many tag on Book
	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{
		DB:      db,
		catalog: catalog.NewRepository(db),
	}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// --- Catalog (delegates to catalog.Repository) ---

func (d *Database) SearchAuthors(name string) ([]entities.Author, error) {
	return d.catalog.SearchAuthors(name)
}

func (d *Database) FilterBooks(filters []query.Filter) ([]entities.Book, error) {
	return d.catalog.FilterBooks(filters)
}

func (d *Database) CreateAuthor(name string) (*entities.Author, error) {
	return d.catalog.CreateAuthor(name)
}

func (d *Database) GetOrCreateAuthor(name string) (*entities.Author, error) {
	return d.catalog.GetOrCreateAuthor(name)
}

func (d *Database) GetAuthorByID(id uint) (*entities.Author, error) {
	return d.catalog.GetAuthorByID(id)
}

func (d *Database) DeleteAuthor(id uint) error {
	return d.catalog.DeleteAuthor(id)
}

func (d *Database) CreateBook(book *entities.Book) error {
	return d.catalog.CreateBook(book)
}

func (d *Database) GetBookByID(id uint) (*entities.Book, error) {
	return d.catalog.GetBookByID(id)
}

func (d *Database) ListCoverRefs() ([]string, error) {
	return d.catalog.ListCoverRefs()
}
