package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/bookcollection/internal/config"
	"github.com/mrlokans/bookcollection/internal/covers"
	"github.com/mrlokans/bookcollection/internal/entities"
)

// AddBookCommand creates a book, its missing authors and imports its cover.
type AddBookCommand struct {
	Name         string
	Authors      []string
	SeriesName   string
	CoverSource  string
	DescDE       string
	DescEN       string
	DatabasePath string
	LogLevel     string
	MediaDir     string
	FetchTimeout time.Duration
}

func NewAddBookCommand(cfg *config.Config) *AddBookCommand {
	cfg = defaults(cfg)
	timeout := cfg.Media.CoverFetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AddBookCommand{
		DatabasePath: cfg.Database.Path,
		LogLevel:     cfg.Database.LogLevel,
		MediaDir:     cfg.Media.Dir,
		FetchTimeout: timeout,
	}
}

// splitAuthors splits a comma-separated author list, dropping blanks.
func splitAuthors(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (cmd *AddBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-book", flag.ContinueOnError)

	var authors string
	fs.StringVar(&cmd.Name, "name", "", "Title of the book (required)")
	fs.StringVar(&authors, "authors", "", "Comma-separated author names; unknown authors are created")
	fs.StringVar(&cmd.SeriesName, "series", "", "Series the book belongs to")
	fs.StringVar(&cmd.CoverSource, "cover", "", "Cover image: local file path or http(s) URL")
	fs.StringVar(&cmd.DescDE, "desc-de", "", "German summary")
	fs.StringVar(&cmd.DescEN, "desc-en", "", "English summary")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the catalog database")
	fs.StringVar(&cmd.MediaDir, "media", cmd.MediaDir, "Media directory for cover images")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-book -name <title> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s add-book -name \"Good Omens\" -authors \"Terry Pratchett, Neil Gaiman\" -cover ./good-omens.jpg\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s add-book -name \"Guards! Guards!\" -authors \"Terry Pratchett\" -series Discworld\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	if utf8.RuneCountInString(cmd.Name) > 200 {
		return fmt.Errorf("book name is longer than 200 characters")
	}
	if utf8.RuneCountInString(cmd.SeriesName) > 200 {
		return fmt.Errorf("series name is longer than 200 characters")
	}

	cmd.Authors = splitAuthors(authors)
	for _, name := range cmd.Authors {
		if utf8.RuneCountInString(name) > 100 {
			return fmt.Errorf("author name %q is longer than 100 characters", name)
		}
	}

	return nil
}

func (cmd *AddBookCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath, cmd.LogLevel)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	book := &entities.Book{
		Name:       cmd.Name,
		SeriesName: optional(cmd.SeriesName),
		DescDE:     optional(cmd.DescDE),
		DescEN:     optional(cmd.DescEN),
	}

	for _, name := range cmd.Authors {
		author, err := db.GetOrCreateAuthor(name)
		if err != nil {
			return fmt.Errorf("failed to resolve author %q: %w", name, err)
		}
		book.Authors = append(book.Authors, *author)
	}

	var store *covers.Store
	if cmd.CoverSource != "" {
		store, err = covers.NewStore(cmd.MediaDir, cmd.FetchTimeout)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), cmd.FetchTimeout)
		defer cancel()
		book.Cover, err = store.Import(ctx, cmd.CoverSource)
		if err != nil {
			return fmt.Errorf("failed to import cover: %w", err)
		}
	}

	if err := db.CreateBook(book); err != nil {
		if store != nil && book.Cover != "" {
			if rmErr := store.Remove(book.Cover); rmErr != nil {
				log.Printf("Failed to remove cover %s: %v", book.Cover, rmErr)
			}
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	fmt.Printf("Created book #%d: %s", book.ID, book.Name)
	if names := book.AuthorNames(); names != "" {
		fmt.Printf(" by %s", names)
	}
	fmt.Println()
	if book.Cover != "" {
		fmt.Printf("Cover stored as %s\n", book.Cover)
	}
	return nil
}
