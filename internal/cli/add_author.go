package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/bookcollection/internal/config"
)

// AddAuthorCommand creates a single author.
type AddAuthorCommand struct {
	Name         string
	DatabasePath string
	LogLevel     string
}

func NewAddAuthorCommand(cfg *config.Config) *AddAuthorCommand {
	cfg = defaults(cfg)
	return &AddAuthorCommand{
		DatabasePath: cfg.Database.Path,
		LogLevel:     cfg.Database.LogLevel,
	}
}

func (cmd *AddAuthorCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add-author", flag.ContinueOnError)

	fs.StringVar(&cmd.Name, "name", "", "Name of the author (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the catalog database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add-author -name <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add an author to the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s add-author -name \"Terry Pratchett\"\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	if cmd.Name == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	if utf8.RuneCountInString(cmd.Name) > 100 {
		return fmt.Errorf("author name is longer than 100 characters")
	}

	return nil
}

func (cmd *AddAuthorCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath, cmd.LogLevel)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	author, err := db.CreateAuthor(cmd.Name)
	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}

	fmt.Printf("Created author #%d: %s\n", author.ID, author.Name)
	return nil
}
