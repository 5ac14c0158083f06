package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcollection/internal/config"
)

// DeleteAuthorCommand deletes an author. Books of the author are kept and
// simply lose the association.
type DeleteAuthorCommand struct {
	ID           uint
	DatabasePath string
	LogLevel     string
}

func NewDeleteAuthorCommand(cfg *config.Config) *DeleteAuthorCommand {
	cfg = defaults(cfg)
	return &DeleteAuthorCommand{
		DatabasePath: cfg.Database.Path,
		LogLevel:     cfg.Database.LogLevel,
	}
}

func (cmd *DeleteAuthorCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("delete-author", flag.ContinueOnError)

	var id uint
	fs.UintVar(&id, "id", 0, "ID of the author to delete (required)")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the catalog database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s delete-author -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete an author. Their books stay in the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if id == 0 {
		return fmt.Errorf("required flag -id not provided")
	}
	cmd.ID = id

	return nil
}

func (cmd *DeleteAuthorCommand) Run() error {
	db, err := openDatabase(cmd.DatabasePath, cmd.LogLevel)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	if err := db.DeleteAuthor(cmd.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("author #%d not found", cmd.ID)
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}

	fmt.Printf("Deleted author #%d\n", cmd.ID)
	return nil
}
