// Package cli implements the command-line subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Bayanda-Msibi/library-management-system/internal/config"
	"github.com/Bayanda-Msibi/library-management-system/internal/database"
	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
)

// ExportCommand writes the book inventory to a file or stdout without
// starting the server.
type ExportCommand struct {
	Format       string
	DatabasePath string
	Output       string
}

// NewExportCommand creates an export command for the given format
// ("csv" or "pdf").
func NewExportCommand(format string) *ExportCommand {
	return &ExportCommand{Format: format}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	name := "export-" + cmd.Format
	fs := flag.NewFlagSet(name, flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Output, "out", "", "Output file (default: stdout for csv, books.pdf for pdf)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s [options]\n\n", os.Args[0], name)
		fmt.Fprintf(os.Stderr, "Export the book inventory as %s.\n\n", cmd.Format)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s %s -db ./library.db -out books.%s\n", os.Args[0], name, cmd.Format)
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := exporters.NewService(db.DB)

	// PDF output is binary, so it always goes to a file
	out := cmd.Output
	if out == "" && cmd.Format == "pdf" {
		out = "books.pdf"
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch cmd.Format {
	case "csv":
		err = svc.ExportCSV(w)
	case "pdf":
		err = svc.ExportPDF(w)
	default:
		return fmt.Errorf("unknown export format: %s", cmd.Format)
	}
	if err != nil {
		return err
	}

	if out != "" {
		fmt.Printf("Exported inventory to %s\n", out)
	}
	return nil
}
