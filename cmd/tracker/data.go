package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/attendance-tracker/tracker/internal/application/backup"
)

// export writes a backup to a file, or to stdout with -o -.
func (cli *commandLine) export(ctx context.Context, args []string) error {
	fs := cli.flagSet("export")
	out := fs.String("o", "", "Destination file. Defaults to asistencia-backup-DATE.json; - writes to stdout.")
	if err := parse(fs, args); err != nil {
		return err
	}

	doc, err := cli.tr.ExportSnapshot(ctx)
	if err != nil {
		return err
	}

	if *out == "-" {
		return backup.Write(cli.out, doc)
	}

	path := *out
	if path == "" {
		path = backup.FileName(doc.ExportedAt)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := backup.Write(f, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "exported to %s\n", path)
	return nil
}

// importFile replaces all data with a backup file.
func (cli *commandLine) importFile(ctx context.Context, args []string) error {
	fs := cli.flagSet("import")
	path := fs.String("f", "", "The backup file to restore.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "f"); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := cli.tr.ImportSnapshot(ctx, f); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "imported %s\n", *path)
	return nil
}

// reset deletes everything. It insists on -yes.
func (cli *commandLine) reset(ctx context.Context, args []string) error {
	fs := cli.flagSet("reset")
	yes := fs.Bool("yes", false, "Confirm that all data is deleted.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if !*yes {
		return errors.New("refusing to delete all data without -yes")
	}
	return cli.tr.Reset(ctx)
}
