package tracker

import (
	"context"
	"io"

	"github.com/attendance-tracker/tracker/internal/application/backup"
	"github.com/attendance-tracker/tracker/internal/domain/shared"
	"github.com/attendance-tracker/tracker/internal/infrastructure/persistence/store"
)

// ExportSnapshot reads every table in one consistent transaction.
func (t *Tracker) ExportSnapshot(ctx context.Context) (*backup.Document, error) {
	var doc *backup.Document
	err := t.store.View(ctx, func(tx store.Tx) error {
		var err error
		doc, err = backup.Export(tx, t.now())
		return err
	})
	if err != nil {
		t.logger.Error("export failed", "error", err)
		return nil, shared.WrapError("tracker", "ExportSnapshot", shared.ErrStorage, "export failed", err)
	}

	t.logger.Info("data exported",
		"courses", len(doc.Courses),
		"students", len(doc.Students),
		"attendance_records", len(doc.AttendanceRecords),
	)
	return doc, nil
}

// ImportSnapshot replaces all data with the document read from r. The
// document is parsed and validated first; on any failure nothing changes.
func (t *Tracker) ImportSnapshot(ctx context.Context, r io.Reader) error {
	doc, err := backup.Decode(r)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	err = t.commit(ctx, "ImportSnapshot", shared.EventDataImported, "", store.Tables,
		func(tx store.Tx) (bool, error) {
			return true, backup.Import(tx, doc)
		})
	if err != nil {
		return err
	}

	t.logger.Info("data imported",
		"exported_at", doc.ExportedAt,
		"courses", len(doc.Courses),
		"students", len(doc.Students),
		"attendance_records", len(doc.AttendanceRecords),
	)
	return nil
}

// Reset deletes every row of every table.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.commit(ctx, "Reset", shared.EventDataReset, "", store.Tables,
		func(tx store.Tx) (bool, error) {
			for _, table := range store.Tables {
				if err := tx.Clear(table); err != nil {
					return false, err
				}
			}
			return true, nil
		})
}
