package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_tracker_records",
			UpSQL:   migration001Up,
		},
		{
			Version: 2,
			Name:    "attendance_compound_keys",
			UpSQL:   migration002Up,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE TRACKER RECORDS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Every table of the tracker is a slice of this relation.
CREATE TABLE IF NOT EXISTS tracker_records (
    tbl TEXT NOT NULL,
    id TEXT NOT NULL,
    body JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (tbl, id),

    CONSTRAINT valid_tbl CHECK (tbl IN (
        'teacher_profile', 'courses', 'classes', 'students',
        'schedules', 'attendance_records', 'day_records'
    ))
);

-- Cascades look rows up by their parent.
CREATE INDEX IF NOT EXISTS idx_tracker_records_course
    ON tracker_records ((body->>'courseId')) WHERE tbl IN ('classes', 'students');
CREATE INDEX IF NOT EXISTS idx_tracker_records_class
    ON tracker_records ((body->>'classId')) WHERE tbl = 'attendance_records';
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: ATTENDANCE COMPOUND KEYS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- One attendance record per (class, date) and one day record per date.
CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_class_date
    ON tracker_records ((body->>'classId'), (body->>'date')) WHERE tbl = 'attendance_records';
CREATE UNIQUE INDEX IF NOT EXISTS uq_day_record_date
    ON tracker_records ((body->>'date')) WHERE tbl = 'day_records';
`
