package attendance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

func TestDayRecord_ReasonRule(t *testing.T) {
	tests := []struct {
		name string
		rec  DayRecord
		ok   bool
	}{
		{"completed", DayRecord{ID: "d1", Date: "2026-01-19", Status: DayCompleted}, true},
		{"pending", DayRecord{ID: "d1", Date: "2026-01-19", Status: DayPending}, true},
		{"skipped with reason", DayRecord{ID: "d1", Date: "2026-01-19", Status: DaySkipped, Reason: ReasonHoliday}, true},
		{"skipped without reason", DayRecord{ID: "d1", Date: "2026-01-19", Status: DaySkipped}, false},
		{"skipped with unknown reason", DayRecord{ID: "d1", Date: "2026-01-19", Status: DaySkipped, Reason: "Lluvia"}, false},
		{"completed with reason", DayRecord{ID: "d1", Date: "2026-01-19", Status: DayCompleted, Reason: ReasonPNFS}, false},
		{"bad date", DayRecord{ID: "d1", Date: "19/01/2026", Status: DayCompleted}, false},
		{"bad status", DayRecord{ID: "d1", Date: "2026-01-19", Status: "done"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}

func TestDayRecord_ReasonMessage(t *testing.T) {
	err := DayRecord{ID: "d1", Date: "2026-01-19", Status: DaySkipped}.Validate()

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "reason", verr.Fields[0].Field)
	assert.Equal(t, "reason must be set only when the day is skipped", verr.Fields[0].Message)
}

func TestDayRecord_Finish(t *testing.T) {
	d := DayRecord{ID: "d1", Date: "2026-01-19", Status: DayPending}

	r := ReasonActivityChange
	d.Finish(&r)
	assert.Equal(t, DaySkipped, d.Status)
	assert.Equal(t, ReasonActivityChange, d.Reason)
	require.NoError(t, d.Validate())

	d.Finish(nil)
	assert.Equal(t, DayCompleted, d.Status)
	assert.Empty(t, d.Reason)
	require.NoError(t, d.Validate())
}

func TestRecord_Validate(t *testing.T) {
	rec := Record{
		ID:      "r1",
		ClassID: "k1",
		Date:    "2026-01-19",
		Records: []StudentAttendance{
			{StudentID: "s1", Status: StatusPresent},
			{StudentID: "s2", Status: StatusAbsent},
		},
	}
	require.NoError(t, rec.Validate())

	rec.Records = append(rec.Records, StudentAttendance{StudentID: "s3", Status: "Tarde"})
	err := rec.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records[2].status")
}

func TestRecord_Helpers(t *testing.T) {
	rec := Record{
		ClassID: "k1",
		Date:    "2026-01-19",
		Records: []StudentAttendance{
			{StudentID: "s1", Status: StatusPresent},
			{StudentID: "s2", Status: StatusAbsent},
			{StudentID: "s3", Status: StatusPresent},
		},
	}

	present, absent := rec.Count()
	assert.Equal(t, 2, present)
	assert.Equal(t, 1, absent)

	st, ok := rec.StatusOf("s2")
	assert.True(t, ok)
	assert.Equal(t, StatusAbsent, st)

	_, ok = rec.StatusOf("s9")
	assert.False(t, ok)

	assert.Equal(t, RecordKey{ClassID: "k1", Date: "2026-01-19"}, rec.Key())
}

func TestEnums(t *testing.T) {
	assert.Equal(t, StatusAbsent, StatusPresent.Toggle())
	assert.Equal(t, StatusPresent, StatusAbsent.Toggle())
	assert.True(t, DayCompleted.Closed())
	assert.True(t, DaySkipped.Closed())
	assert.False(t, DayPending.Closed())

	for _, r := range Reasons {
		assert.True(t, r.Valid())
		assert.Equal(t, string(r), r.Label())
	}
	assert.False(t, Reason("").Valid())
}
