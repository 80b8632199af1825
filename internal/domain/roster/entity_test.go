package roster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendance-tracker/tracker/internal/domain/shared"
)

func TestFormatCourseName(t *testing.T) {
	tests := []struct {
		name   string
		course Course
		want   string
	}{
		{"primary", Course{Grade: 6, Level: LevelPrimary, Division: DivisionA}, "6° Primaria A"},
		{"secondary", Course{Grade: 3, Level: LevelSecondary, Division: DivisionB}, "3° Secundaria B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCourseName(tt.course))
		})
	}
}

func TestFormatClassName(t *testing.T) {
	course := Course{Grade: 1, Level: LevelPrimary, Division: DivisionC}
	cls := Class{Name: "Matemáticas"}

	assert.Equal(t, "Matemáticas - 1° Primaria C", FormatClassName(cls, course))
	assert.Equal(t, "Matemáticas - 1° Primaria C", ClassWithCourse{Class: cls, Course: course}.DisplayName())
}

func TestEnums(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, l.Valid())
	}
	for _, d := range Divisions {
		assert.True(t, d.Valid())
	}
	assert.False(t, Level("Terciario").Valid())
	assert.False(t, Division("E").Valid())
	assert.False(t, Grade(0).Valid())
	assert.False(t, Grade(7).Valid())
	assert.True(t, Grade(1).Valid())
	assert.True(t, Grade(6).Valid())
}

func TestNewCourse_Build(t *testing.T) {
	c, err := NewCourse{Grade: 2, Level: LevelSecondary, Division: DivisionD}.Build("c1")
	require.NoError(t, err)
	assert.Equal(t, Course{ID: "c1", Grade: 2, Level: LevelSecondary, Division: DivisionD}, c)

	_, err = NewCourse{Grade: 9, Level: "x", Division: DivisionA}.Build("c2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrValidation))

	var verr *shared.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "course", verr.Entity)
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, "grade", verr.Fields[0].Field)
	assert.Equal(t, "level", verr.Fields[1].Field)
}

func TestNewClass_Build(t *testing.T) {
	c, err := NewClass{CourseID: "c1", Name: "  Lengua  "}.Build("k1")
	require.NoError(t, err)
	assert.Equal(t, "Lengua", c.Name)

	_, err = NewClass{CourseID: "c1", Name: "   "}.Build("k2")
	assert.True(t, shared.IsValidation(err))

	_, err = NewClass{Name: "Lengua"}.Build("k3")
	assert.True(t, shared.IsValidation(err))
}

func TestNewStudent_Build(t *testing.T) {
	s, err := NewStudent{Name: "Ana", CourseID: "c1"}.Build("s1")
	require.NoError(t, err)
	assert.Empty(t, s.IdentificationNumber)

	_, err = NewStudent{Name: "", CourseID: "c1"}.Build("s2")
	assert.True(t, shared.IsValidation(err))
}

func TestCoursePatch_Apply(t *testing.T) {
	base := Course{ID: "c1", Grade: 1, Level: LevelPrimary, Division: DivisionA}

	t.Run("merges set fields", func(t *testing.T) {
		div := DivisionB
		got, err := CoursePatch{Division: &div}.Apply(base)
		require.NoError(t, err)
		assert.Equal(t, DivisionB, got.Division)
		assert.Equal(t, Grade(1), got.Grade)
		assert.Equal(t, DivisionA, base.Division, "original must be untouched")
	})

	t.Run("rejects invalid merge", func(t *testing.T) {
		g := Grade(0)
		_, err := CoursePatch{Grade: &g}.Apply(base)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, CoursePatch{}.IsEmpty())
		got, err := CoursePatch{}.Apply(base)
		require.NoError(t, err)
		assert.Equal(t, base, got)
	})
}

func TestStudentPatch_Apply(t *testing.T) {
	base := Student{ID: "s1", Name: "Ana", CourseID: "c1"}

	dni := " 40111222 "
	got, err := StudentPatch{IdentificationNumber: &dni}.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, "40111222", got.IdentificationNumber)
	assert.Equal(t, "Ana", got.Name)

	empty := ""
	_, err = StudentPatch{Name: &empty}.Apply(base)
	assert.True(t, shared.IsValidation(err))
}

func TestClassPatch_Apply(t *testing.T) {
	base := Class{ID: "k1", CourseID: "c1", Name: "Lengua"}

	course := "c2"
	got, err := ClassPatch{CourseID: &course}.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, "c2", got.CourseID)
	assert.False(t, ClassPatch{CourseID: &course}.IsEmpty())
}
