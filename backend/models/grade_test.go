package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	cases := map[string]Grade{
		"A+":   GradeAPlus,
		"a-":   GradeAMinus,
		" B+ ": GradeBPlus,
		"f":    GradeF,
		"F-":   GradeFMinus,
		"c":    GradeC,
	}
	for input, want := range cases {
		got, err := ParseGrade(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseGradeInvalid(t *testing.T) {
	for _, input := range []string{"", "E", "A++", "pass", "10"} {
		_, err := ParseGrade(input)
		assert.ErrorIs(t, err, ErrInvalidGrade, "input %q", input)
	}
}

func TestGradeString(t *testing.T) {
	assert.Equal(t, "A+", GradeAPlus.String())
	assert.Equal(t, "F-", GradeFMinus.String())
	assert.Equal(t, "C+", GradeCPlus.String())
	assert.Equal(t, "Unknown", Grade(99).String())
}

func TestGradeOrdinalScale(t *testing.T) {
	// The ordinal values are part of the stored format.
	assert.EqualValues(t, 0, GradeFMinus)
	assert.EqualValues(t, 7, GradeC)
	assert.EqualValues(t, 10, GradeB)
	assert.EqualValues(t, 13, GradeA)
	assert.EqualValues(t, 14, GradeAPlus)
}
