package models

import (
	"errors"
	"strings"
)

// Grade is a letter grade stored as its position on the ordinal
// scale F- through A+. The ordinal values are part of the stored
// data format and must not be reordered.
type Grade int

const (
	GradeFMinus Grade = iota // 0
	GradeF
	GradeFPlus
	GradeDMinus
	GradeD
	GradeDPlus
	GradeCMinus
	GradeC
	GradeCPlus
	GradeBMinus
	GradeB
	GradeBPlus
	GradeAMinus
	GradeA
	GradeAPlus // 14
)

var ErrInvalidGrade = errors.New("invalid letter grade")

var gradeLetters = [...]string{
	"F-", "F", "F+",
	"D-", "D", "D+",
	"C-", "C", "C+",
	"B-", "B", "B+",
	"A-", "A", "A+",
}

// ParseGrade converts a letter grade like "a-" or " B+ " into its
// ordinal. Unrecognized letters are rejected, never stored as null.
func ParseGrade(s string) (Grade, error) {
	letter := strings.ToUpper(strings.TrimSpace(s))
	for i, l := range gradeLetters {
		if l == letter {
			return Grade(i), nil
		}
	}
	return 0, ErrInvalidGrade
}

func (g Grade) Valid() bool {
	return g >= GradeFMinus && g <= GradeAPlus
}

func (g Grade) String() string {
	if !g.Valid() {
		return "Unknown"
	}
	return gradeLetters[g]
}
