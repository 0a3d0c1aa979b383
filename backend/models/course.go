package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Name         string // ex: Software Engineering II
	Description  string
	CourseNumber int    // ex: 581
	NameCombined string `gorm:"not null;uniqueIndex:idx_university_course"` // ex: EECS-581
	DepartmentID uint
	UniversityID uint `gorm:"not null;uniqueIndex:idx_university_course"`
	// Moves only on the reaction write path, never on reads.
	PopularityScore int `gorm:"not null;default:0"`

	Department Department
}

// CombinedName builds the course identifier shown in routes, ex: EECS-581.
func CombinedName(abbreviation string, number int) string {
	return fmt.Sprintf("%s-%d", strings.ToUpper(strings.TrimSpace(abbreviation)), number)
}
