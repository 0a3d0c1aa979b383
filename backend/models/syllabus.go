package models

import "gorm.io/gorm"

// Syllabus holds an uploaded syllabus file as an opaque blob keyed by
// the course combined name and the original filename.
type Syllabus struct {
	gorm.Model
	CourseName string `gorm:"not null;uniqueIndex:idx_course_syllabus"` // ex: EECS-581
	Filename   string `gorm:"not null;uniqueIndex:idx_course_syllabus"`
	Data       []byte `gorm:"not null"`
}
