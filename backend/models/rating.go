package models

import "gorm.io/gorm"

// CourseRating is one user's rating input for one course. At most one
// row exists per (user, course); resubmissions merge field-by-field
// into the existing row and never delete it.
type CourseRating struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_course_rating"`
	CourseID   uint `gorm:"not null;uniqueIndex:idx_user_course_rating"`
	Difficulty *float64 // 1-10
	Grade      *Grade
	Hours      *int
	Instructor *string
}
