package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"` // user, admin
	ProfileImage string
}

// UserUniversity is a follow edge between a user and a university.
type UserUniversity struct {
	gorm.Model
	UserID       uint `gorm:"not null;uniqueIndex:idx_user_university"`
	UniversityID uint `gorm:"not null;uniqueIndex:idx_user_university"`
}

// UserCourse is a follow edge between a user and a course.
type UserCourse struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_user_course"`
}
