package models

import "gorm.io/gorm"

type University struct {
	gorm.Model
	Name        string `gorm:"unique;not null"` // ex: University of Kansas
	Acronym     string `gorm:"unique;not null"` // ex: KU
	Description string
	Logo        string
	Courses     []Course
}

type Department struct {
	gorm.Model
	Name         string `gorm:"not null"` // ex: Electrical Engineering & Comp Sci
	Abbreviation string `gorm:"not null;uniqueIndex:idx_university_department"` // ex: EECS
	UniversityID uint   `gorm:"not null;uniqueIndex:idx_university_department"`
}
