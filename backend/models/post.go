package models

import "gorm.io/gorm"

// Post is a top-level course post or a single-level reply. A reply's
// ParentID always references a top-level post; replies to replies are
// attached to the original top-level post instead of nesting.
type Post struct {
	gorm.Model
	Title      string // empty for replies
	Content    string `gorm:"not null"`
	AuthorID   uint   `gorm:"not null;index"`
	CourseID   uint   `gorm:"not null;index"`
	IsReply    bool   `gorm:"not null;default:false"`
	ParentID   *uint  `gorm:"index"`
	ReplyCount int    `gorm:"not null;default:0"`
}
