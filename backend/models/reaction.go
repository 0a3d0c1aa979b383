package models

import "time"

// PostReaction is a like or dislike from one user on one post. The
// uniqueness on (user, post) is what makes the toggle semantics hold
// under concurrent requests. Rows are hard-deleted on toggle-off, so
// no DeletedAt column: a soft-deleted row would keep occupying the
// unique index and block the next reaction.
type PostReaction struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"not null"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post_reaction"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post_reaction"`
	IsLike    bool      `gorm:"not null"` // true for like, false for dislike
}
