package stores

import (
	"errors"

	"gorm.io/gorm"

	"unihive/backend/models"
)

// ReactionLedger records likes and dislikes per (user, post). The
// ledger rows are the single source of truth for reaction counts;
// counts are computed from them on every read and can not drift.
type ReactionLedger struct {
	DB *gorm.DB
}

func NewReactionLedger(db *gorm.DB) *ReactionLedger {
	return &ReactionLedger{DB: db}
}

// Toggle applies a like or dislike from a user to a post. Submitting
// the same kind again removes the reaction; submitting the opposite
// kind replaces it. The course popularity score moves here, inside the
// same transaction, exactly once per genuine like event: +1 when a
// like appears, -1 when a like is removed or switched to a dislike.
// Reads never touch it.
func (l *ReactionLedger) Toggle(userID, postID uint, isLike bool) error {
	err := l.toggle(userID, postID, isLike)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost an insert race against a concurrent reaction from the
		// same user; the row is visible now, rerun once.
		err = l.toggle(userID, postID, isLike)
	}
	return err
}

func (l *ReactionLedger) toggle(userID, postID uint, isLike bool) error {
	return l.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.PostReaction
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil && existing.IsLike == isLike:
			// Same kind again: toggle off.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if isLike {
				return bumpPopularity(tx, post.CourseID, -1)
			}
			return nil

		case err == nil:
			// Opposite kind: switch in place.
			if err := tx.Model(&existing).Update("is_like", isLike).Error; err != nil {
				return err
			}
			if isLike {
				return bumpPopularity(tx, post.CourseID, +1)
			}
			return bumpPopularity(tx, post.CourseID, -1)

		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := models.PostReaction{UserID: userID, PostID: postID, IsLike: isLike}
			if err := tx.Create(&reaction).Error; err != nil {
				return err
			}
			if isLike {
				return bumpPopularity(tx, post.CourseID, +1)
			}
			return nil

		default:
			return err
		}
	})
}

func bumpPopularity(tx *gorm.DB, courseID uint, delta int) error {
	return tx.Model(&models.Course{}).Where("id = ?", courseID).
		UpdateColumn("popularity_score", gorm.Expr("popularity_score + ?", delta)).Error
}

// LikeCount returns the exact number of likes on a post.
func (l *ReactionLedger) LikeCount(postID uint) (int64, error) {
	return l.count(postID, true)
}

// DislikeCount returns the exact number of dislikes on a post.
func (l *ReactionLedger) DislikeCount(postID uint) (int64, error) {
	return l.count(postID, false)
}

func (l *ReactionLedger) count(postID uint, isLike bool) (int64, error) {
	var n int64
	err := l.DB.Model(&models.PostReaction{}).
		Where("post_id = ? AND is_like = ?", postID, isLike).
		Count(&n).Error
	return n, err
}

// Reacted reports whether the user currently has a reaction of the
// given kind on the post.
func (l *ReactionLedger) Reacted(userID, postID uint, isLike bool) (bool, error) {
	var n int64
	err := l.DB.Model(&models.PostReaction{}).
		Where("user_id = ? AND post_id = ? AND is_like = ?", userID, postID, isLike).
		Count(&n).Error
	return n > 0, err
}
