package stores

import (
	"errors"

	"gorm.io/gorm"

	"unihive/backend/models"
)

// Sort orders for PostsForCourse, mirroring the course page options.
const (
	PostSortCreated    = "created"
	PostSortPopularity = "popularity"
)

// ThreadStore owns posts and their single-level replies.
type ThreadStore struct {
	DB *gorm.DB
}

func NewThreadStore(db *gorm.DB) *ThreadStore {
	return &ThreadStore{DB: db}
}

// CreatePost creates a new top-level post in a course.
func (s *ThreadStore) CreatePost(courseID, authorID uint, title, content string) (*models.Post, error) {
	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		CourseID: courseID,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// AddReply attaches a reply to a post. Replying to a reply attaches
// the new row to the original top-level post instead; threads never
// nest beyond one level. The top-level post's reply_count moves in the
// same transaction.
func (s *ThreadStore) AddReply(parentID, authorID uint, content string) (*models.Post, error) {
	var reply models.Post
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var parent models.Post
		if err := tx.First(&parent, parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return err
		}

		topID := parent.ID
		if parent.IsReply && parent.ParentID != nil {
			topID = *parent.ParentID
		}

		reply = models.Post{
			Content:  content,
			AuthorID: authorID,
			CourseID: parent.CourseID,
			IsReply:  true,
			ParentID: &topID,
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", topID).
			UpdateColumn("reply_count", gorm.Expr("reply_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// RepliesOf returns all replies of a post, newest first.
func (s *ThreadStore) RepliesOf(postID uint) ([]models.Post, error) {
	var replies []models.Post
	err := s.DB.Where("parent_id = ?", postID).Order("created_at DESC").Find(&replies).Error
	return replies, err
}

// Edit replaces the post body in place, no history retained. Only the
// author may edit.
func (s *ThreadStore) Edit(postID, editorID uint, newContent string) error {
	var post models.Post
	if err := s.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if post.AuthorID != editorID {
		return ErrUnauthorized
	}
	return s.DB.Model(&post).Update("content", newContent).Error
}

// Delete removes a post. Only the author may delete. Deleting a
// top-level post cascades to its replies and all their reactions, so
// no reply is left pointing at a missing parent. Deleting a reply
// decrements the parent's reply_count. Likes destroyed by the cascade
// come off the course popularity score.
func (s *ThreadStore) Delete(postID, requesterID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if post.AuthorID != requesterID {
			return ErrUnauthorized
		}

		reactionPostIDs := []uint{post.ID}
		if !post.IsReply {
			var replyIDs []uint
			if err := tx.Model(&models.Post{}).Where("parent_id = ?", post.ID).
				Pluck("id", &replyIDs).Error; err != nil {
				return err
			}
			reactionPostIDs = append(reactionPostIDs, replyIDs...)
			if err := tx.Where("parent_id = ?", post.ID).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		} else if post.ParentID != nil {
			if err := tx.Model(&models.Post{}).Where("id = ?", *post.ParentID).
				UpdateColumn("reply_count", gorm.Expr("reply_count - 1")).Error; err != nil {
				return err
			}
		}

		// Likes on the deleted posts leave the ledger, so the course
		// popularity score gives them back in the same transaction.
		var likeCount int64
		if err := tx.Model(&models.PostReaction{}).
			Where("post_id IN ? AND is_like = ?", reactionPostIDs, true).
			Count(&likeCount).Error; err != nil {
			return err
		}
		if likeCount > 0 {
			if err := bumpPopularity(tx, post.CourseID, -int(likeCount)); err != nil {
				return err
			}
		}

		if err := tx.Where("post_id IN ?", reactionPostIDs).
			Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// FindByID looks a post up by its database id.
func (s *ThreadStore) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	err := s.DB.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByTitle looks a post up by its verbatim title, scoped to a
// course when one is given. Titles are not globally unique; without a
// course scope the lowest id wins.
func (s *ThreadStore) FindByTitle(title string, courseID *uint) (*models.Post, error) {
	query := s.DB.Where("title = ?", title)
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	var post models.Post
	err := query.Order("id").First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// PostsForCourse returns the course's top-level posts. PostSortCreated
// orders newest first; PostSortPopularity orders by current like count
// from the reaction ledger, newest first among equals.
func (s *ThreadStore) PostsForCourse(courseID uint, sort string) ([]models.Post, error) {
	query := s.DB.Where("course_id = ? AND is_reply = ?", courseID, false)
	switch sort {
	case PostSortPopularity:
		query = query.Order("(SELECT COUNT(*) FROM post_reactions WHERE post_reactions.post_id = posts.id AND post_reactions.is_like) DESC").
			Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}
	var posts []models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// RecentPostsByAuthor returns the author's newest top-level posts,
// capped at limit.
func (s *ThreadStore) RecentPostsByAuthor(authorID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.Where("author_id = ? AND is_reply = ?", authorID, false).
		Order("created_at DESC").Limit(limit).Find(&posts).Error
	return posts, err
}
