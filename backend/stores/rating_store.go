package stores

import (
	"errors"

	"gorm.io/gorm"

	"unihive/backend/models"
)

// RatingStore owns per-user course rating submissions. Aggregates are
// computed from the raw rows on demand, never stored.
type RatingStore struct {
	DB *gorm.DB
}

func NewRatingStore(db *gorm.DB) *RatingStore {
	return &RatingStore{DB: db}
}

// RatingInput carries one submission. Nil fields were not supplied and
// never overwrite a previously stored value.
type RatingInput struct {
	Difficulty *float64
	Grade      *models.Grade
	Hours      *int
	Instructor *string
}

func (in RatingInput) empty() bool {
	return in.Difficulty == nil && in.Grade == nil && in.Hours == nil && in.Instructor == nil
}

// SubmitRating inserts or merges a rating for (user, course). A second
// submission from the same user updates only the supplied fields. Two
// concurrent first submissions are resolved by the unique index on
// (user_id, course_id): the loser's insert fails with a duplicate key
// and is retried once as an update.
func (s *RatingStore) SubmitRating(userID, courseID uint, in RatingInput) error {
	if in.empty() {
		// Must not create an empty row.
		return nil
	}

	err := s.upsert(userID, courseID, in)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = s.upsert(userID, courseID, in)
	}
	return err
}

func (s *RatingStore) upsert(userID, courseID uint, in RatingInput) error {
	var existing models.CourseRating
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rating := models.CourseRating{
			UserID:     userID,
			CourseID:   courseID,
			Difficulty: in.Difficulty,
			Grade:      in.Grade,
			Hours:      in.Hours,
			Instructor: in.Instructor,
		}
		return s.DB.Create(&rating).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if in.Difficulty != nil {
		updates["difficulty"] = *in.Difficulty
	}
	if in.Grade != nil {
		updates["grade"] = *in.Grade
	}
	if in.Hours != nil {
		updates["hours"] = *in.Hours
	}
	if in.Instructor != nil {
		updates["instructor"] = *in.Instructor
	}
	return s.DB.Model(&existing).Updates(updates).Error
}

// RatingForUser returns the stored submission for (user, course), or
// ErrNotFound if the user has not rated the course.
func (s *RatingStore) RatingForUser(userID, courseID uint) (*models.CourseRating, error) {
	var rating models.CourseRating
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// RatingsForCourse returns all submissions for a course in storage
// order. Used as aggregation input.
func (s *RatingStore) RatingsForCourse(courseID uint) ([]models.CourseRating, error) {
	var ratings []models.CourseRating
	err := s.DB.Where("course_id = ?", courseID).Order("id").Find(&ratings).Error
	return ratings, err
}
