package stores

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"unihive/backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.University{},
		&models.Department{},
		&models.Course{},
		&models.CourseRating{},
		&models.Post{},
		&models.PostReaction{},
	))
	return db
}

func createCourse(t *testing.T, db *gorm.DB) *models.Course {
	t.Helper()

	university := models.University{Name: "University of Kansas", Acronym: "KU"}
	require.NoError(t, db.Create(&university).Error)

	course := models.Course{
		Name:         "Software Engineering II",
		CourseNumber: 581,
		NameCombined: models.CombinedName("eecs", 581),
		UniversityID: university.ID,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func createPost(t *testing.T, db *gorm.DB, courseID, authorID uint, title string) *models.Post {
	t.Helper()

	post, err := NewThreadStore(db).CreatePost(courseID, authorID, title, "post body")
	require.NoError(t, err)
	return post
}

func floatPtr(v float64) *float64     { return &v }
func intPtr(v int) *int               { return &v }
func strPtr(v string) *string         { return &v }
func gradePtr(g models.Grade) *models.Grade { return &g }
