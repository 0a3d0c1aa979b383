package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihive/backend/config"
	"unihive/backend/models"
	"unihive/backend/stores"
	"unihive/backend/utils"
)

type CoursesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Ratings *stores.RatingStore
	Threads *stores.ThreadStore
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{
		DB:      db,
		Cfg:     cfg,
		Ratings: stores.NewRatingStore(db),
		Threads: stores.NewThreadStore(db),
	}
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	university, err := findUniversity(cc.DB, c.Params("acronym"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "University not found",
		})
	}

	var input struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		Department   string `json:"department"` // abbreviation, ex: EECS
		CourseNumber int    `json:"course_number"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Department == "" || input.CourseNumber == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Department and course number are required",
		})
	}

	var department models.Department
	err = cc.DB.Where("university_id = ? AND abbreviation = ?",
		university.ID, strings.ToUpper(strings.TrimSpace(input.Department))).
		First(&department).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Department not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not look up department",
		})
	}

	course := models.Course{
		Name:         input.Name,
		Description:  input.Description,
		CourseNumber: input.CourseNumber,
		NameCombined: models.CombinedName(input.Department, input.CourseNumber),
		DepartmentID: department.ID,
		UniversityID: university.ID,
	}
	if err := cc.DB.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Course already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

// GetCourseDetails returns the course, its rating summary computed
// from all submissions, and its posts.
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := findCourse(cc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	ratings, err := cc.Ratings.RatingsForCourse(course.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch ratings",
		})
	}
	summary := stores.Summarize(ratings)

	posts, err := cc.Threads.PostsForCourse(course.ID, c.Query("sort"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch posts",
		})
	}

	return c.JSON(fiber.Map{
		"course":  course,
		"summary": summaryJSON(summary, len(ratings)),
		"posts":   posts,
	})
}

// SubmitRating godoc
// @Summary Submit a course rating
// @Description Upserts the caller's difficulty/grade/hours/instructor rating for a course
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /universities/{acronym}/courses/{course}/ratings [post]
func (cc *CoursesController) SubmitRating(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	course, err := findCourse(cc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	var input struct {
		Difficulty *float64 `json:"difficulty"`
		Grade      *string  `json:"grade"`
		Hours      *int     `json:"hours"`
		Instructor *string  `json:"instructor"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Difficulty != nil && (*input.Difficulty < 1 || *input.Difficulty > 10) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Difficulty must be between 1 and 10",
		})
	}

	rating := stores.RatingInput{
		Difficulty: input.Difficulty,
		Hours:      input.Hours,
		Instructor: input.Instructor,
	}
	if input.Grade != nil {
		grade, err := models.ParseGrade(*input.Grade)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid letter grade",
			})
		}
		rating.Grade = &grade
	}

	if err := cc.Ratings.SubmitRating(userID, course.ID, rating); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not store rating",
		})
	}

	return c.JSON(fiber.Map{"message": "Rating stored"})
}

// GetCourseSummary returns only the derived rating statistics.
func (cc *CoursesController) GetCourseSummary(c *fiber.Ctx) error {
	course, err := findCourse(cc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	ratings, err := cc.Ratings.RatingsForCourse(course.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch ratings",
		})
	}

	return c.JSON(summaryJSON(stores.Summarize(ratings), len(ratings)))
}

func (cc *CoursesController) FollowCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	course, err := findCourse(cc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	follow := models.UserCourse{UserID: userID, CourseID: course.ID}
	if err := cc.DB.Create(&follow).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not follow course",
		})
	}

	return c.JSON(fiber.Map{"message": "Following " + course.NameCombined})
}

func (cc *CoursesController) SearchCourses(c *fiber.Ctx) error {
	university, err := findUniversity(cc.DB, c.Params("acronym"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "University not found",
		})
	}

	search := c.Query("q")
	if search == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing search query",
		})
	}

	var courses []models.Course
	pattern := "%" + search + "%"
	err = cc.DB.Where("university_id = ? AND (name LIKE ? OR name_combined LIKE ?)",
		university.ID, pattern, pattern).
		Find(&courses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not search courses",
		})
	}
	return c.JSON(courses)
}

// summaryJSON renders the aggregate view with explicit nulls for
// fields that have no submissions yet.
func summaryJSON(summary stores.CourseSummary, submissions int) fiber.Map {
	result := fiber.Map{
		"average_difficulty": nil,
		"average_grade":      nil,
		"modal_credit_hours": nil,
		"instructors":        summary.Instructors,
		"submissions":        submissions,
	}
	if summary.AverageDifficulty != nil {
		result["average_difficulty"] = *summary.AverageDifficulty
	}
	if summary.AverageGrade != nil {
		result["average_grade"] = summary.AverageGrade.String()
	}
	if summary.ModalCreditHours != nil {
		result["modal_credit_hours"] = *summary.ModalCreditHours
	}
	return result
}
