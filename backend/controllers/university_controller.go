package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihive/backend/config"
	"unihive/backend/models"
	"unihive/backend/utils"
)

type UniversityController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUniversityController(db *gorm.DB, cfg *config.Config) *UniversityController {
	return &UniversityController{DB: db, Cfg: cfg}
}

func (un *UniversityController) CreateUniversity(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Acronym     string `json:"acronym"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == "" || input.Acronym == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and acronym are required",
		})
	}

	university := models.University{
		Name:        input.Name,
		Acronym:     strings.ToUpper(strings.TrimSpace(input.Acronym)),
		Description: input.Description,
	}
	if err := un.DB.Create(&university).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "University already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create university",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "University created",
		"university": university,
	})
}

func (un *UniversityController) ListUniversities(c *fiber.Ctx) error {
	var universities []models.University
	if err := un.DB.Find(&universities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch universities",
		})
	}
	return c.JSON(universities)
}

// GetUniversity returns a university by acronym together with its
// courses, sorted per the ?sort= query option.
func (un *UniversityController) GetUniversity(c *fiber.Ctx) error {
	university, err := findUniversity(un.DB, c.Params("acronym"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "University not found",
		})
	}

	query := un.DB.Where("university_id = ?", university.ID)
	switch c.Query("sort") {
	case "popularity":
		query = query.Order("popularity_score DESC")
	case "name":
		query = query.Order("name_combined")
	case "hours":
		// Average reported credit hours across the course's ratings.
		query = query.Order("(SELECT AVG(hours) FROM course_ratings WHERE course_ratings.course_id = courses.id AND course_ratings.hours IS NOT NULL AND course_ratings.deleted_at IS NULL) DESC").
			Order("name_combined")
	default:
		query = query.Order("created_at DESC")
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch courses",
		})
	}

	return c.JSON(fiber.Map{
		"university": university,
		"courses":    courses,
	})
}

func (un *UniversityController) FollowUniversity(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, un.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	university, err := findUniversity(un.DB, c.Params("acronym"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "University not found",
		})
	}

	follow := models.UserUniversity{UserID: userID, UniversityID: university.ID}
	if err := un.DB.Create(&follow).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not follow university",
		})
	}

	return c.JSON(fiber.Map{"message": "Following " + university.Acronym})
}

func (un *UniversityController) SearchUniversities(c *fiber.Ctx) error {
	search := c.Query("q")
	if search == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing search query",
		})
	}

	var universities []models.University
	pattern := "%" + search + "%"
	err := un.DB.Where("acronym LIKE ? OR name LIKE ?", pattern, pattern).
		Find(&universities).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not search universities",
		})
	}
	return c.JSON(universities)
}

func (un *UniversityController) CreateDepartment(c *fiber.Ctx) error {
	university, err := findUniversity(un.DB, c.Params("acronym"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "University not found",
		})
	}

	var input struct {
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" || input.Abbreviation == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and abbreviation are required",
		})
	}

	department := models.Department{
		Name:         input.Name,
		Abbreviation: strings.ToUpper(strings.TrimSpace(input.Abbreviation)),
		UniversityID: university.ID,
	}
	if err := un.DB.Create(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Department already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create department",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "Department created",
		"department": department,
	})
}

// findUniversity resolves a university by its acronym, ex: KU.
func findUniversity(db *gorm.DB, acronym string) (*models.University, error) {
	var university models.University
	err := db.Where("acronym = ?", strings.ToUpper(strings.TrimSpace(acronym))).
		First(&university).Error
	if err != nil {
		return nil, err
	}
	return &university, nil
}

// findCourse resolves a course by university acronym and combined
// name, ex: KU / EECS-581.
func findCourse(db *gorm.DB, acronym, nameCombined string) (*models.Course, error) {
	university, err := findUniversity(db, acronym)
	if err != nil {
		return nil, err
	}
	var course models.Course
	err = db.Where("university_id = ? AND name_combined = ?",
		university.ID, strings.ToUpper(strings.TrimSpace(nameCombined))).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}
