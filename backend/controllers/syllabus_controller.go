package controllers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihive/backend/config"
	"unihive/backend/models"
	"unihive/backend/utils"
)

// SyllabusController stores and serves syllabus files as opaque blobs
// keyed by (course combined name, filename).
type SyllabusController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSyllabusController(db *gorm.DB, cfg *config.Config) *SyllabusController {
	return &SyllabusController{DB: db, Cfg: cfg}
}

func (sc *SyllabusController) Upload(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, sc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	course, err := findCourse(sc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	fileHeader, err := c.FormFile("syllabus")
	if err != nil {
		return utils.BadRequest(c, "Missing syllabus file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "Could not read syllabus file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.InternalServerError(c, "Could not read syllabus file")
	}

	syllabus := models.Syllabus{
		CourseName: course.NameCombined,
		Filename:   fileHeader.Filename,
		Data:       data,
	}
	if err := sc.DB.Create(&syllabus).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.BadRequest(c, "Syllabus already uploaded")
		}
		return utils.InternalServerError(c, "Could not store syllabus")
	}

	return utils.Created(c, fiber.Map{
		"course":   syllabus.CourseName,
		"filename": syllabus.Filename,
	})
}

func (sc *SyllabusController) Download(c *fiber.Ctx) error {
	course, err := findCourse(sc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var syllabus models.Syllabus
	err = sc.DB.Where("course_name = ? AND filename = ?",
		course.NameCombined, c.Params("filename")).
		First(&syllabus).Error
	if err != nil {
		return utils.NotFound(c, "Syllabus not found")
	}

	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+syllabus.Filename+`"`)
	return c.Send(syllabus.Data)
}
