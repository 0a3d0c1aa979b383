package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihive/backend/config"
	"unihive/backend/models"
	"unihive/backend/stores"
	"unihive/backend/utils"
)

type UserController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Threads *stores.ThreadStore
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg, Threads: stores.NewThreadStore(db)}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile data
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"role":          user.Role,
		"profile_image": user.ProfileImage,
		"created_at":    user.CreatedAt,
	})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Email        string `json:"email"`
		ProfileImage string `json:"profile_image"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	updates := map[string]interface{}{}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.ProfileImage != "" {
		updates["profile_image"] = input.ProfileImage
	}
	if len(updates) > 0 {
		if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
			return utils.InternalServerError(c, "Could not update profile")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// GetRecentPosts returns the user's newest top-level posts, capped at
// three, for the profile page sidebar.
func (uc *UserController) GetRecentPosts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	posts, err := uc.Threads.RecentPostsByAuthor(userID, 3)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch posts")
	}
	return utils.Success(c, fiber.StatusOK, posts)
}

func (uc *UserController) GetFollowedUniversities(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var universities []models.University
	err = uc.DB.
		Joins("JOIN user_universities ON user_universities.university_id = universities.id").
		Where("user_universities.user_id = ? AND user_universities.deleted_at IS NULL", userID).
		Find(&universities).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch universities")
	}
	return utils.Success(c, fiber.StatusOK, universities)
}

func (uc *UserController) GetFollowedCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var courses []models.Course
	err = uc.DB.
		Joins("JOIN user_courses ON user_courses.course_id = courses.id").
		Where("user_courses.user_id = ? AND user_courses.deleted_at IS NULL", userID).
		Find(&courses).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch courses")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}
