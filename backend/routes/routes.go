package routes

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"unihive/backend/config"
	"unihive/backend/controllers"
	"unihive/backend/middleware"
)

const (
	// One post every three seconds per IP.
	postRateLimitRPS   = 1.0 / 3.0
	postRateLimitBurst = 1
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	postLimiter := middleware.NewIPRateLimiter(rate.Limit(postRateLimitRPS), postRateLimitBurst)
	rateLimit := middleware.RateLimitMiddleware(postLimiter)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)
	app.Get("/api/user/posts", authMiddleware, userController.GetRecentPosts)
	app.Get("/api/user/universities", authMiddleware, userController.GetFollowedUniversities)
	app.Get("/api/user/courses", authMiddleware, userController.GetFollowedCourses)

	// University routes
	universityController := controllers.NewUniversityController(db, cfg)
	universities := app.Group("/api/universities")
	universities.Get("/", universityController.ListUniversities)
	universities.Get("/search", universityController.SearchUniversities)
	universities.Post("/", authMiddleware, universityController.CreateUniversity)
	universities.Get("/:acronym", universityController.GetUniversity)
	universities.Post("/:acronym/follow", authMiddleware, universityController.FollowUniversity)
	universities.Post("/:acronym/departments", authMiddleware, universityController.CreateDepartment)

	// Course routes
	coursesController := controllers.NewCoursesController(db, cfg)
	universities.Post("/:acronym/courses", authMiddleware, coursesController.CreateCourse)
	universities.Get("/:acronym/courses/search", coursesController.SearchCourses)
	universities.Get("/:acronym/courses/:course", coursesController.GetCourseDetails)
	universities.Get("/:acronym/courses/:course/summary", coursesController.GetCourseSummary)
	universities.Post("/:acronym/courses/:course/ratings", authMiddleware, coursesController.SubmitRating)
	universities.Post("/:acronym/courses/:course/follow", authMiddleware, coursesController.FollowCourse)

	// Post routes
	postsController := controllers.NewPostsController(db, cfg)
	universities.Get("/:acronym/courses/:course/posts", postsController.GetCoursePosts)
	universities.Post("/:acronym/courses/:course/posts", authMiddleware, rateLimit, postsController.CreatePost)
	posts := app.Group("/api/posts")
	posts.Get("/:id", postsController.GetPost)
	posts.Get("/:id/replies", postsController.GetReplies)
	posts.Post("/:id/replies", authMiddleware, rateLimit, postsController.AddReply)
	posts.Put("/:id", authMiddleware, postsController.EditPost)
	posts.Delete("/:id", authMiddleware, postsController.DeletePost)
	posts.Post("/:id/like", authMiddleware, postsController.Like)
	posts.Post("/:id/dislike", authMiddleware, postsController.Dislike)

	// Syllabus routes
	syllabusController := controllers.NewSyllabusController(db, cfg)
	universities.Post("/:acronym/courses/:course/syllabus", authMiddleware, syllabusController.Upload)
	universities.Get("/:acronym/courses/:course/syllabus/:filename", syllabusController.Download)
}
