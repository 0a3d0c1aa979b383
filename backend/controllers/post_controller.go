package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihive/backend/config"
	"unihive/backend/models"
	"unihive/backend/stores"
	"unihive/backend/utils"
)

type PostsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Threads   *stores.ThreadStore
	Reactions *stores.ReactionLedger
}

func NewPostsController(db *gorm.DB, cfg *config.Config) *PostsController {
	return &PostsController{
		DB:        db,
		Cfg:       cfg,
		Threads:   stores.NewThreadStore(db),
		Reactions: stores.NewReactionLedger(db),
	}
}

func (pc *PostsController) CreatePost(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	course, err := findCourse(pc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Title == "" || input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and content are required",
		})
	}

	post, err := pc.Threads.CreatePost(course.ID, userID, input.Title, input.Content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create post",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetCoursePosts lists a course's top-level posts, sorted by creation
// time or by like count with ?sort=popularity.
func (pc *PostsController) GetCoursePosts(c *fiber.Ctx) error {
	course, err := findCourse(pc.DB, c.Params("acronym"), c.Params("course"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	posts, err := pc.Threads.PostsForCourse(course.ID, c.Query("sort"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch posts",
		})
	}

	result := make([]fiber.Map, 0, len(posts))
	for _, post := range posts {
		entry, err := pc.postJSON(c, &post)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not fetch reactions",
			})
		}
		result = append(result, entry)
	}
	return c.JSON(result)
}

func (pc *PostsController) GetPost(c *fiber.Ctx) error {
	post, err := pc.findPostParam(c)
	if err != nil {
		return pc.storeError(c, err)
	}

	entry, err := pc.postJSON(c, post)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch reactions",
		})
	}

	replies, err := pc.repliesJSON(c, post.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch replies",
		})
	}
	entry["replies"] = replies
	return c.JSON(entry)
}

func (pc *PostsController) AddReply(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content is required",
		})
	}

	reply, err := pc.Threads.AddReply(uint(postID), userID, input.Content)
	if err != nil {
		if errors.Is(err, stores.ErrParentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Parent post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create reply",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

func (pc *PostsController) GetReplies(c *fiber.Ctx) error {
	post, err := pc.findPostParam(c)
	if err != nil {
		return pc.storeError(c, err)
	}

	replies, err := pc.repliesJSON(c, post.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch replies",
		})
	}
	return c.JSON(replies)
}

func (pc *PostsController) EditPost(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content is required",
		})
	}

	if err := pc.Threads.Edit(uint(postID), userID, input.Content); err != nil {
		return pc.storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post updated"})
}

func (pc *PostsController) DeletePost(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	if err := pc.Threads.Delete(uint(postID), userID); err != nil {
		return pc.storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// Like toggles the caller's like on a post.
func (pc *PostsController) Like(c *fiber.Ctx) error {
	return pc.react(c, true)
}

// Dislike toggles the caller's dislike on a post.
func (pc *PostsController) Dislike(c *fiber.Ctx) error {
	return pc.react(c, false)
}

func (pc *PostsController) react(c *fiber.Ctx, isLike bool) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post ID",
		})
	}

	if err := pc.Reactions.Toggle(userID, uint(postID), isLike); err != nil {
		return pc.storeError(c, err)
	}

	likes, err := pc.Reactions.LikeCount(uint(postID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch reactions",
		})
	}
	dislikes, err := pc.Reactions.DislikeCount(uint(postID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch reactions",
		})
	}

	return c.JSON(fiber.Map{
		"likes":    likes,
		"dislikes": dislikes,
	})
}

// postJSON renders a post with its ledger-derived counts and, when
// the request is authenticated, the caller's reaction state.
func (pc *PostsController) postJSON(c *fiber.Ctx, post *models.Post) (fiber.Map, error) {
	likes, err := pc.Reactions.LikeCount(post.ID)
	if err != nil {
		return nil, err
	}
	dislikes, err := pc.Reactions.DislikeCount(post.ID)
	if err != nil {
		return nil, err
	}

	entry := fiber.Map{
		"id":          post.ID,
		"created_at":  post.CreatedAt,
		"title":       post.Title,
		"content":     post.Content,
		"author_id":   post.AuthorID,
		"course_id":   post.CourseID,
		"is_reply":    post.IsReply,
		"parent_id":   post.ParentID,
		"reply_count": post.ReplyCount,
		"likes":       likes,
		"dislikes":    dislikes,
	}

	if userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg); err == nil {
		liked, err := pc.Reactions.Reacted(userID, post.ID, true)
		if err != nil {
			return nil, err
		}
		disliked, err := pc.Reactions.Reacted(userID, post.ID, false)
		if err != nil {
			return nil, err
		}
		entry["liked"] = liked
		entry["disliked"] = disliked
	}

	return entry, nil
}

// repliesJSON renders a post's replies the same way as the post
// itself, counts and caller reaction state included.
func (pc *PostsController) repliesJSON(c *fiber.Ctx, postID uint) ([]fiber.Map, error) {
	replies, err := pc.Threads.RepliesOf(postID)
	if err != nil {
		return nil, err
	}
	result := make([]fiber.Map, 0, len(replies))
	for i := range replies {
		entry, err := pc.postJSON(c, &replies[i])
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

func (pc *PostsController) findPostParam(c *fiber.Ctx) (*models.Post, error) {
	postID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, stores.ErrNotFound
	}
	return pc.Threads.FindByID(uint(postID))
}

func (pc *PostsController) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, stores.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	case errors.Is(err, stores.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the author may do that",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Storage failure",
		})
	}
}
