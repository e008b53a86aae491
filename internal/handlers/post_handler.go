package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts      repositories.PostRepository
	aggregator *services.Aggregator
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts repositories.PostRepository, aggregator *services.Aggregator) *PostHandler {
	return &PostHandler{posts: posts, aggregator: aggregator}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
}

// CreatePost handles creating a new post. A new post has no comments or likes.
func (h *PostHandler) CreatePost(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{UserID: viewerID, Content: req.Content}
	if err := h.posts.CreatePost(c.Request().Context(), post); err != nil {
		return err
	}

	return successMessage(c, http.StatusCreated, "Post created successfully", models.NewPostView(post, models.PostAnnotation{}))
}

// GetPost returns one post annotated for the viewer.
func (h *PostHandler) GetPost(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.posts.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	views, err := h.aggregator.AnnotatePosts(ctx, []models.Post{*post}, viewerID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, views[0])
}
