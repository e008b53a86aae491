package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	limits   services.PageLimits
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments repositories.CommentRepository, posts repositories.PostRepository, limits services.PageLimits) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts, limits: limits}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c, "id", "post ID")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.requirePost(c, postID); err != nil {
		return err
	}

	comment := &models.Comment{PostID: postID, UserID: viewerID, Content: req.Content}
	if err := h.comments.CreateComment(ctx, comment); err != nil {
		return err
	}
	return successMessage(c, http.StatusCreated, "Comment added successfully", comment.ToView())
}

// GetCommentsByPostID lists a post's comments oldest first.
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := parseID(c, "id", "post ID")
	if err != nil {
		return err
	}
	if err := h.requirePost(c, postID); err != nil {
		return err
	}

	req := pageRequest(c, h.limits)
	comments, total, err := h.comments.GetCommentsByPostID(c.Request().Context(), postID, req.Offset(), req.Limit)
	if err != nil {
		return err
	}

	views := make([]models.CommentView, len(comments))
	for i := range comments {
		views[i] = comments[i].ToView()
	}
	return success(c, http.StatusOK, models.CommentPage{Comments: views, Pagination: services.NewPagination(req, total)})
}

func (h *CommentHandler) requirePost(c echo.Context, postID uint) error {
	ok, err := h.posts.Exists(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Post")
	}
	return nil
}
