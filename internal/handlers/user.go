package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/anonto42/friendfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	posts       repositories.PostRepository
	comments    repositories.CommentRepository
	likes       repositories.LikeRepository
	aggregator  *services.Aggregator

	postLimits    services.PageLimits
	commentLimits services.PageLimits
}

// UserHandlerDeps groups the collaborators of UserHandler.
type UserHandlerDeps struct {
	Users         repositories.UserRepository
	Friendships   repositories.FriendshipRepository
	Posts         repositories.PostRepository
	Comments      repositories.CommentRepository
	Likes         repositories.LikeRepository
	Aggregator    *services.Aggregator
	PostLimits    services.PageLimits
	CommentLimits services.PageLimits
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(d UserHandlerDeps) *UserHandler {
	return &UserHandler{
		users:         d.Users,
		friendships:   d.Friendships,
		posts:         d.Posts,
		comments:      d.Comments,
		likes:         d.Likes,
		aggregator:    d.Aggregator,
		postLimits:    d.PostLimits,
		commentLimits: d.CommentLimits,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/me", h.GetMe)
	g.PATCH("/users/me", h.UpdateMe)
	g.GET("/users/me/posts", h.GetMyPosts)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/comments", h.GetUserComments)
	g.GET("/users/:id/likes", h.GetUserLikes)
}

// ListUsers returns everyone except the viewer, optionally filtered by ?search.
func (h *UserHandler) ListUsers(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	users, err := h.users.SearchUsers(c.Request().Context(), viewerID, c.QueryParam("search"))
	if err != nil {
		return err
	}
	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return success(c, http.StatusOK, compact)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetUserByID(c.Request().Context(), viewerID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, user.ToSelf())
}

// UpdateMe changes the viewer's names. Omitted fields are left untouched.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.Request().Context(), viewerID, req)
	if err != nil {
		return err
	}
	return successMessage(c, http.StatusOK, "Profile updated successfully", user.ToSelf())
}

// GetMyPosts lists the viewer's own posts, newest first, annotated.
func (h *UserHandler) GetMyPosts(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	req := pageRequest(c, h.postLimits)
	posts, total, err := h.posts.PostsByAuthors(ctx, []uint{viewerID}, req.Offset(), req.Limit)
	if err != nil {
		return err
	}
	views, err := h.aggregator.AnnotatePosts(ctx, posts, viewerID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, models.PostPage{Posts: views, Pagination: services.NewPagination(req, total)})
}

// GetUser returns another user's profile and whether the viewer is friends with them.
func (h *UserHandler) GetUser(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	userID, err := parseID(c, "id", "user ID")
	if err != nil {
		return err
	}
	if userID == viewerID {
		return apperr.Validation("Use /users/me to get your own profile")
	}

	ctx := c.Request().Context()
	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	isFriend, err := h.friendships.IsFriend(ctx, viewerID, userID)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, models.UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		IsFriend:  isFriend,
	})
}

// GetUserComments lists comments written by a user, newest first.
func (h *UserHandler) GetUserComments(c echo.Context) error {
	userID, err := h.existingUser(c)
	if err != nil {
		return err
	}

	req := pageRequest(c, h.commentLimits)
	comments, total, err := h.comments.GetCommentsByUserID(c.Request().Context(), userID, req.Offset(), req.Limit)
	if err != nil {
		return err
	}

	views := make([]models.UserCommentView, len(comments))
	for i, cm := range comments {
		views[i] = models.UserCommentView{
			ID:        cm.ID,
			PostID:    cm.PostID,
			Content:   cm.Content,
			CreatedAt: cm.CreatedAt,
			Post:      models.PostSummary{ID: cm.Post.ID, Content: cm.Post.Content},
		}
	}
	return success(c, http.StatusOK, models.UserCommentPage{Comments: views, Pagination: services.NewPagination(req, total)})
}

// GetUserLikes lists the posts a user liked, most recent like first, annotated for the viewer.
func (h *UserHandler) GetUserLikes(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	userID, err := h.existingUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	req := pageRequest(c, h.postLimits)
	likes, total, err := h.likes.GetLikesByUserID(ctx, userID, req.Offset(), req.Limit)
	if err != nil {
		return err
	}

	views, err := h.likedPostViews(ctx, likes, viewerID)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, models.LikedPostPage{Posts: views, Pagination: services.NewPagination(req, total)})
}

func (h *UserHandler) likedPostViews(ctx context.Context, likes []models.Like, viewerID uint) ([]models.LikedPostView, error) {
	ids := make([]uint, len(likes))
	for i := range likes {
		ids[i] = likes[i].PostID
	}
	annotations, err := h.aggregator.Annotate(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	views := make([]models.LikedPostView, len(likes))
	for i := range likes {
		views[i] = models.LikedPostView{
			PostView: models.NewPostView(&likes[i].Post, annotations[likes[i].PostID]),
			LikedAt:  likes[i].CreatedAt,
		}
	}
	return views, nil
}

func (h *UserHandler) existingUser(c echo.Context) (uint, error) {
	userID, err := parseID(c, "id", "user ID")
	if err != nil {
		return 0, err
	}
	ok, err := h.users.Exists(c.Request().Context(), userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.NotFound("User")
	}
	return userID, nil
}
