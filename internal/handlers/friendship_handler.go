package handlers

import (
	"net/http"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendships repositories.FriendshipRepository
	users       repositories.UserRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendships repositories.FriendshipRepository, users repositories.UserRepository) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships, users: users}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/users/:id/friends", h.AddFriend)
	g.DELETE("/users/:id/friends", h.RemoveFriend)
	g.GET("/users/:id/friends", h.GetFriends)
}

// AddFriend befriends the target user in both directions.
func (h *FriendshipHandler) AddFriend(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user ID")
	if err != nil {
		return err
	}
	if targetID == viewerID {
		return apperr.Validation("You cannot add yourself as a friend")
	}

	ctx := c.Request().Context()
	target, err := h.users.GetUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := h.friendships.AddFriendship(ctx, viewerID, targetID); err != nil {
		return err
	}
	return successMessage(c, http.StatusCreated, "Friend added successfully", target.ToCompact())
}

// RemoveFriend deletes both directions of the friendship.
func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseID(c, "id", "user ID")
	if err != nil {
		return err
	}
	if err := h.friendships.RemoveFriendship(c.Request().Context(), viewerID, targetID); err != nil {
		return err
	}
	return successMessage(c, http.StatusOK, "Friend removed successfully", nil)
}

// GetFriends lists a user's friends.
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	userID, err := parseID(c, "id", "user ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	ok, err := h.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("User")
	}

	friends, err := h.friendships.GetUserFriends(ctx, userID)
	if err != nil {
		return err
	}
	compact := make([]models.UserCompact, len(friends))
	for i := range friends {
		compact[i] = friends[i].ToCompact()
	}
	return success(c, http.StatusOK, compact)
}
