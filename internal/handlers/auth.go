package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/friendfeed/backend/internal/apperr"
	"github.com/anonto42/friendfeed/backend/internal/middleware"
	"github.com/anonto42/friendfeed/backend/internal/models"
	"github.com/anonto42/friendfeed/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users      repositories.UserRepository
	issuer     *middleware.TokenIssuer
	bcryptCost int
	log        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users repositories.UserRepository, issuer *middleware.TokenIssuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer, bcryptCost: bcrypt.DefaultCost, log: log}
}

// RegisterAuthRoutes registers authentication-related routes. loginLimiter guards
// credential checks against brute force.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, loginLimiter echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login, loginLimiter)
}

// Register handles local user registration with email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	_, err := h.users.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return apperr.Conflict("User already exists with this email")
	case !apperr.IsNotFound(err):
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		return apperr.Store("hash password", err)
	}

	user := &models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  string(hashedPassword),
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		return err
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		return apperr.Store("issue token", err)
	}

	h.log.Info("user registered", zap.Uint("user_id", user.ID))
	return successMessage(c, http.StatusCreated, "User registered successfully", models.AuthResponse{User: user.ToSelf(), Token: token})
}

// Login handles local user authentication with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		return apperr.Store("issue token", err)
	}

	return successMessage(c, http.StatusOK, "Login successful", models.AuthResponse{User: user.ToSelf(), Token: token})
}
