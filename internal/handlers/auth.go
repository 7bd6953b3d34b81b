package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/config"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/middleware"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/store"
)

type AuthHandler struct {
	store *store.Store
	cfg   *config.Config
}

func NewAuthHandler(store *store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store: store,
		cfg:   cfg,
	}
}

// Register godoc
// @Summary     Register a team member
// @Description Creates a user account with a workflow role
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.RegisterRequest true "Registration details"
// @Success     200 {object} models.TokenResponse
// @Router      /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	user := models.User{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		HourlyRate: req.HourlyRate,
		StoryRate:  req.StoryRate,
	}
	if err := user.Validate(); err != nil {
		respondError(c, err)
		return
	}
	if len(req.Password) < 6 {
		respondError(c, &models.ValidationError{Field: "password"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to hash password", Message: err.Error()})
		return
	}
	user.PasswordHash = string(hash)

	if err := h.store.CreateUser(&user); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.issueToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to sign token", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token, User: &user})
}

// Login godoc
// @Summary     Log in
// @Description Verifies credentials and issues a JWT
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.TokenResponse
// @Router      /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to sign token", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token, User: user})
}

// UpdateProfile godoc
// @Summary     Update own profile
// @Description Updates name, phone and optionally the password. A password
// @Description change requires the current password to verify.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.UpdateProfileRequest true "Profile changes"
// @Success     200 {object} models.User
// @Router      /api/v1/users/me [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	user, err := h.store.GetUser(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	name := user.Name
	if req.Name != "" {
		name = req.Name
	}
	phone := user.Phone
	if req.Phone != "" {
		phone = req.Phone
	}

	passwordHash := user.PasswordHash
	if req.NewPassword != "" {
		// The stored hash is checked, not a claimed old password field
		// alone: an empty or wrong current password rejects the change.
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "current password is incorrect"})
			return
		}
		if len(req.NewPassword) < 6 {
			respondError(c, &models.ValidationError{Field: "new_password"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to hash password", Message: err.Error()})
			return
		}
		passwordHash = string(hash)
	}

	if err := h.store.UpdateUserProfile(actor.ID, name, phone, passwordHash); err != nil {
		respondError(c, err)
		return
	}

	user.Name = name
	user.Phone = phone
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"name": user.Name,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(h.cfg.TokenTTLHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.SupabaseJWTSecret))
}
