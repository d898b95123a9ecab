package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mediscribe/internal/middleware"
	"mediscribe/internal/model"
	"mediscribe/internal/repository"
	"mediscribe/internal/utils"
)

// AuthHandler issues and verifies clinician identities. Tokens are
// stateless; logout is a client-side token discard.
type AuthHandler struct {
	users      repository.UserRepository
	jwtSecret  string
	expiration time.Duration
}

func NewAuthHandler(users repository.UserRepository, jwtSecret string, expiration time.Duration) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, expiration: expiration}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	if _, err := h.users.GetByEmail(c.Request.Context(), req.Email); err == nil {
		utils.Error(c, http.StatusConflict, "email is already registered")
		return
	} else if !errors.Is(err, model.ErrNotFound) {
		log.Printf("Error checking existing user: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to register")
		return
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			utils.Error(c, http.StatusConflict, "email is already registered")
			return
		}
		log.Printf("Error creating user: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to register")
		return
	}

	token, err := utils.GenerateToken(user, h.jwtSecret, h.expiration)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	log.Printf("User registered: %s", user.Email)
	utils.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		utils.Error(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user, h.jwtSecret, h.expiration)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		utils.Error(c, http.StatusNotFound, "user not found")
		return
	}

	utils.Success(c, gin.H{"user": user})
}

// Logout exists for client symmetry; access tokens are simply discarded.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.Success(c, gin.H{"status": "logged out"})
}
