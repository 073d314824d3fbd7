package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"panda_pos/internal/users"
)

// usersHandler implements HTTP handlers for user account management.
type usersHandler struct {
	userService *users.Service
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService *users.Service, logger *zap.Logger) *usersHandler {
	return &usersHandler{
		userService: userService,
		logger:      logger,
	}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// handleCreateUser handles the POST /users endpoint.
func (h *usersHandler) handleCreateUser(ctx *gin.Context) {
	var req createUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// handleGetUser handles the GET /users/:id endpoint.
func (h *usersHandler) handleGetUser(ctx *gin.Context) {
	user, err := h.userService.GetUser(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// handleListUsers handles the GET /users endpoint. An optional ?name= query
// filters users by name substring.
func (h *usersHandler) handleListUsers(ctx *gin.Context) {
	var (
		list []*users.User
		err  error
	)
	if name := ctx.Query("name"); name != "" {
		list, err = h.userService.SearchUsersByName(name)
	} else {
		list, err = h.userService.ListUsers()
	}
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// handleUpdateUser handles the PUT /users/:id endpoint.
func (h *usersHandler) handleUpdateUser(ctx *gin.Context) {
	var req updateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := h.userService.UpdateUser(ctx.Param("id"), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, users.ErrDuplicateEmail):
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to update user", zap.String("user_id", ctx.Param("id")), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// handleDeleteUser handles the DELETE /users/:id endpoint.
func (h *usersHandler) handleDeleteUser(ctx *gin.Context) {
	if err := h.userService.DeleteUser(ctx.Param("id")); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// handleLogin handles the POST /login endpoint.
func (h *usersHandler) handleLogin(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}
