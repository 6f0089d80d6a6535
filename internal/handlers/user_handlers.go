package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"roomhub/internal/config"
	"roomhub/internal/models"
	"roomhub/internal/services"
	"roomhub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandlers struct {
	userService *services.UserService
	cfg         *config.Config
}

func NewUserHandlers(userService *services.UserService, cfg *config.Config) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		cfg:         cfg,
	}
}

func (h *UserHandlers) Profile(c *gin.Context) {
	userID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	profile, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandlers) UpdateUserForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// UpdateUser edits the acting user's own profile. The form may carry an
// avatar image which is stored under the upload directory.
func (h *UserHandlers) UpdateUser(c *gin.Context) {
	user := currentUser(c)

	var req models.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	avatar := ""
	if file, err := c.FormFile("avatar"); err == nil {
		avatar, err = h.saveAvatar(c, file)
		if err != nil {
			logger.Error("Avatar upload error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to store avatar"})
			return
		}
	}

	if _, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, &req, avatar); err != nil {
		logger.Error("Update profile error: %v", err)
		respondError(c, err, "")
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/profile/%d/", user.ID))
}

// DeleteAccount removes the acting user and ends their session.
func (h *UserHandlers) DeleteAccount(c *gin.Context) {
	user := currentUser(c)

	if err := h.userService.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		logger.Error("Delete account error: %v", err)
		respondError(c, err, "")
		return
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *UserHandlers) saveAvatar(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.cfg.Uploads.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.cfg.Uploads.Dir, name)); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}
	return name, nil
}
