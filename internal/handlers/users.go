package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.accountService.List()
	if err != nil {
		h.logger.Error("Failed to list users", "error", err)
		c.HTML(http.StatusInternalServerError, "users.html", gin.H{"Error": "Failed to load users."})
		return
	}

	c.HTML(http.StatusOK, "users.html", gin.H{
		"Users":   users,
		"User":    currentUser(c),
		"Flashes": takeFlashes(c),
	})
}

// ShowUser renders a profile along with the comments left on it.
func (h *Handler) ShowUser(c *gin.Context) {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	profile, err := h.accountService.Get(userID)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	comments, err := h.accountService.CommentsForUser(userID)
	if err != nil {
		h.logger.Error("Failed to load comments", "user_id", userID, "error", err)
	}

	c.HTML(http.StatusOK, "user.html", gin.H{
		"Profile":  profile,
		"Comments": comments,
		"User":     currentUser(c),
		"Flashes":  takeFlashes(c),
	})
}

func (h *Handler) ShowUserEdit(c *gin.Context) {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	user := currentUser(c)
	if user == nil || user.ID != userID {
		flash(c, "Unauthorized access.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
		return
	}

	c.HTML(http.StatusOK, "user_edit.html", gin.H{
		"Profile": user,
		"User":    user,
		"Flashes": takeFlashes(c),
	})
}

func (h *Handler) HandleUserEditForm(c *gin.Context) {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	user := currentUser(c)
	if user == nil {
		flash(c, "Unauthorized access.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
		return
	}

	email := c.PostForm("email")
	imageURL := c.PostForm("image_url")

	err := h.accountService.UpdateProfile(userID, user.ID, email, imageURL)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			flash(c, "Unauthorized access.")
			c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", nil)
			return
		}
		h.logger.Error("Failed to update profile", "user_id", userID, "error", err)
		flash(c, "Failed to update profile.")
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", userID))
}
