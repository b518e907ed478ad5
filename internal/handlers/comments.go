package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AddCommentRequest struct {
	TargetUserID uint   `json:"target_user_id" binding:"required"`
	Comment      string `json:"comment" binding:"required"`
}

// AddComment leaves a comment on another user's profile. Meant to be
// called from the profile page's scripts; responds with the stored
// comment.
func (h *Handler) AddComment(c *gin.Context) {
	user := currentUser(c)

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.accountService.Get(req.TargetUserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found."})
		return
	}

	comment, err := h.accountService.AddComment(user.ID, req.TargetUserID, req.Comment)
	if err != nil {
		h.logger.Error("Failed to add comment", "target_user_id", req.TargetUserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment."})
		return
	}

	c.JSON(http.StatusOK, comment)
}
