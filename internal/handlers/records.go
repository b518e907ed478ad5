package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fez-github/Doom-Mod-Records/internal/models"
	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-gonic/gin"
)

type RecordEditForm struct {
	UserNotes  string `form:"user_notes"`
	UserReview string `form:"user_review"`
	NowPlaying bool   `form:"now_playing"`
	PlayStatus string `form:"play_status" binding:"required"`
}

// ListRecords shows every record plus the users owning at least one,
// which the page uses for grouping.
func (h *Handler) ListRecords(c *gin.Context) {
	records, users, err := h.trackerService.ListWithUsers()
	if err != nil {
		h.logger.Error("Failed to list records", "error", err)
		c.HTML(http.StatusInternalServerError, "records.html", gin.H{"Error": "Failed to load records."})
		return
	}

	c.HTML(http.StatusOK, "records.html", gin.H{
		"Records": records,
		"Users":   users,
		"User":    currentUser(c),
		"Flashes": takeFlashes(c),
	})
}

func (h *Handler) ShowRecord(c *gin.Context) {
	recordID, ok := paramUint(c, "record_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	record, err := h.trackerService.Get(recordID)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	c.HTML(http.StatusOK, "record.html", gin.H{
		"Record":  record,
		"User":    currentUser(c),
		"Flashes": takeFlashes(c),
	})
}

// AddRecord attaches a record for the current user. Meant to be called
// from the mod page's scripts.
func (h *Handler) AddRecord(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"status": "Not logged in."})
		return
	}

	modID, ok := paramUint(c, "mod_id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mod not found."})
		return
	}

	record, err := h.trackerService.Attach(user.ID, modID, c.ClientIP())
	if err != nil {
		var dup *services.AlreadyTrackedError
		if errors.As(err, &dup) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "Already exists.",
				"record_id": dup.RecordID,
			})
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mod not found."})
			return
		}
		h.logger.Error("Failed to add record", "mod_id", modID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add record."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "Added!",
		"record_id": record.ID,
	})
}

func (h *Handler) ShowRecordEdit(c *gin.Context) {
	recordID, ok := paramUint(c, "record_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	record, err := h.trackerService.Get(recordID)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	user := currentUser(c)
	if user == nil || user.ID != record.UserID {
		flash(c, "Unauthorized access.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/records/%d", recordID))
		return
	}

	c.HTML(http.StatusOK, "record_edit.html", gin.H{
		"Record":   record,
		"Statuses": models.PlayStatuses,
		"User":     user,
		"Flashes":  takeFlashes(c),
	})
}

func (h *Handler) HandleRecordEditForm(c *gin.Context) {
	recordID, ok := paramUint(c, "record_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	user := currentUser(c)
	if user == nil {
		flash(c, "Unauthorized access.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/records/%d", recordID))
		return
	}

	var form RecordEditForm
	if err := c.ShouldBind(&form); err != nil || !models.ValidPlayStatus(form.PlayStatus) {
		record, rerr := h.trackerService.Get(recordID)
		if rerr != nil {
			c.HTML(http.StatusNotFound, "404.html", nil)
			return
		}
		c.HTML(http.StatusBadRequest, "record_edit.html", gin.H{
			"Record":   record,
			"Statuses": models.PlayStatuses,
			"User":     user,
			"Error":    "Invalid input.",
		})
		return
	}

	err := h.trackerService.Update(recordID, user.ID, services.RecordEditDTO{
		UserNotes:  form.UserNotes,
		UserReview: form.UserReview,
		NowPlaying: form.NowPlaying,
		PlayStatus: form.PlayStatus,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", nil)
			return
		}
		if errors.Is(err, services.ErrUnauthorized) {
			flash(c, "Unauthorized access.")
			c.Redirect(http.StatusFound, fmt.Sprintf("/records/%d", recordID))
			return
		}
		h.logger.Error("Failed to update record", "record_id", recordID, "error", err)
		flash(c, "Failed to update record.")
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/records/%d", recordID))
}

// DeleteRecord removes a record and sends the caller back to the page
// of the mod the record pointed at. The mod id is resolved before the
// delete so the redirect survives the row going away.
func (h *Handler) DeleteRecord(c *gin.Context) {
	recordID, ok := paramUint(c, "record_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	record, err := h.trackerService.Get(recordID)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}
	modID := record.ModID

	user := currentUser(c)
	if user == nil {
		flash(c, "Unauthorized access.")
		c.Redirect(http.StatusFound, fmt.Sprintf("/mods/%d", modID))
		return
	}

	if _, err := h.trackerService.Delete(recordID, user.ID, c.ClientIP()); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			flash(c, "Unauthorized access.")
		} else {
			h.logger.Error("Failed to delete record", "record_id", recordID, "error", err)
			flash(c, "Failed to delete record.")
		}
	} else {
		flash(c, "Record successfully deleted.")
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/mods/%d", modID))
}
