package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-gonic/gin"
)

// AddModRequest is one search-result object as the archive API returns
// it. Rating and votes default to zero when the archive omits them.
type AddModRequest struct {
	ID          int64   `json:"id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Author      string  `json:"author"`
	Dir         string  `json:"dir"`
	Rating      float64 `json:"rating"`
	Votes       int     `json:"votes"`
}

// AddMod imports a mod from an archive search result. Meant to be
// called from the search page's scripts.
func (h *Handler) AddMod(c *gin.Context) {
	user := currentUser(c)

	var req AddModRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mod, err := h.catalogService.Import(services.ImportModDTO{
		FileID:      req.ID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Date:        req.Date,
		Author:      req.Author,
		Dir:         req.Dir,
		Rating:      req.Rating,
		Votes:       req.Votes,
		UserID:      &user.ID,
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		var dup *services.AlreadyImportedError
		if errors.As(err, &dup) {
			c.JSON(http.StatusOK, gin.H{
				"status": "Already pulled.",
				"mod_id": dup.ModID,
			})
			return
		}
		h.logger.Error("Mod import failed", "file_id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import mod."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "Pulled!",
		"mod_id": mod.ID,
	})
}

func (h *Handler) ListMods(c *gin.Context) {
	mods, err := h.catalogService.List()
	if err != nil {
		h.logger.Error("Failed to list mods", "error", err)
		c.HTML(http.StatusInternalServerError, "mods.html", gin.H{"Error": "Failed to load mods."})
		return
	}

	c.HTML(http.StatusOK, "mods.html", gin.H{
		"Mods":    mods,
		"User":    currentUser(c),
		"Flashes": takeFlashes(c),
	})
}

func (h *Handler) ShowMod(c *gin.Context) {
	h.renderMod(c)
}

// AttachRecordForm handles the mod page's track-this-mod form. The page
// is re-rendered afterwards with the outcome flashed.
func (h *Handler) AttachRecordForm(c *gin.Context) {
	modID, ok := paramUint(c, "mod_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	if user := currentUser(c); user != nil {
		_, err := h.trackerService.Attach(user.ID, modID, c.ClientIP())
		var dup *services.AlreadyTrackedError
		switch {
		case err == nil:
			flash(c, "Mod successfully added!")
		case errors.As(err, &dup):
			flash(c, "This mod is already in your records.")
		case errors.Is(err, services.ErrNotFound):
			c.HTML(http.StatusNotFound, "404.html", nil)
			return
		default:
			h.logger.Error("Failed to attach record", "mod_id", modID, "error", err)
			flash(c, "Something went wrong. Please try again.")
		}
	}

	h.renderMod(c)
}

func (h *Handler) DeleteMod(c *gin.Context) {
	modID, ok := paramUint(c, "mod_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	if user := currentUser(c); user != nil {
		if err := h.catalogService.Delete(modID, &user.ID, c.ClientIP()); err != nil {
			h.logger.Error("Failed to delete mod", "mod_id", modID, "error", err)
			flash(c, "Failed to remove mod.")
		} else {
			flash(c, "Mod successfully removed.")
		}
	}

	c.Redirect(http.StatusFound, "/mods")
}

func (h *Handler) renderMod(c *gin.Context) {
	modID, ok := paramUint(c, "mod_id")
	if !ok {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	mod, err := h.catalogService.Get(modID)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}

	records, err := h.trackerService.ListForMod(modID)
	if err != nil {
		h.logger.Error("Failed to load mod records", "mod_id", modID, "error", err)
	}

	c.HTML(http.StatusOK, "mod.html", gin.H{
		"Mod":     mod,
		"Records": records,
		"User":    currentUser(c),
		"Flashes": takeFlashes(c),
	})
}

// paramUint parses a numeric path parameter.
func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
