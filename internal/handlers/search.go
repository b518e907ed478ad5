package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Type  string `json:"type"`
	Sort  string `json:"sort"`
	Dir   string `json:"dir"`
}

func (h *Handler) ShowSearch(c *gin.Context) {
	c.HTML(http.StatusOK, "search.html", gin.H{
		"User":    currentUser(c),
		"Flashes": takeFlashes(c),
	})
}

// SearchArchive proxies the query to the idgames archive and relays the
// JSON body untouched.
func (h *Handler) SearchArchive(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := h.archiveService.Search(c.Request.Context(), req.Query, req.Type, req.Sort, req.Dir)
	if err != nil {
		h.logger.Error("Archive search failed", "query", req.Query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Archive search failed. Please try again later."})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
