package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string, staticPath string) *gin.Engine {
	r := gin.Default()

	r.SetFuncMap(template.FuncMap{
		"json": func(v interface{}) template.JS {
			a, _ := json.Marshal(v)
			return template.JS(a)
		},
	})

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}
	if staticPath != "" {
		r.Static("/static", staticPath)
	}

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("modrecords_session", store))
	r.Use(h.CurrentUser())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/search")
	})

	// Search
	r.GET("/search", h.ShowSearch)
	r.POST("/search", h.SearchArchive)

	// Auth
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.HandleRegisterForm)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.HandleLoginForm)
	r.GET("/logout", h.Logout)
	r.GET("/api/login_status", h.LoginStatus)

	// Mods
	r.GET("/mods", h.ListMods)
	r.GET("/mods/:mod_id", h.ShowMod)
	r.POST("/mods/:mod_id", h.AttachRecordForm)
	r.POST("/mods/:mod_id/delete", h.DeleteMod)

	// Records
	r.GET("/records", h.ListRecords)
	r.GET("/records/:record_id", h.ShowRecord)
	r.POST("/records/:record_id", h.DeleteRecord)
	r.GET("/records/:record_id/edit", h.ShowRecordEdit)
	r.POST("/records/:record_id/edit", h.HandleRecordEditForm)

	// Users
	r.GET("/users", h.ListUsers)
	r.GET("/users/:user_id", h.ShowUser)
	r.GET("/users/:user_id/edit", h.ShowUserEdit)
	r.POST("/users/:user_id/edit", h.HandleUserEditForm)

	// JSON API, gated
	api := r.Group("/api")
	api.Use(h.AuthRequired())
	{
		api.POST("/add_mod", h.AddMod)
		api.POST("/comments/add", h.AddComment)
	}
	// add_record reports "Not logged in." itself rather than the
	// middleware's payload, matching its callers.
	r.POST("/api/add_record/:mod_id", h.AddRecord)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", nil)
	})

	return r
}
