package handlers

import (
	"errors"
	"net/http"

	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Remember-me cookie lifetime, seconds.
const rememberMaxAge = 30 * 24 * 60 * 60

func (h *Handler) ShowRegister(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/search")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flashes": takeFlashes(c),
	})
}

func (h *Handler) HandleRegisterForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/search")
		return
	}

	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	imageURL := c.PostForm("image_url")

	if username == "" || email == "" || password == "" {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error": "Username, email and password are required.",
		})
		return
	}

	user, err := h.accountService.Register(services.SignupDTO{
		Username:  username,
		Email:     email,
		Password:  password,
		ImageURL:  imageURL,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.HTML(http.StatusConflict, "register.html", gin.H{
				"Error": "Username already taken",
			})
			return
		}
		h.logger.Error("Registration failed", "error", err)
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{
			"Error": "Failed to create account.",
		})
		return
	}

	h.startSession(c, user.ID, user.RememberToken)
	c.Redirect(http.StatusFound, "/search")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/search")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": takeFlashes(c),
	})
}

func (h *Handler) HandleLoginForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/search")
		return
	}

	username := c.PostForm("username")
	password := c.PostForm("password")

	user, ok := h.accountService.Authenticate(username, password)
	if !ok {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid credentials.",
		})
		return
	}

	token, err := h.accountService.RotateRememberToken(user.ID)
	if err != nil {
		h.logger.Error("Failed to rotate remember token", "error", err)
		token = ""
	}

	h.auditService.LogAction(&user.ID, "LOGIN", user.Username, nil, c.ClientIP())

	flash(c, "Welcome, "+user.Username+"!")
	h.startSession(c, user.ID, token)
	c.Redirect(http.StatusFound, "/search")
}

func (h *Handler) Logout(c *gin.Context) {
	if user := currentUser(c); user != nil {
		// Invalidate outstanding remember-me cookies.
		if _, err := h.accountService.RotateRememberToken(user.ID); err != nil {
			h.logger.Error("Failed to rotate remember token", "error", err)
		}
		h.auditService.LogAction(&user.ID, "LOGOUT", user.Username, nil, c.ClientIP())
	}

	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	session.Save()
	c.SetCookie(rememberCookie, "", -1, "/", "", false, true)

	flash(c, "You have been successfully logged out.")

	target := c.Request.Referer()
	if target == "" {
		target = "/search"
	}
	c.Redirect(http.StatusFound, target)
}

// LoginStatus reports whether the caller has a bound session. The
// True/False strings are what the frontend scripts expect.
func (h *Handler) LoginStatus(c *gin.Context) {
	if currentUser(c) != nil {
		c.JSON(http.StatusOK, gin.H{"status": "True"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "False"})
}

// startSession binds the session to a user and refreshes the
// remember-me cookie.
func (h *Handler) startSession(c *gin.Context, userID uint, rememberToken string) {
	session := sessions.Default(c)
	session.Set(sessionUserKey, userID)
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "error", err)
	}
	if rememberToken != "" {
		c.SetCookie(rememberCookie, rememberToken, rememberMaxAge, "/", "", false, true)
	}
}
