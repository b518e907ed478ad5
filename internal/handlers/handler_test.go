package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"

	"github.com/fez-github/Doom-Mod-Records/internal/config"
	"github.com/fez-github/Doom-Mod-Records/internal/models"
	"github.com/fez-github/Doom-Mod-Records/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.Mod{}, &models.Record{}, &models.Comment{}, &models.AuditLog{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret:         "test-secret-12345678901234567890123456789012",
		ArchiveAPIURL:         "http://127.0.0.1:1",
		ArchiveTimeoutSeconds: 1,
	}

	audit := services.NewAuditService(db, logger)
	accounts := services.NewAccountService(db, audit)
	catalog := services.NewCatalogService(db, audit)
	tracker := services.NewTrackerService(db, audit)
	archive := services.NewArchiveService(cfg, logger, nil)

	h := NewHandler(cfg, logger, db, accounts, catalog, tracker, archive, audit)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil, "../../web/templates/*", "../../web/static")
}

// testClient carries cookies between requests so session-backed flows
// behave like a browser.
type testClient struct {
	r       *gin.Engine
	cookies []*http.Cookie
}

func newTestClient(r *gin.Engine) *testClient {
	return &testClient{r: r}
}

func (tc *testClient) do(method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	tc.r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		tc.storeCookie(c)
	}
	return w
}

func (tc *testClient) storeCookie(c *http.Cookie) {
	for i, existing := range tc.cookies {
		if existing.Name == c.Name {
			if c.MaxAge < 0 {
				tc.cookies = append(tc.cookies[:i], tc.cookies[i+1:]...)
			} else {
				tc.cookies[i] = c
			}
			return
		}
	}
	if c.MaxAge >= 0 {
		tc.cookies = append(tc.cookies, c)
	}
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, path, "", nil)
}

func (tc *testClient) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (tc *testClient) postJSON(path string, payload interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(payload)
	return tc.do(http.MethodPost, path, "application/json", bytes.NewBuffer(data))
}

// register signs up a user through the form flow, leaving the client
// logged in.
func (tc *testClient) register(username string) *httptest.ResponseRecorder {
	return tc.postForm("/register", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"password123"},
	})
}
