package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/fez-github/Doom-Mod-Records/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAddRecordAPI(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	mod := models.Mod{FileID: 42, Title: "X"}
	assert.NoError(t, db.Create(&mod).Error)

	t.Run("Anonymous", func(t *testing.T) {
		w := newTestClient(r).postJSON(fmt.Sprintf("/api/add_record/%d", mod.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Not logged in.")
	})

	tc := newTestClient(r)
	tc.register("doomguy")

	t.Run("Attach Success", func(t *testing.T) {
		w := tc.postJSON(fmt.Sprintf("/api/add_record/%d", mod.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Added!", resp["status"])
		assert.NotZero(t, resp["record_id"])
	})

	t.Run("Duplicate Pair", func(t *testing.T) {
		w := tc.postJSON(fmt.Sprintf("/api/add_record/%d", mod.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "Already exists.", resp["status"])
		assert.NotZero(t, resp["record_id"])

		var count int64
		db.Model(&models.Record{}).Where("mod_id = ?", mod.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Missing Mod", func(t *testing.T) {
		w := tc.postJSON("/api/add_record/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecordPages(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	tc := newTestClient(r)
	tc.register("doomguy")

	mod := models.Mod{FileID: 42, Title: "X"}
	assert.NoError(t, db.Create(&mod).Error)
	tc.postJSON(fmt.Sprintf("/api/add_record/%d", mod.ID), nil)

	var record models.Record
	assert.NoError(t, db.Where("mod_id = ?", mod.ID).First(&record).Error)

	t.Run("List Is Public", func(t *testing.T) {
		w := newTestClient(r).get("/records")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "doomguy")
	})

	t.Run("Show Record Is Public", func(t *testing.T) {
		w := newTestClient(r).get(fmt.Sprintf("/records/%d", record.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "X")
	})

	t.Run("Missing Record 404", func(t *testing.T) {
		w := newTestClient(r).get("/records/9999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEditRecord(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	owner := newTestClient(r)
	owner.register("doomguy")

	mod := models.Mod{FileID: 42, Title: "X"}
	assert.NoError(t, db.Create(&mod).Error)
	owner.postJSON(fmt.Sprintf("/api/add_record/%d", mod.ID), nil)

	var record models.Record
	assert.NoError(t, db.Where("mod_id = ?", mod.ID).First(&record).Error)

	editPath := fmt.Sprintf("/records/%d/edit", record.ID)

	t.Run("Anonymous Redirected", func(t *testing.T) {
		w := newTestClient(r).get(editPath)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, fmt.Sprintf("/records/%d", record.ID), w.Header().Get("Location"))
	})

	t.Run("Non-Owner Redirected", func(t *testing.T) {
		other := newTestClient(r)
		other.register("ranger")

		w := other.get(editPath)
		assert.Equal(t, http.StatusFound, w.Code)

		w = other.postForm(editPath, url.Values{
			"user_review": {"hijacked"},
			"play_status": {models.StatusFinished},
		})
		assert.Equal(t, http.StatusFound, w.Code)

		var unchanged models.Record
		db.First(&unchanged, record.ID)
		assert.Empty(t, unchanged.UserReview)
	})

	t.Run("Owner Edits", func(t *testing.T) {
		w := owner.get(editPath)
		assert.Equal(t, http.StatusOK, w.Code)

		w = owner.postForm(editPath, url.Values{
			"user_notes":  {"pistol start"},
			"user_review": {"great"},
			"now_playing": {"true"},
			"play_status": {models.StatusPlaying},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, fmt.Sprintf("/records/%d", record.ID), w.Header().Get("Location"))

		var updated models.Record
		db.First(&updated, record.ID)
		assert.Equal(t, "pistol start", updated.UserNotes)
		assert.Equal(t, "great", updated.UserReview)
		assert.True(t, updated.NowPlaying)
		assert.Equal(t, models.StatusPlaying, updated.PlayStatus)
	})

	t.Run("Invalid Status Rejected", func(t *testing.T) {
		w := owner.postForm(editPath, url.Values{
			"play_status": {"Speedrunning"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var unchanged models.Record
		db.First(&unchanged, record.ID)
		assert.Equal(t, models.StatusPlaying, unchanged.PlayStatus)
	})
}

func TestDeleteRecordPage(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	owner := newTestClient(r)
	owner.register("doomguy")

	mod := models.Mod{FileID: 42, Title: "X"}
	assert.NoError(t, db.Create(&mod).Error)
	owner.postJSON(fmt.Sprintf("/api/add_record/%d", mod.ID), nil)

	var record models.Record
	assert.NoError(t, db.Where("mod_id = ?", mod.ID).First(&record).Error)

	deletePath := fmt.Sprintf("/records/%d", record.ID)
	modPath := fmt.Sprintf("/mods/%d", mod.ID)

	t.Run("Anonymous Redirected To Mod, Record Kept", func(t *testing.T) {
		w := newTestClient(r).postForm(deletePath, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, modPath, w.Header().Get("Location"))

		var count int64
		db.Model(&models.Record{}).Where("id = ?", record.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Non-Owner Redirected, Record Kept", func(t *testing.T) {
		other := newTestClient(r)
		other.register("ranger")

		w := other.postForm(deletePath, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, modPath, w.Header().Get("Location"))

		var count int64
		db.Model(&models.Record{}).Where("id = ?", record.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Owner Deletes, Redirected To Mod", func(t *testing.T) {
		w := owner.postForm(deletePath, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, modPath, w.Header().Get("Location"))

		var count int64
		db.Model(&models.Record{}).Where("id = ?", record.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Missing Record 404", func(t *testing.T) {
		w := owner.postForm(deletePath, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
