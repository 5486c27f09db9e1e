package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kronika/internal/editor"
	"github.com/kronika/internal/locale"
	"github.com/kronika/internal/logger"
)

// draftKeyFor derives the edit-mode draft key for the request language.
func (a *API) draftKeyFor(c *gin.Context, slug string) editor.Key {
	return editor.Key{
		Locale: a.requestLocale(c).Language,
		Mode:   editor.ModeEdit,
		Slug:   slug,
	}
}

func draftKeyFromQuery(c *gin.Context) (editor.Key, bool) {
	mode := c.Query("mode")
	if mode != editor.ModeCreate && mode != editor.ModeEdit {
		respondError(c, http.StatusBadRequest, "mode must be create or edit")
		return editor.Key{}, false
	}

	lang := locale.NormalizeLanguage(c.Query("locale"))
	if lang == "" {
		respondError(c, http.StatusBadRequest, "locale must be en or pl")
		return editor.Key{}, false
	}

	slug := c.Query("slug")
	if mode == editor.ModeEdit && slug == "" {
		respondError(c, http.StatusBadRequest, "slug is required in edit mode")
		return editor.Key{}, false
	}

	return editor.Key{Locale: lang, Mode: mode, Slug: slug}, true
}

// GetDraft returns the stored snapshot for a draft key. A missing or
// unreadable draft reads as not found.
func (a *API) GetDraft(c *gin.Context) {
	key, ok := draftKeyFromQuery(c)
	if !ok {
		return
	}

	snapshot, found, err := a.drafts.Load(key)
	if err != nil {
		logger.Error().Err(err).Str("key", key.String()).Msg("failed to load draft")
		respondError(c, http.StatusInternalServerError, "failed to load draft")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "draft not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": snapshot})
}

type draftPayload struct {
	Locale   string          `json:"locale" binding:"required"`
	Mode     string          `json:"mode" binding:"required"`
	Slug     string          `json:"slug"`
	Snapshot editor.Snapshot `json:"snapshot" binding:"required"`
}

// SaveDraft upserts the snapshot for a draft key.
func (a *API) SaveDraft(c *gin.Context) {
	var payload draftPayload
	if !bindJSON(c, &payload) {
		return
	}

	lang := locale.NormalizeLanguage(payload.Locale)
	if lang == "" || (payload.Mode != editor.ModeCreate && payload.Mode != editor.ModeEdit) {
		respondError(c, http.StatusBadRequest, "invalid draft key")
		return
	}

	key := editor.Key{Locale: lang, Mode: payload.Mode, Slug: payload.Slug}
	if err := a.drafts.Save(key, payload.Snapshot); err != nil {
		logger.Error().Err(err).Str("key", key.String()).Msg("failed to save draft")
		respondError(c, http.StatusInternalServerError, "failed to save draft")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft saved"})
}

// DeleteDraft clears the draft for a key.
func (a *API) DeleteDraft(c *gin.Context) {
	key, ok := draftKeyFromQuery(c)
	if !ok {
		return
	}

	if err := a.drafts.Clear(key); err != nil {
		logger.Error().Err(err).Str("key", key.String()).Msg("failed to clear draft")
		respondError(c, http.StatusInternalServerError, "failed to clear draft")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft cleared"})
}
