package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/durgeshw22/campaignwatch/internal/detect"
	"github.com/durgeshw22/campaignwatch/internal/models"
)

// KeywordsHandler groups keyword management HTTP handlers.
type KeywordsHandler struct {
	Keywords *models.KeywordStore
}

// ListKeywords handles GET /api/keywords.
func (h *KeywordsHandler) ListKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.Keywords.ListAll(r.Context())
	if err != nil {
		slog.Error("list keywords", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if keywords == nil {
		keywords = []models.KeywordRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"keywords": keywords,
		"count":    len(keywords),
	})
}

type createKeywordRequest struct {
	Term      string  `json:"term"`
	Category  string  `json:"category"`
	Weight    float64 `json:"weight"`
	Overwrite bool    `json:"overwrite"`
}

// CreateKeyword handles POST /api/keywords. A duplicate term returns 409
// unless the request sets overwrite, which updates the existing entry in
// place.
func (h *KeywordsHandler) CreateKeyword(w http.ResponseWriter, r *http.Request) {
	var req createKeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	kw := detect.Keyword{
		Term:     req.Term,
		Category: req.Category,
		Weight:   req.Weight,
	}

	if err := h.Keywords.Create(r.Context(), kw, req.Overwrite); err != nil {
		switch {
		case errors.Is(err, detect.ErrInvalidKeyword):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "term is required and weight must not be negative"})
		case errors.Is(err, detect.ErrDuplicateKeyword):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "keyword already exists"})
		default:
			slog.Error("create keyword", "term", req.Term, "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create keyword"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// DeleteKeyword handles DELETE /api/keywords/{term}.
func (h *KeywordsHandler) DeleteKeyword(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if term == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "term is required"})
		return
	}

	if err := h.Keywords.Delete(r.Context(), term); err != nil {
		if errors.Is(err, detect.ErrKeywordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "keyword not found"})
			return
		}
		slog.Error("delete keyword", "term", term, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not delete keyword"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
