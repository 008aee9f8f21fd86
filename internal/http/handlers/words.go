package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
)

// Слова уроков и произношение.

// CreateWord — POST .../lessons/{lessonId}/words.
func (h *Handlers) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWordRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.CreateWord(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// CreateWordsBulk — POST .../lessons/{lessonId}/words/bulk. Тело — массив.
func (h *Handlers) CreateWordsBulk(w http.ResponseWriter, r *http.Request) {
	var req []models.CreateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteError(w, r, apierrors.E(apierrors.KindBadRequest, "malformed json body: "+err.Error()))
		return
	}
	if len(req) == 0 {
		apierrors.WriteError(w, r, apierrors.E(apierrors.KindBadRequest, "empty words list"))
		return
	}
	for _, word := range req {
		if err := models.Validate(word); err != nil {
			apierrors.WriteError(w, r, apierrors.E(apierrors.KindBadRequest, err.Error()))
			return
		}
	}

	out, err := h.vocab.CreateWordsBulk(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// MoveWordsBulk — PUT .../lessons/{lessonId}/words/bulk-move.
func (h *Handlers) MoveWordsBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkMoveWordsRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.MoveWordsBulk(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteWordsBulk — DELETE .../lessons/{lessonId}/words/bulk-delete.
func (h *Handlers) DeleteWordsBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkDeleteWordsRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.DeleteWordsBulk(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// UpdateWord — PUT .../lessons/{lessonId}/words/{wordId}.
func (h *Handlers) UpdateWord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWordRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.UpdateWord(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "wordId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteWord — DELETE .../lessons/{lessonId}/words/{wordId}.
func (h *Handlers) DeleteWord(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.DeleteWord(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "wordId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// MoveWord — PUT .../lessons/{lessonId}/words/{wordId}/move.
func (h *Handlers) MoveWord(w http.ResponseWriter, r *http.Request) {
	var req models.MoveWordRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.MoveWord(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), chi.URLParam(r, "wordId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// CourseWordsByIDs — GET /courses/me/my-courses/{courseId}/words?ids=a,b,c.
func (h *Handlers) CourseWordsByIDs(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query().Get("ids")
	if ids == "" {
		apierrors.WriteError(w, r, apierrors.E(apierrors.KindBadRequest, "ids query parameter is required"))
		return
	}

	out, err := h.vocab.WordsByIDs(r.Context(), userID(r), chi.URLParam(r, "courseId"), ids)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// WordPronunciation — GET /words/pronunciation/{word}.
func (h *Handlers) WordPronunciation(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.WordPronunciation(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
