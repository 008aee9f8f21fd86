package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
)

// Словарные ручки: чистое проксирование, слово берётся из path.

// DictionaryPronunciation — GET /dictionary/pronunciation/{word}.
func (h *Handlers) DictionaryPronunciation(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.DictionaryPronunciation(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DictionarySearch — GET /dictionary/search/{word}.
func (h *Handlers) DictionarySearch(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.DictionarySearch(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DictionaryExamples — GET /dictionary/examples/{word}.
func (h *Handlers) DictionaryExamples(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.DictionaryExamples(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
