package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/events"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
	logctx "github.com/pribylovaa/vocab-trainer-gateway/internal/pkg/log"
)

// RecordAnswer — POST /vocabulary/word-progress/record-answer.
//
// Accept-and-forward: ответ клиенту 200 {"accepted":true} уходит только
// после подтверждённой передачи события брокеру; ошибка публикации — 500.
func (h *Handlers) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.RecordAnswerRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	msg := events.RecordAnswer{
		UserLoginID: userID(r),
		WordID:      req.WordID,
		Quality:     int(*req.Quality),
	}

	if err := h.events.PublishRecordAnswer(r.Context(), msg); err != nil {
		logctx.From(r.Context()).Error("record_answer_publish_failed",
			slog.String("word_id", req.WordID),
			slog.String("err", err.Error()),
		)
		apierrors.WriteError(w, r, apierrors.E(apierrors.KindInternal, "event publish failed"))
		return
	}

	writeJSON(w, http.StatusOK, models.RecordAnswerAccepted{Accepted: true})
}

func dueQuery(r *http.Request) (models.DueWordsQuery, error) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		return models.DueWordsQuery{}, err
	}

	includeNew, err := queryBool(r, "includeNew", true)
	if err != nil {
		return models.DueWordsQuery{}, err
	}

	q := models.DueWordsQuery{
		CourseID:   r.URL.Query().Get("courseId"),
		LessonID:   r.URL.Query().Get("lessonId"),
		Limit:      limit,
		IncludeNew: includeNew,
	}
	if err := models.Validate(q); err != nil {
		return models.DueWordsQuery{}, apierrors.E(apierrors.KindBadRequest, err.Error())
	}

	return q, nil
}

// DueWords — GET /vocabulary/word-progress/due-words.
func (h *Handlers) DueWords(w http.ResponseWriter, r *http.Request) {
	q, err := dueQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.DueWords(r.Context(), userID(r), q)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DueWordIDs — GET /vocabulary/word-progress/due-word-ids.
func (h *Handlers) DueWordIDs(w http.ResponseWriter, r *http.Request) {
	q, err := dueQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.DueWordIDs(r.Context(), userID(r), q)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// WordProgressStats — GET /vocabulary/word-progress/stats.
func (h *Handlers) WordProgressStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.WordProgressStats(r.Context(), userID(r),
		r.URL.Query().Get("courseId"), r.URL.Query().Get("lessonId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// WordProgress — GET /vocabulary/word-progress/words/{wordId}.
func (h *Handlers) WordProgress(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.WordProgress(r.Context(), userID(r), chi.URLParam(r, "wordId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// ResetWordProgress — DELETE /vocabulary/word-progress/words/{wordId}/reset.
func (h *Handlers) ResetWordProgress(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.ResetWordProgress(r.Context(), userID(r), chi.URLParam(r, "wordId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
