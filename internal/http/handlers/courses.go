package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
)

// Курсы и уроки. Все маршруты под AuthJWT, ресурсы скоупятся
// userLoginId из claims.

// Courses — GET /courses/me/my-courses.
func (h *Handlers) Courses(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := models.CourseListQuery{
		Page:             page,
		Limit:            limit,
		OrderByField:     queryString(r, "orderByField", "createdAt"),
		OrderByDirection: queryString(r, "orderByDirection", "desc"),
		SearchQuery:      r.URL.Query().Get("searchQuery"),
	}
	if err := models.Validate(q); err != nil {
		apierrors.WriteError(w, r, apierrors.E(apierrors.KindBadRequest, err.Error()))
		return
	}

	out, err := h.vocab.Courses(r.Context(), userID(r), q)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateCourse — POST /courses/me/my-courses.
func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.CreateCourse(r.Context(), userID(r), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// CoursesTotalStats — GET /courses/me/my-courses/total-stats.
func (h *Handlers) CoursesTotalStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.CoursesTotalStats(r.Context(), userID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// CourseDetails — GET /courses/me/my-courses/{courseId}.
func (h *Handlers) CourseDetails(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.CourseDetails(r.Context(), userID(r), chi.URLParam(r, "courseId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// UpdateCourse — PUT /courses/me/my-courses/{courseId}.
func (h *Handlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCourseRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.UpdateCourse(r.Context(), userID(r), chi.URLParam(r, "courseId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteCourse — DELETE /courses/me/my-courses/{courseId}.
func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.DeleteCourse(r.Context(), userID(r), chi.URLParam(r, "courseId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateLesson — POST /courses/me/my-courses/{courseId}/lessons.
func (h *Handlers) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.CreateLesson(r.Context(), userID(r), chi.URLParam(r, "courseId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// ReorderLessons — PUT /courses/me/my-courses/{courseId}/lessons/reorder.
func (h *Handlers) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderLessonsRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.ReorderLessons(r.Context(), userID(r), chi.URLParam(r, "courseId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// UpdateLesson — PUT /courses/me/my-courses/{courseId}/lessons/{lessonId}.
func (h *Handlers) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out, err := h.vocab.UpdateLesson(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// DeleteLesson — DELETE /courses/me/my-courses/{courseId}/lessons/{lessonId}.
func (h *Handlers) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	out, err := h.vocab.DeleteLesson(r.Context(), userID(r),
		chi.URLParam(r, "courseId"), chi.URLParam(r, "lessonId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
