// Package http собирает публичный роутер шлюза.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/config"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/http/handlers"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/http/middleware"
)

// NewRouter собирает маршруты и цепочку мидлваров.
//
// Порядок фиксирован: Recover снаружи (ловит паники всех нижних слоёв),
// затем RequestID (id нужен логам), Logging, CORS и общий Timeout.
// AuthJWT вешается только на защищённые группы: браузерные auth-ручки и
// health работают без токена.
func NewRouter(cfg *config.Config, h *handlers.Handlers, verifier middleware.AccessVerifier, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	corsMW := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(log),
		corsMW,
		middleware.Timeout(cfg.Timeouts.Service),
	)

	authJWT := middleware.AuthJWT(verifier)

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/refresh-token", h.RefreshToken)
		r.With(authJWT).Post("/logout", h.Logout)
		r.Get("/{provider}", h.OAuthStart)
		r.Get("/{provider}/redirect", h.OAuthRedirect)
	})

	r.With(authJWT).Get("/users/me/profile", h.MyProfile)

	r.Route("/courses/me/my-courses", func(r chi.Router) {
		r.Use(authJWT)

		r.Get("/", h.Courses)
		r.Post("/", h.CreateCourse)
		r.Get("/total-stats", h.CoursesTotalStats)

		r.Route("/{courseId}", func(r chi.Router) {
			r.Get("/", h.CourseDetails)
			r.Put("/", h.UpdateCourse)
			r.Delete("/", h.DeleteCourse)

			r.Get("/words", h.CourseWordsByIDs)

			r.Route("/lessons", func(r chi.Router) {
				r.Post("/", h.CreateLesson)
				r.Put("/reorder", h.ReorderLessons)

				r.Route("/{lessonId}", func(r chi.Router) {
					r.Put("/", h.UpdateLesson)
					r.Delete("/", h.DeleteLesson)

					r.Route("/words", func(r chi.Router) {
						r.Post("/", h.CreateWord)
						r.Post("/bulk", h.CreateWordsBulk)
						r.Put("/bulk-move", h.MoveWordsBulk)
						r.Delete("/bulk-delete", h.DeleteWordsBulk)
						r.Put("/{wordId}", h.UpdateWord)
						r.Delete("/{wordId}", h.DeleteWord)
						r.Put("/{wordId}/move", h.MoveWord)
					})
				})
			})
		})
	})

	r.With(authJWT).Get("/words/pronunciation/{word}", h.WordPronunciation)
	// Исторический алиас: фронтенд дергает произношение и по /courses/....
	r.With(authJWT).Get("/courses/pronunciation/{word}", h.WordPronunciation)

	r.Route("/dictionary", func(r chi.Router) {
		r.Use(authJWT)

		r.Get("/pronunciation/{word}", h.DictionaryPronunciation)
		r.Get("/search/{word}", h.DictionarySearch)
		r.Get("/examples/{word}", h.DictionaryExamples)
	})

	r.Route("/vocabulary/word-progress", func(r chi.Router) {
		r.Use(authJWT)

		r.Post("/record-answer", h.RecordAnswer)
		r.Get("/due-words", h.DueWords)
		r.Get("/due-word-ids", h.DueWordIDs)
		r.Get("/stats", h.WordProgressStats)
		r.Get("/words/{wordId}", h.WordProgress)
		r.Delete("/words/{wordId}/reset", h.ResetWordProgress)
	})

	return r
}
