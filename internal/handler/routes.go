package handler

import (
	"net/http"
	"trivia-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router. Handler panics are
// recovered by errorMiddleware, which answers with the JSON error body.
func NewRouter(h *QuestionHandler, errorMiddleware func(middleware.AppHandler) http.Handler, mws ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mws...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed)
	})

	r.Method(http.MethodGet, "/categories", errorMiddleware(h.listCategories))
	r.Method(http.MethodGet, "/categories/{id:[0-9]+}/questions", errorMiddleware(h.listCategoryQuestions))

	r.Method(http.MethodGet, "/questions", errorMiddleware(h.listQuestions))
	r.Method(http.MethodPost, "/questions", errorMiddleware(h.createQuestion))
	r.Method(http.MethodDelete, "/questions/{id:[0-9]+}", errorMiddleware(h.deleteQuestion))
	r.Method(http.MethodGet, "/questions/search", errorMiddleware(h.searchQuestions))
	r.Method(http.MethodPost, "/questions/search", errorMiddleware(h.searchQuestions))

	r.Method(http.MethodPost, "/quizzes", errorMiddleware(h.playQuiz))

	return r
}
