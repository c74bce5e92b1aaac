package handler

import (
	"errors"
	"net/http"
	"strconv"
	"trivia-api/internal/data"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"

	"github.com/go-chi/chi/v5"
)

// QuestionHandler serves the trivia JSON API.
type QuestionHandler struct {
	svc service.QuestionServicer
	log logger.Logger
}

// NewQuestionHandler creates a new QuestionHandler with the given dependencies.
func NewQuestionHandler(svc service.QuestionServicer, log logger.Logger) *QuestionHandler {
	return &QuestionHandler{svc: svc, log: log}
}

// listQuestions returns one page of questions along with every category.
func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	page, err := pageParam(r)
	if err != nil {
		return badRequest(err, "Invalid page parameter")
	}

	result, err := h.svc.ListQuestions(r.Context(), page)
	if err != nil {
		return serviceError(err, "Failed to list questions")
	}

	return writeJSON(w, http.StatusOK, questionListResponse{
		Success:        true,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.Total,
		Categories:     nonNilMap(result.Categories),
	})
}

func (h *QuestionHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := idParam(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid question id", Code: http.StatusNotFound}
	}
	page, err := pageParam(r)
	if err != nil {
		return badRequest(err, "Invalid page parameter")
	}

	result, err := h.svc.DeleteQuestion(r.Context(), id, page)
	if err != nil {
		return serviceError(err, "Failed to delete question")
	}
	h.log.With(map[string]interface{}{"question_id": id}).Info("Question deleted")

	return writeJSON(w, http.StatusOK, deleteResponse{
		Success:        true,
		Deleted:        id,
		Questions:      nonNil(result.Questions),
		TotalQuestions: result.Total,
	})
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		return badRequest(err, "Invalid create question body")
	}

	id, err := h.svc.CreateQuestion(r.Context(), service.CreateQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Difficulty: int(req.Difficulty),
		Category:   int64(req.Category),
	})
	if err != nil {
		return serviceError(err, "Failed to create question")
	}
	h.log.With(map[string]interface{}{"question_id": id}).Info("Question created")

	return writeJSON(w, http.StatusOK, createResponse{Success: true, Created: id})
}

// searchQuestions matches questions against "searchTerm" taken from the JSON
// body or, for body-less requests, from the query string.
func (h *QuestionHandler) searchQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		return badRequest(err, "Invalid search body")
	}
	if req.SearchTerm == "" {
		req.SearchTerm = r.URL.Query().Get("searchTerm")
	}

	questions, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm)
	if err != nil {
		return serviceError(err, "Failed to search questions")
	}

	return writeJSON(w, http.StatusOK, questionsResponse{
		Success:        true,
		Questions:      nonNil(questions),
		TotalQuestions: len(questions),
	})
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func nonNil(questions []data.Question) []data.Question {
	if questions == nil {
		return []data.Question{}
	}
	return questions
}

func nonNilMap(categories map[int64]string) map[int64]string {
	if categories == nil {
		return map[int64]string{}
	}
	return categories
}
