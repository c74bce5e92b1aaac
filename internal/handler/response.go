package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"trivia-api/internal/data"
	"trivia-api/internal/middleware"
	"trivia-api/internal/service"
)

type categoriesResponse struct {
	Success    bool             `json:"success"`
	Categories map[int64]string `json:"categories"`
}

type questionListResponse struct {
	Success         bool             `json:"success"`
	Questions       []data.Question  `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	Categories      map[int64]string `json:"categories"`
	CurrentCategory *int64           `json:"current_category"`
}

type questionsResponse struct {
	Success         bool            `json:"success"`
	Questions       []data.Question `json:"questions"`
	TotalQuestions  int             `json:"total_questions"`
	CurrentCategory *int64          `json:"current_category"`
}

type deleteResponse struct {
	Success        bool            `json:"success"`
	Deleted        int64           `json:"deleted"`
	Questions      []data.Question `json:"questions"`
	TotalQuestions int             `json:"total_questions"`
}

type createResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

type quizResponse struct {
	Success  bool           `json:"success"`
	Question *data.Question `json:"question"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) *middleware.AppError {
	body, err := json.Marshal(v)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to encode response", Code: http.StatusInternalServerError}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return nil
}

// serviceError maps a service outcome onto an HTTP status.
func serviceError(err error, msg string) *middleware.AppError {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrUnprocessable):
		code = http.StatusUnprocessableEntity
	}
	return &middleware.AppError{Error: err, Message: msg, Code: code}
}

func badRequest(err error, msg string) *middleware.AppError {
	return &middleware.AppError{Error: err, Message: msg, Code: http.StatusBadRequest}
}
