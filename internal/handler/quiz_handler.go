package handler

import (
	"errors"
	"net/http"
	"trivia-api/internal/middleware"
)

var errMissingQuizCategory = errors.New("quiz_category.id is required")

// playQuiz returns a random question not yet asked, or a null question once
// the category is exhausted.
func (h *QuestionHandler) playQuiz(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		return badRequest(err, "Invalid quiz body")
	}
	if req.QuizCategory == nil || req.QuizCategory.ID == nil {
		return badRequest(errMissingQuizCategory, "Invalid quiz body")
	}

	previous := make([]int64, len(req.PreviousQuestions))
	for i, id := range req.PreviousQuestions {
		previous[i] = int64(id)
	}

	question, err := h.svc.NextQuizQuestion(r.Context(), previous, int64(*req.QuizCategory.ID))
	if err != nil {
		return serviceError(err, "Failed to pick quiz question")
	}

	return writeJSON(w, http.StatusOK, quizResponse{Success: true, Question: question})
}
