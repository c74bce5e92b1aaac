package handler

import (
	"net/http"
	"trivia-api/internal/middleware"
)

func (h *QuestionHandler) listCategories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		return serviceError(err, "Failed to list categories")
	}
	return writeJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: nonNilMap(categories)})
}

// listCategoryQuestions returns every question of one category, unpaginated.
func (h *QuestionHandler) listCategoryQuestions(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categoryID, err := idParam(r)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid category id", Code: http.StatusNotFound}
	}

	questions, err := h.svc.QuestionsByCategory(r.Context(), categoryID)
	if err != nil {
		return serviceError(err, "Failed to list questions by category")
	}

	return writeJSON(w, http.StatusOK, questionsResponse{
		Success:         true,
		Questions:       nonNil(questions),
		TotalQuestions:  len(questions),
		CurrentCategory: &categoryID,
	})
}
