package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// intParam accepts an integer sent either as a JSON number or as a numeric
// string. null and "" decode to zero, which validation treats as absent.
type intParam int64

func (p *intParam) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%s is not an integer", s)
	}
	*p = intParam(n)
	return nil
}

type createQuestionRequest struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Difficulty intParam `json:"difficulty"`
	Category   intParam `json:"category"`
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type quizCategory struct {
	ID *intParam `json:"id"`
}

type quizRequest struct {
	PreviousQuestions []intParam    `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a single JSON value from the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// pageParam returns the 1-based "page" query parameter, defaulting to 1.
func pageParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid page %q: %w", raw, err)
	}
	if page < 1 {
		return 0, fmt.Errorf("invalid page %d", page)
	}
	return page, nil
}
