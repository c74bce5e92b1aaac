//go:build integration

package data

import (
	"context"
	"errors"
	"testing"
)

func seedQuestions(t *testing.T, repo *SQLQuestionRepository, questions ...Question) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(questions))
	for i := range questions {
		id, err := repo.Create(context.Background(), &questions[i])
		if err != nil {
			t.Fatalf("failed to seed question: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestQuestionRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLQuestionRepository(setupTestDB(t))
	ctx := context.Background()

	q := Question{Question: "What is H2O?", Answer: "Water", Category: 1, Difficulty: 2}
	id, err := repo.Create(ctx, &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	found, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find question, but got nil")
	}
	want := Question{ID: id, Question: "What is H2O?", Answer: "Water", Category: 1, Difficulty: 2}
	if *found != want {
		t.Errorf("want %+v; got %+v", want, *found)
	}

	missing, err := repo.GetByID(ctx, id+100)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil, got %+v", missing)
	}
}

func TestQuestionRepository_ListAllOrdersByID(t *testing.T) {
	repo := NewSQLQuestionRepository(setupTestDB(t))
	ids := seedQuestions(t, repo,
		Question{Question: "c", Answer: "c", Category: 1, Difficulty: 1},
		Question{Question: "a", Answer: "a", Category: 2, Difficulty: 1},
		Question{Question: "b", Answer: "b", Category: 1, Difficulty: 1},
	)

	questions, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != len(ids) {
		t.Fatalf("expected %d questions, got %d", len(ids), len(questions))
	}
	for i, q := range questions {
		if q.ID != ids[i] {
			t.Errorf("position %d: want id %d; got %d", i, ids[i], q.ID)
		}
	}
}

func TestQuestionRepository_ListByCategory(t *testing.T) {
	repo := NewSQLQuestionRepository(setupTestDB(t))
	seedQuestions(t, repo,
		Question{Question: "q1", Answer: "a", Category: 1, Difficulty: 1},
		Question{Question: "q2", Answer: "a", Category: 2, Difficulty: 1},
		Question{Question: "q3", Answer: "a", Category: 1, Difficulty: 1},
	)
	ctx := context.Background()

	questions, err := repo.ListByCategory(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}

	none, err := repo.ListByCategory(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %v", none)
	}
}

func TestQuestionRepository_SearchIgnoresCase(t *testing.T) {
	repo := NewSQLQuestionRepository(setupTestDB(t))
	seedQuestions(t, repo,
		Question{Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", Category: 2, Difficulty: 3},
		Question{Question: "Which TITLE did Tom Hanks win?", Answer: "Oscar", Category: 5, Difficulty: 4},
		Question{Question: "What is the largest lake in Africa?", Answer: "Victoria", Category: 3, Difficulty: 2},
	)

	results, err := repo.Search(context.Background(), "title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Answer != "Oscar" {
		t.Errorf("expected the Tom Hanks question, got %+v", results[0])
	}
}

func TestQuestionRepository_SearchMatchesWildcardsLiterally(t *testing.T) {
	repo := NewSQLQuestionRepository(setupTestDB(t))
	seedQuestions(t, repo,
		Question{Question: "Are you 100% sure?", Answer: "Yes", Category: 1, Difficulty: 1},
		Question{Question: "Is snake_case a naming style?", Answer: "Yes", Category: 1, Difficulty: 1},
		Question{Question: "Wow! Is that real?", Answer: "No", Category: 1, Difficulty: 1},
		Question{Question: "A plain question", Answer: "Sure", Category: 1, Difficulty: 1},
	)

	testCases := []struct {
		term string
		want int
	}{
		{"%", 1},
		{"_", 1},
		{"!", 1},
		{"0% S", 1},
		{"E_C", 1},
		{"e%c", 0},
		{"!%", 0},
		{"a_p", 0},
	}

	for _, tc := range testCases {
		results, err := repo.Search(context.Background(), tc.term)
		if err != nil {
			t.Fatalf("search %q: unexpected error: %v", tc.term, err)
		}
		if len(results) != tc.want {
			t.Errorf("search %q: want %d results; got %d", tc.term, tc.want, len(results))
		}
	}
}

func TestQuestionRepository_Delete(t *testing.T) {
	repo := NewSQLQuestionRepository(setupTestDB(t))
	ids := seedQuestions(t, repo, Question{Question: "q", Answer: "a", Category: 1, Difficulty: 1})
	ctx := context.Background()

	if err := repo.Delete(ctx, ids[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := repo.GetByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Errorf("expected question to be gone, got %+v", found)
	}

	if err := repo.Delete(ctx, ids[0]); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
