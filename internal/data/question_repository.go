package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a statement expected to touch a row found none.
var ErrNotFound = errors.New("record not found")

const questionColumns = `id, question, answer, category, difficulty`

// SQLQuestionRepository stores questions using sqlx. Queries are written with
// '?' placeholders and rebound for the connected driver.
type SQLQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLQuestionRepository creates a new SQLQuestionRepository.
func NewSQLQuestionRepository(db *sqlx.DB) *SQLQuestionRepository {
	return &SQLQuestionRepository{db: db}
}

// ListAll returns every question ordered by id.
func (r *SQLQuestionRepository) ListAll(ctx context.Context) ([]Question, error) {
	questions := []Question{}
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id`
	if err := r.db.SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListByCategory returns the questions of one category ordered by id.
func (r *SQLQuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	questions := []Question{}
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE category = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &questions, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list questions by category: %w", err)
	}
	return questions, nil
}

// likeEscaper makes LIKE metacharacters literal under ESCAPE '!'. A backslash
// escape is not portable: MySQL treats it as a string escape as well.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search returns questions whose text contains term, ignoring case.
func (r *SQLQuestionRepository) Search(ctx context.Context, term string) ([]Question, error) {
	questions := []Question{}
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE LOWER(question) LIKE LOWER(?) ESCAPE '!' ORDER BY id`)
	if err := r.db.SelectContext(ctx, &questions, query, "%"+likeEscaper.Replace(term)+"%"); err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	return questions, nil
}

// GetByID finds a question by its ID. It returns nil when no row matches.
func (r *SQLQuestionRepository) GetByID(ctx context.Context, id int64) (*Question, error) {
	var question Question
	query := r.db.Rebind(`SELECT ` + questionColumns + ` FROM questions WHERE id = ?`)
	if err := r.db.GetContext(ctx, &question, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found is not an error
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return &question, nil
}

// Create inserts q and returns the generated id.
func (r *SQLQuestionRepository) Create(ctx context.Context, q *Question) (int64, error) {
	if r.db.DriverName() == DriverPostgres {
		// pgx does not implement LastInsertId.
		var id int64
		query := r.db.Rebind(`INSERT INTO questions (question, answer, category, difficulty) VALUES (?, ?, ?, ?) RETURNING id`)
		if err := r.db.QueryRowxContext(ctx, query, q.Question, q.Answer, q.Category, q.Difficulty).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to create question: %w", err)
		}
		return id, nil
	}

	query := `INSERT INTO questions (question, answer, category, difficulty) VALUES (:question, :answer, :category, :difficulty)`
	res, err := r.db.NamedExecContext(ctx, query, q)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read new question id: %w", err)
	}
	return id, nil
}

// Delete removes a question by its ID.
func (r *SQLQuestionRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM questions WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no question to delete with id %d: %w", id, ErrNotFound)
	}
	return nil
}
