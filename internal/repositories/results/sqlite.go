package results

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/models"
)

// timeLayout is fixed-width so that completed_at sorts chronologically as
// text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, res *models.LessonResult) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lesson_results (id, username, language, lesson, score, total, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.Username, res.Language, res.Lesson, res.Score, res.Total,
		res.CompletedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert result %s: %w", res.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) AddAnswer(ctx context.Context, resultID string, a models.AnswerRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lesson_answers (result_id, position, prompt, expected, given, correct, channel)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		resultID, a.Position, a.Prompt, a.Expected, a.Given, a.Correct, a.Channel)
	if err != nil {
		return fmt.Errorf("failed to insert answer %s/%d: %w", resultID, a.Position, err)
	}
	return nil
}

func (r *SQLiteRepository) ListByUsername(ctx context.Context, username string, limit int) ([]models.LessonResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, language, lesson, score, total, completed_at
		FROM lesson_results
		WHERE username = ?
		ORDER BY completed_at DESC
		LIMIT ?`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	out := make([]models.LessonResult, 0)
	for rows.Next() {
		var (
			res         models.LessonResult
			completedAt string
		)
		if err := rows.Scan(&res.ID, &res.Username, &res.Language, &res.Lesson, &res.Score, &res.Total, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if res.CompletedAt, err = time.Parse(timeLayout, completedAt); err != nil {
			return nil, fmt.Errorf("bad completed_at %q: %w", completedAt, err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate result rows: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Answers(ctx context.Context, resultID string) ([]models.AnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, prompt, expected, given, correct, channel
		FROM lesson_answers
		WHERE result_id = ?
		ORDER BY position`, resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	out := make([]models.AnswerRecord, 0)
	for rows.Next() {
		var a models.AnswerRecord
		if err := rows.Scan(&a.Position, &a.Prompt, &a.Expected, &a.Given, &a.Correct, &a.Channel); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer rows: %w", err)
	}
	return out, nil
}
