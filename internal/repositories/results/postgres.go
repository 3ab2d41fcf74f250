package results

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, res *models.LessonResult) error {
	query :=
		`INSERT INTO lesson_results (id, username, language, lesson, score, total, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.Username, res.Language, res.Lesson, res.Score, res.Total, res.CompletedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddAnswer(ctx context.Context, resultID string, a models.AnswerRecord) error {
	query :=
		`INSERT INTO lesson_answers (result_id, position, prompt, expected, given, correct, channel)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		resultID, a.Position, a.Prompt, a.Expected, a.Given, a.Correct, a.Channel)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUsername(ctx context.Context, username string, limit int) ([]models.LessonResult, error) {
	query :=
		`SELECT id::text, username, language, lesson, score, total, completed_at
		 FROM lesson_results
		 WHERE username = $1
		 ORDER BY completed_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.LessonResult, 0)
	for rows.Next() {
		var res models.LessonResult
		if err := rows.Scan(&res.ID, &res.Username, &res.Language, &res.Lesson, &res.Score, &res.Total, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Answers(ctx context.Context, resultID string) ([]models.AnswerRecord, error) {
	query :=
		`SELECT position, prompt, expected, given, correct, channel
		 FROM lesson_answers
		 WHERE result_id = $1
		 ORDER BY position
		 `

	rows, err := r.db.QueryContext(ctx, query, resultID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.AnswerRecord, 0)
	for rows.Next() {
		var a models.AnswerRecord
		if err := rows.Scan(&a.Position, &a.Prompt, &a.Expected, &a.Given, &a.Correct, &a.Channel); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
