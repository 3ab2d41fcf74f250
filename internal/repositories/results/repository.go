// Package results stores finished lesson attempts and their per-question
// answers.
package results

import (
	"context"

	"github.com/dmitrijs2005/polyglot/internal/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.LessonResult) error
	AddAnswer(ctx context.Context, resultID string, a models.AnswerRecord) error
	ListByUsername(ctx context.Context, username string, limit int) ([]models.LessonResult, error)
	Answers(ctx context.Context, resultID string) ([]models.AnswerRecord, error)
}
