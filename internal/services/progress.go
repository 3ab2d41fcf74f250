package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/dmitrijs2005/polyglot/internal/dbx"
	"github.com/dmitrijs2005/polyglot/internal/lesson"
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/dmitrijs2005/polyglot/internal/models"
	"github.com/dmitrijs2005/polyglot/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// ProgressService keeps the history of finished lessons per user.
type ProgressService interface {
	Record(ctx context.Context, username string, report lesson.Report) (*models.LessonResult, error)
	History(ctx context.Context, username string, limit int) ([]models.LessonResult, error)
	Details(ctx context.Context, resultID string) ([]models.AnswerRecord, error)
}

type progressService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
}

func NewProgressService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) ProgressService {
	return &progressService{db: db, rm: rm, logger: logger.With("component", "progress")}
}

// now is a seam for tests.
var now = time.Now

// Record stores the report and its answers in one transaction.
func (s *progressService) Record(ctx context.Context, username string, report lesson.Report) (*models.LessonResult, error) {
	res := &models.LessonResult{
		ID:          uuid.NewString(),
		Username:    username,
		Language:    report.Language,
		Lesson:      report.Lesson,
		Score:       report.Score,
		Total:       report.Total,
		CompletedAt: now().UTC(),
		Answers:     make([]models.AnswerRecord, 0, len(report.Answers)),
	}
	for _, ev := range report.Answers {
		res.Answers = append(res.Answers, models.AnswerRecord{
			Position: ev.Index,
			Prompt:   ev.Prompt,
			Expected: ev.Expected,
			Given:    ev.Given,
			Correct:  ev.Correct,
			Channel:  ev.Channel.String(),
		})
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Results(tx)
		if err := repo.Create(ctx, res); err != nil {
			return err
		}
		for _, a := range res.Answers {
			if err := repo.AddAnswer(ctx, res.ID, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "saving lesson result failed", "username", username, "lesson", report.Lesson, "err", err)
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	s.logger.Debug(ctx, "lesson result saved", "id", res.ID, "username", username)
	return res, nil
}

// History lists a user's results, newest first, without answers.
func (s *progressService) History(ctx context.Context, username string, limit int) ([]models.LessonResult, error) {
	if limit <= 0 {
		limit = 10
	}
	out, err := s.rm.Results(s.db).ListByUsername(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Details returns the answers recorded for one result.
func (s *progressService) Details(ctx context.Context, resultID string) ([]models.AnswerRecord, error) {
	out, err := s.rm.Results(s.db).Answers(ctx, resultID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return out, nil
}
