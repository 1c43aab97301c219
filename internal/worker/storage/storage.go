package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-assistant/internal/audit"
	"github.com/cuongbtq/job-assistant/internal/worker/domain"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// InsertInquiry records one chat exchange. Redelivered events are detected by
// event_id and reported as domain.ErrDuplicateEvent.
func (s *Storage) InsertInquiry(ctx context.Context, event *audit.InquiryEvent) error {
	query := `
		INSERT INTO inquiry_log (event_id, user_name, user_input, kind, strategy, bot_response, failed, created_at, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		event.EventID,
		event.UserName,
		event.UserInput,
		event.Kind,
		event.Strategy,
		event.BotResponse,
		event.Failed,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Inquiry event already recorded",
			slog.String("event_id", event.EventID),
		)
		return domain.ErrDuplicateEvent
	}

	s.logger.Debug("Inquiry recorded",
		slog.String("event_id", event.EventID),
		slog.String("kind", event.Kind),
	)

	return nil
}
