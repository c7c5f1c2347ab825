package repository

import (
	"context"
	"errors"
	"fmt"

	"conference-booking/internal/data/entity"
	"conference-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// EnrollmentRepository is a read-only view over enrollments owned by another service.
type EnrollmentRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*entity.Enrollment, error)
}

type enrollmentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewEnrollmentRepository(db database.Querier, log *zap.Logger) EnrollmentRepository {
	return &enrollmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "enrollment")),
	}
}

func (r *enrollmentRepository) FindByUserID(ctx context.Context, userID int64) (*entity.Enrollment, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM enrollments
		WHERE user_id = $1
	`

	var enrollment entity.Enrollment
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.Name,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find enrollment by user ID",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find enrollment by user ID %d: %w", userID, err)
	}

	return &enrollment, nil
}
