package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepo(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	const query = `
		INSERT INTO reviews (destination_id, user_id, user_name, rating, comment)
		VALUES (:destination_id, :user_id, :user_name, :rating, :comment)
		RETURNING id, destination_id, user_id, user_name, rating, comment, created_at
	`
	args := map[string]any{
		"destination_id": int64(review.DestinationID),
		"user_id":        review.UserID,
		"user_name":      review.UserName,
		"rating":         review.Rating,
		"comment":        review.Comment,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var stored domain.Review
		if err := rows.StructScan(&stored); err != nil {
			return nil, err
		}
		return &stored, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, sql.ErrNoRows
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	const query = `
		SELECT id, destination_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE id = $1
	`
	var review domain.Review
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) ListByDestination(ctx context.Context, destinationID domain.DestinationID) ([]domain.Review, error) {
	const query = `
		SELECT id, destination_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE destination_id = $1
		ORDER BY created_at DESC, id DESC
	`
	reviews := make([]domain.Review, 0)
	if err := r.db.SelectContext(ctx, &reviews, query, int64(destinationID)); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) ListByDestinations(ctx context.Context, destinationIDs []domain.DestinationID) ([]domain.Review, error) {
	reviews := make([]domain.Review, 0)
	if len(destinationIDs) == 0 {
		return reviews, nil
	}
	ids := make([]int64, 0, len(destinationIDs))
	for _, id := range destinationIDs {
		ids = append(ids, int64(id))
	}

	const query = `
		SELECT id, destination_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE destination_id = ANY($1)
		ORDER BY destination_id ASC, created_at DESC, id DESC
	`
	if err := r.db.SelectContext(ctx, &reviews, query, pq.Array(ids)); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)
