package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
)

type FavoriteRepository interface {
	// FindByUserAndDestination returns sql.ErrNoRows when no row exists.
	FindByUserAndDestination(ctx context.Context, userID uuid.UUID, destinationID domain.DestinationID) (*domain.Favorite, error)
	Insert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error)
	Delete(ctx context.Context, id int64) error
	// ListByUser returns the user's rows, newest first, left-joined with the
	// current destination.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteRow, error)
}
