package ports

import (
	"context"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	// ListByDestination returns newest first.
	ListByDestination(ctx context.Context, destinationID domain.DestinationID) ([]domain.Review, error)
	// ListByDestinations is the has-many fetch for a set of destinations.
	ListByDestinations(ctx context.Context, destinationIDs []domain.DestinationID) ([]domain.Review, error)
	Delete(ctx context.Context, id int64) error
}
