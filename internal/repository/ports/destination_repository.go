package ports

import (
	"context"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
)

type DestinationRepository interface {
	// List returns destinations ordered by id ascending. CategoryAll disables
	// the category filter.
	List(ctx context.Context, category domain.Category) ([]domain.Destination, error)
	FindByID(ctx context.Context, id domain.DestinationID) (*domain.Destination, error)
	Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error)
	Update(ctx context.Context, id domain.DestinationID, fields domain.DestinationFields) (*domain.Destination, error)
	Delete(ctx context.Context, id domain.DestinationID) error
}
