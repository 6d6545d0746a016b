package service

import (
	"context"

	"github.com/njprem/ExploreNusa_BackEnd/internal/catalog"
	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

type DestinationService struct {
	destinations ports.DestinationRepository
	reviews      ports.ReviewRepository
}

// DestinationListResult carries the filtered page plus the price bounds of
// the whole category, which seed the range inputs.
type DestinationListResult struct {
	Items    []domain.Destination
	Category domain.Category
	Sort     catalog.SortKey
	MinPrice int64
	MaxPrice int64
}

func NewDestinationService(destinations ports.DestinationRepository, reviews ports.ReviewRepository) *DestinationService {
	return &DestinationService{destinations: destinations, reviews: reviews}
}

func (s *DestinationService) List(ctx context.Context, category domain.Category, query catalog.Query) (*DestinationListResult, error) {
	rows, err := s.destinations.List(ctx, category)
	if err != nil {
		return nil, backendFailure("list destinations", err)
	}

	ids := make([]domain.DestinationID, 0, len(rows))
	for _, d := range rows {
		ids = append(ids, d.ID)
	}
	reviews, err := s.reviews.ListByDestinations(ctx, ids)
	if err != nil {
		return nil, backendFailure("list reviews", err)
	}

	annotated := catalog.Annotate(rows, reviews)
	lo, hi := catalog.PriceBounds(annotated)
	if query.Sort == "" {
		query.Sort = catalog.DefaultSort
	}

	return &DestinationListResult{
		Items:    catalog.Apply(annotated, query),
		Category: category,
		Sort:     query.Sort,
		MinPrice: lo,
		MaxPrice: hi,
	}, nil
}

// Get returns the destination with its reviews inlined and aggregated.
func (s *DestinationService) Get(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	if !id.Valid() {
		return nil, ErrInvalidDestination
	}
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, backendFailure("find destination", err)
	}

	reviews, err := s.reviews.ListByDestination(ctx, id)
	if err != nil {
		return nil, backendFailure("list reviews", err)
	}
	dest.Reviews = reviews
	annotated := catalog.Annotate([]domain.Destination{*dest}, nil)
	return &annotated[0], nil
}

// RefreshAggregate recomputes rating and review count after a review write.
func (s *DestinationService) RefreshAggregate(ctx context.Context, id domain.DestinationID) (domain.ReviewAggregate, error) {
	return refreshAggregate(ctx, s.reviews, id)
}

func refreshAggregate(ctx context.Context, reviews ports.ReviewRepository, id domain.DestinationID) (domain.ReviewAggregate, error) {
	list, err := reviews.ListByDestination(ctx, id)
	if err != nil {
		return domain.ReviewAggregate{DestinationID: id}, backendFailure("list reviews", err)
	}
	return catalog.Aggregate(id, list), nil
}
