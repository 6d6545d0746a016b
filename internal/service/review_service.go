package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/njprem/ExploreNusa_BackEnd/internal/catalog"
	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

type ReviewService struct {
	reviews      ports.ReviewRepository
	destinations ports.DestinationRepository
}

type ReviewCreateInput struct {
	Rating  int
	Comment string
}

func NewReviewService(reviews ports.ReviewRepository, destinations ports.DestinationRepository) *ReviewService {
	return &ReviewService{reviews: reviews, destinations: destinations}
}

// Create stores a review under the session's current display name and
// returns the refreshed aggregate for the destination.
func (s *ReviewService) Create(ctx context.Context, session domain.Session, destinationID domain.DestinationID, input ReviewCreateInput) (*domain.Review, domain.ReviewAggregate, error) {
	empty := domain.ReviewAggregate{DestinationID: destinationID}

	userID, ok := session.UserID()
	if !ok {
		return nil, empty, ErrNotAuthenticated
	}
	if !destinationID.Valid() {
		return nil, empty, ErrInvalidDestination
	}
	if input.Rating < domain.MinReviewRating || input.Rating > domain.MaxReviewRating {
		return nil, empty, fmt.Errorf("%w: rating must be between %d and %d", ErrReviewValidation, domain.MinReviewRating, domain.MaxReviewRating)
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, empty, fmt.Errorf("%w: comment is required", ErrReviewValidation)
	}
	name := strings.TrimSpace(session.Name)
	if name == "" {
		return nil, empty, fmt.Errorf("%w: display name is required", ErrReviewValidation)
	}

	if _, err := s.destinations.FindByID(ctx, destinationID); err != nil {
		if isNotFound(err) {
			return nil, empty, ErrDestinationNotFound
		}
		return nil, empty, backendFailure("find destination", err)
	}

	review, err := s.reviews.Create(ctx, &domain.Review{
		DestinationID: destinationID,
		UserID:        userID,
		UserName:      name,
		Rating:        input.Rating,
		Comment:       comment,
	})
	if err != nil {
		return nil, empty, backendFailure("create review", err)
	}

	agg, err := refreshAggregate(ctx, s.reviews, destinationID)
	if err != nil {
		return review, empty, err
	}
	return review, agg, nil
}

func (s *ReviewService) List(ctx context.Context, destinationID domain.DestinationID) (*domain.ReviewListResult, error) {
	if !destinationID.Valid() {
		return nil, ErrInvalidDestination
	}
	reviews, err := s.reviews.ListByDestination(ctx, destinationID)
	if err != nil {
		return nil, backendFailure("list reviews", err)
	}
	return &domain.ReviewListResult{
		DestinationID: destinationID,
		Reviews:       reviews,
		Aggregate:     catalog.Aggregate(destinationID, reviews),
	}, nil
}

// Delete removes a review written by the session's user.
func (s *ReviewService) Delete(ctx context.Context, session domain.Session, reviewID int64) (domain.ReviewAggregate, error) {
	userID, ok := session.UserID()
	if !ok {
		return domain.ReviewAggregate{}, ErrNotAuthenticated
	}
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if isNotFound(err) {
			return domain.ReviewAggregate{}, ErrReviewNotFound
		}
		return domain.ReviewAggregate{}, backendFailure("get review", err)
	}
	if review.UserID != userID {
		return domain.ReviewAggregate{}, ErrReviewForbidden
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if isNotFound(err) {
			return domain.ReviewAggregate{}, ErrReviewNotFound
		}
		return domain.ReviewAggregate{}, backendFailure("delete review", err)
	}
	return refreshAggregate(ctx, s.reviews, review.DestinationID)
}
