package service

import (
	"context"

	"github.com/njprem/ExploreNusa_BackEnd/internal/catalog"
	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

// FavoriteService reconciles the favorites rows with the live destinations
// and keeps at most one row per (user, destination).
type FavoriteService struct {
	favorites    ports.FavoriteRepository
	destinations ports.DestinationRepository
	reviews      ports.ReviewRepository
}

func NewFavoriteService(favoriteRepo ports.FavoriteRepository, destinationRepo ports.DestinationRepository, reviewRepo ports.ReviewRepository) *FavoriteService {
	return &FavoriteService{
		favorites:    favoriteRepo,
		destinations: destinationRepo,
		reviews:      reviewRepo,
	}
}

// List returns the session's favorites, newest first. Guests get an empty
// list without touching the backend.
func (s *FavoriteService) List(ctx context.Context, session domain.Session) ([]domain.FavoriteItem, error) {
	items := make([]domain.FavoriteItem, 0)
	userID, ok := session.UserID()
	if !ok {
		return items, nil
	}

	rows, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, backendFailure("list favorites", err)
	}
	if len(rows) == 0 {
		return items, nil
	}

	seen := make(map[domain.DestinationID]struct{}, len(rows))
	ids := make([]domain.DestinationID, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.DestinationID]; dup {
			continue
		}
		seen[row.DestinationID] = struct{}{}
		ids = append(ids, row.DestinationID)
	}
	reviews, err := s.reviews.ListByDestinations(ctx, ids)
	if err != nil {
		return nil, backendFailure("list reviews", err)
	}
	grouped := catalog.GroupReviews(reviews)

	for _, row := range rows {
		item := resolveFavorite(row)
		agg := catalog.Aggregate(row.DestinationID, grouped[row.DestinationID])
		item.Rating = agg.Rating
		item.ReviewCount = agg.ReviewCount
		items = append(items, item)
	}
	return items, nil
}

// Toggle removes the favorite when it exists and inserts a snapshot of
// destination otherwise.
func (s *FavoriteService) Toggle(ctx context.Context, session domain.Session, destination domain.Destination) (domain.ToggleStatus, error) {
	userID, ok := session.UserID()
	if !ok {
		return "", ErrNotAuthenticated
	}
	if !destination.ID.Valid() {
		return "", ErrInvalidDestination
	}

	existing, err := s.favorites.FindByUserAndDestination(ctx, userID, destination.ID)
	switch {
	case err == nil:
		if err := s.favorites.Delete(ctx, existing.ID); err != nil && !isNotFound(err) {
			return "", backendFailure("delete favorite", err)
		}
		return domain.ToggleRemoved, nil
	case isNotFound(err):
	default:
		return "", backendFailure("find favorite", err)
	}

	_, err = s.favorites.Insert(ctx, &domain.Favorite{
		UserID:        userID,
		DestinationID: destination.ID,
		Name:          optionalString(destination.Name),
		Location:      optionalString(destination.Location),
		Price:         optionalString(destination.Price),
		ImageURL:      optionalString(destination.ImageURL),
	})
	if err != nil {
		// A concurrent toggle inserted the same pair first.
		if isUniqueViolation(err) {
			return domain.ToggleAdded, nil
		}
		return "", backendFailure("insert favorite", err)
	}
	return domain.ToggleAdded, nil
}

// ToggleByID loads the destination for the snapshot, then toggles.
func (s *FavoriteService) ToggleByID(ctx context.Context, session domain.Session, id domain.DestinationID) (domain.ToggleStatus, error) {
	if session.IsGuest() {
		return "", ErrNotAuthenticated
	}
	if !id.Valid() {
		return "", ErrInvalidDestination
	}
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return "", ErrDestinationNotFound
		}
		return "", backendFailure("find destination", err)
	}
	return s.Toggle(ctx, session, *dest)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, session domain.Session, id domain.DestinationID) (bool, error) {
	userID, ok := session.UserID()
	if !ok || !id.Valid() {
		return false, nil
	}
	_, err := s.favorites.FindByUserAndDestination(ctx, userID, id)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, backendFailure("find favorite", err)
	}
}

// resolveFavorite prefers the joined destination and falls back to the
// snapshot when the destination row is gone.
func resolveFavorite(row domain.FavoriteRow) domain.FavoriteItem {
	item := domain.FavoriteItem{
		ID:            row.ID,
		DestinationID: row.DestinationID,
	}
	if row.DestName == nil {
		item.Name = derefString(row.Name)
		item.Location = derefString(row.Location)
		item.Price = derefString(row.Price)
		item.ImageURL = derefString(row.ImageURL)
		item.Stale = true
		return item
	}
	item.Name = *row.DestName
	item.Location = derefString(row.DestLocation)
	item.Price = derefString(row.DestPrice)
	item.ImageURL = derefString(row.DestImageURL)
	item.Description = derefString(row.DestDescription)
	if row.DestCategory != nil {
		item.Category = *row.DestCategory
	}
	return item
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
