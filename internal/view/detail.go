package view

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/service"
)

var (
	ErrViewClosed = errors.New("view: closed")
	ErrNotLoaded  = errors.New("view: destination not loaded")
)

type DestinationSource interface {
	Get(ctx context.Context, id domain.DestinationID) (*domain.Destination, error)
	RefreshAggregate(ctx context.Context, id domain.DestinationID) (domain.ReviewAggregate, error)
}

type FavoriteReconciler interface {
	Toggle(ctx context.Context, session domain.Session, destination domain.Destination) (domain.ToggleStatus, error)
	List(ctx context.Context, session domain.Session) ([]domain.FavoriteItem, error)
	IsFavorite(ctx context.Context, session domain.Session, id domain.DestinationID) (bool, error)
}

type ReviewWriter interface {
	Create(ctx context.Context, session domain.Session, destinationID domain.DestinationID, input service.ReviewCreateInput) (*domain.Review, domain.ReviewAggregate, error)
}

// Snapshot is what the detail page renders.
type Snapshot struct {
	Destination domain.Destination `json:"destination"`
	IsFavorite  bool               `json:"is_favorite"`
	Toggle      string             `json:"favorite_state"`
}

// Detail is one destination page bound to one session. Results that land
// after Close are dropped.
type Detail struct {
	destinations DestinationSource
	favorites    FavoriteReconciler
	reviews      ReviewWriter

	session domain.Session
	id      domain.DestinationID

	mu     sync.Mutex
	closed bool
	dest   *domain.Destination
	toggle *FavoriteToggle
}

func NewDetail(destinations DestinationSource, favorites FavoriteReconciler, reviews ReviewWriter, session domain.Session, id domain.DestinationID) *Detail {
	return &Detail{
		destinations: destinations,
		favorites:    favorites,
		reviews:      reviews,
		session:      session,
		id:           id,
		toggle:       NewFavoriteToggle(false),
	}
}

func (d *Detail) Load(ctx context.Context) (Snapshot, error) {
	dest, err := d.destinations.Get(ctx, d.id)
	if err != nil {
		return Snapshot{}, err
	}
	isFav, err := d.favorites.IsFavorite(ctx, d.session, d.id)
	if err != nil {
		return Snapshot{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return Snapshot{}, ErrViewClosed
	}
	d.dest = dest
	d.toggle = NewFavoriteToggle(isFav)
	return d.snapshotLocked(), nil
}

// ToggleFavorite flips the flag optimistically, calls the reconciler and
// settles on the refetched favorites list.
func (d *Detail) ToggleFavorite(ctx context.Context) (domain.ToggleStatus, Snapshot, error) {
	if d.session.IsGuest() {
		return "", d.Snapshot(), service.ErrNotAuthenticated
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return "", Snapshot{}, ErrViewClosed
	}
	if d.dest == nil {
		d.mu.Unlock()
		return "", Snapshot{}, ErrNotLoaded
	}
	dest := *d.dest
	if _, err := d.toggle.Begin(); err != nil {
		snap := d.snapshotLocked()
		d.mu.Unlock()
		return "", snap, err
	}
	d.mu.Unlock()

	status, err := d.favorites.Toggle(ctx, d.session, dest)
	if err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.closed {
			return "", Snapshot{}, ErrViewClosed
		}
		_ = d.toggle.Rollback()
		return "", d.snapshotLocked(), err
	}

	actual := status == domain.ToggleAdded
	items, listErr := d.favorites.List(ctx, d.session)
	if listErr != nil {
		log.Printf("favorite toggle: refetch favorites for destination %s failed, keeping %s: %v", dest.ID, status, listErr)
	} else {
		actual = containsDestination(items, dest.ID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return status, Snapshot{}, ErrViewClosed
	}
	_ = d.toggle.Commit(actual)
	return status, d.snapshotLocked(), nil
}

// SubmitReview stores the review and patches the shown aggregate in place.
func (d *Detail) SubmitReview(ctx context.Context, input service.ReviewCreateInput) (*domain.Review, Snapshot, error) {
	review, agg, err := d.reviews.Create(ctx, d.session, d.id, input)
	if err != nil && review == nil {
		return nil, d.Snapshot(), err
	}
	if err != nil {
		// Stored, but the aggregate read failed. One more attempt.
		log.Printf("review submit: aggregate for destination %s failed, retrying: %v", d.id, err)
		if agg, err = d.destinations.RefreshAggregate(ctx, d.id); err != nil {
			return review, d.Snapshot(), err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return review, Snapshot{}, ErrViewClosed
	}
	if d.dest != nil {
		d.dest.Rating = agg.Rating
		d.dest.ReviewCount = agg.ReviewCount
		d.dest.Reviews = append([]domain.Review{*review}, d.dest.Reviews...)
	}
	return review, d.snapshotLocked(), nil
}

func (d *Detail) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Close tears the view down. It is safe to call more than once.
func (d *Detail) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func (d *Detail) snapshotLocked() Snapshot {
	snap := Snapshot{
		IsFavorite: d.toggle.Value(),
		Toggle:     d.toggle.State().String(),
	}
	if d.dest != nil {
		snap.Destination = *d.dest
	}
	return snap
}

func containsDestination(items []domain.FavoriteItem, id domain.DestinationID) bool {
	for _, item := range items {
		if item.DestinationID == id {
			return true
		}
	}
	return false
}
