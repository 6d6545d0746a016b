package service

import (
	"context"
	"database/sql"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

func userSession(name string) domain.Session {
	uid := uuid.NewString()
	return domain.Session{UID: &uid, Name: name}
}

type memoryDestinationRepo struct {
	mu     sync.Mutex
	items  map[domain.DestinationID]domain.Destination
	nextID domain.DestinationID
}

func newMemoryDestinationRepo(items ...domain.Destination) *memoryDestinationRepo {
	repo := &memoryDestinationRepo{items: make(map[domain.DestinationID]domain.Destination)}
	for _, item := range items {
		repo.items[item.ID] = item
		if item.ID > repo.nextID {
			repo.nextID = item.ID
		}
	}
	return repo
}

func (r *memoryDestinationRepo) List(_ context.Context, category domain.Category) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Destination, 0, len(r.items))
	for _, d := range r.items {
		if category != domain.CategoryAll && category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryDestinationRepo) FindByID(_ context.Context, id domain.DestinationID) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (r *memoryDestinationRepo) Create(_ context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	d := domain.Destination{ID: r.nextID, CreatedAt: time.Now()}
	applyFields(&d, fields)
	r.items[d.ID] = d
	return &d, nil
}

func (r *memoryDestinationRepo) Update(_ context.Context, id domain.DestinationID, fields domain.DestinationFields) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	applyFields(&d, fields)
	r.items[id] = d
	return &d, nil
}

func (r *memoryDestinationRepo) Delete(_ context.Context, id domain.DestinationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func applyFields(d *domain.Destination, f domain.DestinationFields) {
	if f.Name != nil {
		d.Name = *f.Name
	}
	if f.Category != nil {
		d.Category = *f.Category
	}
	if f.Location != nil {
		d.Location = *f.Location
	}
	if f.Price != nil {
		d.Price = *f.Price
	}
	if f.ImageURL != nil {
		d.ImageURL = *f.ImageURL
	}
	if f.Description != nil {
		d.Description = *f.Description
	}
}

type memoryReviewRepo struct {
	mu     sync.Mutex
	items  []domain.Review
	nextID int64
}

func (r *memoryReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *review
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.items = append(r.items, stored)
	return &stored, nil
}

func (r *memoryReviewRepo) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryReviewRepo) ListByDestination(_ context.Context, id domain.DestinationID) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Review, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].DestinationID == id {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memoryReviewRepo) ListByDestinations(_ context.Context, ids []domain.DestinationID) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[domain.DestinationID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]domain.Review, 0)
	for _, item := range r.items {
		if _, ok := want[item.DestinationID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryReviewRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

// memoryFavoriteRepo enforces the (user, destination) unique index and
// joins against the destination fake on read.
type memoryFavoriteRepo struct {
	mu           sync.Mutex
	rows         []domain.Favorite
	nextID       int64
	destinations *memoryDestinationRepo
	calls        int
	findErr      error
	skipFind     bool
}

func (r *memoryFavoriteRepo) FindByUserAndDestination(_ context.Context, userID uuid.UUID, id domain.DestinationID) (*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.skipFind {
		return nil, sql.ErrNoRows
	}
	for _, row := range r.rows {
		if row.UserID == userID && row.DestinationID == id {
			found := row
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryFavoriteRepo) Insert(_ context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, row := range r.rows {
		if row.UserID == favorite.UserID && row.DestinationID == favorite.DestinationID {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	r.nextID++
	stored := *favorite
	stored.ID = r.nextID
	r.rows = append(r.rows, stored)
	return &stored, nil
}

func (r *memoryFavoriteRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memoryFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteRow, error) {
	r.mu.Lock()
	r.calls++
	var mine []domain.Favorite
	for _, row := range r.rows {
		if row.UserID == userID {
			mine = append(mine, row)
		}
	}
	r.mu.Unlock()

	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	out := make([]domain.FavoriteRow, 0, len(mine))
	for _, fav := range mine {
		row := domain.FavoriteRow{Favorite: fav}
		if r.destinations != nil {
			if d, err := r.destinations.FindByID(ctx, fav.DestinationID); err == nil {
				cat := d.Category
				row.DestName = &d.Name
				row.DestCategory = &cat
				row.DestLocation = &d.Location
				row.DestPrice = &d.Price
				row.DestImageURL = &d.ImageURL
				row.DestDescription = &d.Description
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type memoryStorage struct {
	objects map[string][]byte
	removed []string
}

func (s *memoryStorage) Upload(_ context.Context, bucket, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[bucket+"/"+objectName] = data
	return "http://cdn.local/" + bucket + "/" + objectName, nil
}

func (s *memoryStorage) Remove(_ context.Context, bucket, objectName string) error {
	s.removed = append(s.removed, bucket+"/"+objectName)
	return nil
}

var (
	_ ports.DestinationRepository = (*memoryDestinationRepo)(nil)
	_ ports.ReviewRepository      = (*memoryReviewRepo)(nil)
	_ ports.FavoriteRepository    = (*memoryFavoriteRepo)(nil)
	_ ports.ObjectStorage         = (*memoryStorage)(nil)
)
