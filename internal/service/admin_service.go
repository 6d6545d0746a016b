package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/ExploreNusa_BackEnd/internal/catalog"
	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/media"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

type AdminServiceConfig struct {
	Bucket    string
	Inspector *media.Inspector
}

// AdminService is the catalogue management surface. It has no access check
// of its own; routes are gated by feature flags.
type AdminService struct {
	destinations ports.DestinationRepository
	reviews      ports.ReviewRepository
	storage      ports.ObjectStorage
	bucket       string
	inspector    *media.Inspector
}

func NewAdminService(destinations ports.DestinationRepository, reviews ports.ReviewRepository, storage ports.ObjectStorage, cfg AdminServiceConfig) *AdminService {
	inspector := cfg.Inspector
	if inspector == nil {
		inspector = media.NewInspector(0, 0)
	}
	return &AdminService{
		destinations: destinations,
		reviews:      reviews,
		storage:      storage,
		bucket:       cfg.Bucket,
		inspector:    inspector,
	}
}

// Create inserts a destination. Every field is required and the rating
// starts at the no-reviews sentinel.
func (s *AdminService) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	normalized, err := normalizeFields(fields, true)
	if err != nil {
		return nil, err
	}
	dest, err := s.destinations.Create(ctx, normalized)
	if err != nil {
		return nil, backendFailure("create destination", err)
	}
	dest.Rating = catalog.NoRating
	dest.ReviewCount = 0
	return dest, nil
}

// List returns every destination in the category, newest id first.
func (s *AdminService) List(ctx context.Context, category domain.Category) ([]domain.Destination, error) {
	rows, err := s.destinations.List(ctx, category)
	if err != nil {
		return nil, backendFailure("list destinations", err)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	return rows, nil
}

// Update applies a partial patch. Rating and review count are recomputed
// from reviews, never written.
func (s *AdminService) Update(ctx context.Context, id domain.DestinationID, fields domain.DestinationFields) (*domain.Destination, error) {
	if !id.Valid() {
		return nil, ErrInvalidDestination
	}
	if fields.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrDestinationValidation)
	}
	normalized, err := normalizeFields(fields, false)
	if err != nil {
		return nil, err
	}
	dest, err := s.destinations.Update(ctx, id, normalized)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, backendFailure("update destination", err)
	}
	return s.withAggregate(ctx, dest)
}

func (s *AdminService) Delete(ctx context.Context, id domain.DestinationID) error {
	if !id.Valid() {
		return ErrInvalidDestination
	}
	if err := s.destinations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return backendFailure("delete destination", err)
	}
	return nil
}

// UploadImage stores a checked image and points the destination at it.
func (s *AdminService) UploadImage(ctx context.Context, id domain.DestinationID, upload media.Upload) (*domain.Destination, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, ErrImageUploadDisabled
	}
	if !id.Valid() {
		return nil, ErrInvalidDestination
	}
	if _, err := s.destinations.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, backendFailure("find destination", err)
	}

	image, err := s.inspector.Inspect(upload)
	if err != nil {
		if isMediaRejection(err) {
			return nil, fmt.Errorf("%w: %v", ErrDestinationValidation, err)
		}
		return nil, backendFailure("read image", err)
	}

	objectName := fmt.Sprintf("destinations/%d/%s%s", int64(id), uuid.NewString(), image.Extension)
	url, err := s.storage.Upload(ctx, s.bucket, objectName, image.ContentType, bytes.NewReader(image.Bytes), int64(len(image.Bytes)))
	if err != nil {
		return nil, backendFailure("upload image", err)
	}

	dest, err := s.destinations.Update(ctx, id, domain.DestinationFields{ImageURL: &url})
	if err != nil {
		_ = s.storage.Remove(ctx, s.bucket, objectName)
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, backendFailure("set image url", err)
	}
	return s.withAggregate(ctx, dest)
}

func (s *AdminService) withAggregate(ctx context.Context, dest *domain.Destination) (*domain.Destination, error) {
	agg, err := refreshAggregate(ctx, s.reviews, dest.ID)
	if err != nil {
		return nil, err
	}
	dest.Rating = agg.Rating
	dest.ReviewCount = agg.ReviewCount
	return dest, nil
}

// normalizeFields trims values and canonicalizes the category. With
// requireAll set every field must be present and non-blank.
func normalizeFields(fields domain.DestinationFields, requireAll bool) (domain.DestinationFields, error) {
	out := domain.DestinationFields{}
	var missing []string

	text := func(name string, in *string) *string {
		if in == nil {
			if requireAll {
				missing = append(missing, name)
			}
			return nil
		}
		v := strings.TrimSpace(*in)
		if v == "" {
			missing = append(missing, name)
			return nil
		}
		return &v
	}

	out.Name = text("name", fields.Name)
	out.Location = text("location", fields.Location)
	out.Price = text("price", fields.Price)
	out.ImageURL = text("image_url", fields.ImageURL)
	out.Description = text("description", fields.Description)

	if fields.Category != nil {
		cat, ok := domain.ParseCategory(string(*fields.Category))
		if !ok {
			return out, fmt.Errorf("%w: category must be %s or %s", ErrDestinationValidation, domain.CategoryNature, domain.CategoryCulture)
		}
		out.Category = &cat
	} else if requireAll {
		missing = append(missing, "category")
	}

	if len(missing) > 0 {
		return out, fmt.Errorf("%w: missing %s", ErrDestinationValidation, strings.Join(missing, ", "))
	}
	return out, nil
}

func isMediaRejection(err error) bool {
	return errors.Is(err, media.ErrEmptyImage) ||
		errors.Is(err, media.ErrImageTooLarge) ||
		errors.Is(err, media.ErrUnsupportedFormat) ||
		errors.Is(err, media.ErrImageDimensions)
}
