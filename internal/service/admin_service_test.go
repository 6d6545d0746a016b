package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/media"
)

func strPtr(v string) *string { return &v }

func completeFields() domain.DestinationFields {
	cat := domain.Category("alam")
	return domain.DestinationFields{
		Name:        strPtr(" Danau Toba "),
		Category:    &cat,
		Location:    strPtr("Sumatera Utara"),
		Price:       strPtr("Rp 20.000"),
		ImageURL:    strPtr("https://img.local/toba.jpg"),
		Description: strPtr("Danau vulkanik"),
	}
}

func TestAdminService_CreateNormalizesAndStartsUnrated(t *testing.T) {
	svc := NewAdminService(newMemoryDestinationRepo(), &memoryReviewRepo{}, nil, AdminServiceConfig{})

	dest, err := svc.Create(context.Background(), completeFields())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if dest.Name != "Danau Toba" || dest.Category != domain.CategoryNature {
		t.Fatalf("expected trimmed name and canonical category, got %+v", dest)
	}
	if dest.Rating != 0 || dest.ReviewCount != 0 {
		t.Fatalf("expected sentinel rating, got %+v", dest)
	}
}

func TestAdminService_CreateRejectsIncompleteInput(t *testing.T) {
	svc := NewAdminService(newMemoryDestinationRepo(), &memoryReviewRepo{}, nil, AdminServiceConfig{})

	fields := completeFields()
	fields.Location = strPtr("  ")
	if _, err := svc.Create(context.Background(), fields); !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation for blank location, got %v", err)
	}

	fields = completeFields()
	bad := domain.Category("Kuliner")
	fields.Category = &bad
	if _, err := svc.Create(context.Background(), fields); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown category, got %v", err)
	}
}

func TestAdminService_ListNewestFirst(t *testing.T) {
	repo := newMemoryDestinationRepo(
		domain.Destination{ID: 1, Category: domain.CategoryNature},
		domain.Destination{ID: 5, Category: domain.CategoryCulture},
		domain.Destination{ID: 3, Category: domain.CategoryNature},
	)
	svc := NewAdminService(repo, &memoryReviewRepo{}, nil, AdminServiceConfig{})

	items, err := svc.List(context.Background(), domain.CategoryAll)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 3 || items[0].ID != 5 || items[1].ID != 3 || items[2].ID != 1 {
		t.Fatalf("expected ids 5,3,1, got %+v", items)
	}
}

func TestAdminService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryDestinationRepo(domain.Destination{ID: 4, Name: "Raja Ampat", Category: domain.CategoryNature, Price: "Rp 1.000.000"})
	svc := NewAdminService(repo, &memoryReviewRepo{}, nil, AdminServiceConfig{})

	if _, err := svc.Update(ctx, 4, domain.DestinationFields{}); !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation for empty patch, got %v", err)
	}
	dest, err := svc.Update(ctx, 4, domain.DestinationFields{Price: strPtr("Rp 900.000")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if dest.Price != "Rp 900.000" || dest.Name != "Raja Ampat" {
		t.Fatalf("expected partial update, got %+v", dest)
	}
	if _, err := svc.Update(ctx, 9, domain.DestinationFields{Price: strPtr("1")}); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, 4); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, 4); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound on second delete, got %v", err)
	}
}

func TestAdminService_UploadImage(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryDestinationRepo(domain.Destination{ID: 2, Name: "Bromo", Category: domain.CategoryNature})
	storage := &memoryStorage{}
	svc := NewAdminService(repo, &memoryReviewRepo{}, storage, AdminServiceConfig{
		Bucket:    "destinations",
		Inspector: media.NewInspector(0, 0),
	})

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	dest, err := svc.UploadImage(ctx, 2, media.Upload{Reader: &buf, FileName: "bromo.png"})
	if err != nil {
		t.Fatalf("UploadImage returned error: %v", err)
	}
	if !strings.HasPrefix(dest.ImageURL, "http://cdn.local/destinations/destinations/2/") || !strings.HasSuffix(dest.ImageURL, ".png") {
		t.Fatalf("unexpected image url %s", dest.ImageURL)
	}
	if len(storage.objects) != 1 {
		t.Fatalf("expected one stored object, got %d", len(storage.objects))
	}

	_, err = svc.UploadImage(ctx, 2, media.Upload{Reader: strings.NewReader("plain text")})
	if !errors.Is(err, ErrDestinationValidation) {
		t.Fatalf("expected ErrDestinationValidation for non-image, got %v", err)
	}

	disabled := NewAdminService(repo, &memoryReviewRepo{}, nil, AdminServiceConfig{})
	if _, err := disabled.UploadImage(ctx, 2, media.Upload{}); !errors.Is(err, ErrImageUploadDisabled) {
		t.Fatalf("expected ErrImageUploadDisabled, got %v", err)
	}
}
