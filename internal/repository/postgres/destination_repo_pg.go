package postgres

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) List(ctx context.Context, category domain.Category) ([]domain.Destination, error) {
	ds := dialect.From(tableDestinations).Prepared(true).
		Select(destinationColumns...).
		Order(goqu.I("id").Asc())
	if category != "" && category != domain.CategoryAll {
		ds = ds.Where(goqu.Ex{"category": string(category)})
	}
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}

	destinations := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &destinations, query, args...); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id domain.DestinationID) (*domain.Destination, error) {
	const query = `
		SELECT id, name, category, location, price, image_url, description, created_at
		FROM destinations
		WHERE id = $1
	`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, int64(id)); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	const query = `
		INSERT INTO destinations (name, category, location, price, image_url, description)
		VALUES (:name, :category, :location, :price, :image_url, :description)
		RETURNING id, name, category, location, price, image_url, description, created_at
	`
	args := map[string]any{
		"name":        valueOrDefault(fields.Name, ""),
		"category":    categoryOrDefault(fields.Category),
		"location":    valueOrDefault(fields.Location, ""),
		"price":       valueOrDefault(fields.Price, ""),
		"image_url":   valueOrDefault(fields.ImageURL, ""),
		"description": valueOrDefault(fields.Description, ""),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var dest domain.Destination
		if err := rows.StructScan(&dest); err != nil {
			return nil, err
		}
		return &dest, nil
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nil, sql.ErrNoRows
}

// Update writes only the fields that are set.
func (r *DestinationRepository) Update(ctx context.Context, id domain.DestinationID, fields domain.DestinationFields) (*domain.Destination, error) {
	record := goqu.Record{}
	if fields.Name != nil {
		record["name"] = *fields.Name
	}
	if fields.Category != nil {
		record["category"] = string(*fields.Category)
	}
	if fields.Location != nil {
		record["location"] = *fields.Location
	}
	if fields.Price != nil {
		record["price"] = *fields.Price
	}
	if fields.ImageURL != nil {
		record["image_url"] = *fields.ImageURL
	}
	if fields.Description != nil {
		record["description"] = *fields.Description
	}
	if len(record) == 0 {
		return r.FindByID(ctx, id)
	}

	query, args, err := dialect.Update(tableDestinations).Prepared(true).
		Set(record).
		Where(goqu.Ex{"id": int64(id)}).
		Returning(destinationColumns...).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, args...); err != nil {
		return nil, err
	}
	return &dest, nil
}

// Delete removes the row only. Reviews and favorites that point at it are
// left in place.
func (r *DestinationRepository) Delete(ctx context.Context, id domain.DestinationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func valueOrDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func categoryOrDefault(c *domain.Category) string {
	if c == nil {
		return string(domain.CategoryNature)
	}
	return string(*c)
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)
