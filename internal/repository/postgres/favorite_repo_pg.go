package postgres

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) FindByUserAndDestination(ctx context.Context, userID uuid.UUID, destinationID domain.DestinationID) (*domain.Favorite, error) {
	query, args, err := dialect.From(tableFavorites).Prepared(true).
		Select("id", "user_id", "destination_id", "name", "location", "price", "image_url").
		Where(goqu.Ex{
			"user_id":        userID.String(),
			"destination_id": int64(destinationID),
		}).
		Order(goqu.I("id").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var favorite domain.Favorite
	if err := r.db.GetContext(ctx, &favorite, query, args...); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) Insert(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	const query = `
		INSERT INTO favorites (user_id, destination_id, name, location, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, destination_id, name, location, price, image_url
	`
	var stored domain.Favorite
	err := r.db.GetContext(ctx, &stored, query,
		favorite.UserID,
		int64(favorite.DestinationID),
		favorite.Name,
		favorite.Location,
		favorite.Price,
		favorite.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
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

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteRow, error) {
	const query = `
		SELECT
			f.id,
			f.user_id,
			f.destination_id,
			f.name,
			f.location,
			f.price,
			f.image_url,
			d.name AS dest_name,
			d.category AS dest_category,
			d.location AS dest_location,
			d.price AS dest_price,
			d.image_url AS dest_image_url,
			d.description AS dest_description
		FROM favorites f
		LEFT JOIN destinations d ON d.id = f.destination_id
		WHERE f.user_id = $1
		ORDER BY f.id DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.FavoriteRow, 0)
	for rows.Next() {
		var item domain.FavoriteRow
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
