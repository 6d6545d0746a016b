package postgres

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

func New(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("pgx", dsn)
}

// dialect builds parameterized ($n) statements for the dynamic queries.
var dialect = goqu.Dialect("postgres")

const (
	tableDestinations = "destinations"
	tableReviews      = "reviews"
	tableFavorites    = "favorites"
)

var destinationColumns = []any{
	"id", "name", "category", "location", "price", "image_url", "description", "created_at",
}
