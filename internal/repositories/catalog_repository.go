package repositories

import (
	"context"
	"database/sql"
	"errors"

	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
	"toursbackend/internal/domain/models"
)

// CatalogRepository reads tour and package prices. The catalog itself is
// managed elsewhere.
type CatalogRepository struct {
	DB intdb.DBTX
}

func (r CatalogRepository) GetTour(ctx context.Context, id string) (models.TourPrice, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.TourPrice{}, err
	}
	var t models.TourPrice
	err = db.QueryRowContext(ctx, `SELECT id, base_price FROM tours WHERE id = ? LIMIT 1`, id).
		Scan(&t.ID, &t.BasePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TourPrice{}, domain.NotFoundError{Resource: "tour", Err: err}
	}
	return t, err
}

func (r CatalogRepository) GetPackage(ctx context.Context, id string) (models.PackagePrice, error) {
	db, err := conn(r.DB)
	if err != nil {
		return models.PackagePrice{}, err
	}
	var p models.PackagePrice
	err = db.QueryRowContext(ctx, `SELECT id, tour_id, price_modifier FROM tour_packages WHERE id = ? LIMIT 1`, id).
		Scan(&p.ID, &p.TourID, &p.PriceModifier)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PackagePrice{}, domain.NotFoundError{Resource: "package", Err: err}
	}
	return p, err
}
