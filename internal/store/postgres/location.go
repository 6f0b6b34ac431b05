package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blood-heros/apiserver/types"
)

// LocationRepository reads the district and upazila reference tables.
type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) ListDistricts(ctx context.Context) ([]types.District, error) {
	const query = `SELECT id, division_id, name, bn_name, lat, lon, url FROM districts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	districts := make([]types.District, 0)
	for rows.Next() {
		var d types.District
		if err := rows.Scan(&d.ID, &d.DivisionID, &d.Name, &d.BnName, &d.Lat, &d.Lon, &d.URL); err != nil {
			return nil, err
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *LocationRepository) ListUpazilas(ctx context.Context) ([]types.Upazila, error) {
	const query = `SELECT id, district_id, name, bn_name, url FROM upazilas ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	upazilas := make([]types.Upazila, 0)
	for rows.Next() {
		var u types.Upazila
		if err := rows.Scan(&u.ID, &u.DistrictID, &u.Name, &u.BnName, &u.URL); err != nil {
			return nil, err
		}
		upazilas = append(upazilas, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return upazilas, nil
}

// UpsertDistricts writes every district in one transaction.
func (r *LocationRepository) UpsertDistricts(ctx context.Context, districts []types.District) (int, error) {
	const query = `
		INSERT INTO districts (id, division_id, name, bn_name, lat, lon, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET division_id = EXCLUDED.division_id,
			name = EXCLUDED.name,
			bn_name = EXCLUDED.bn_name,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			url = EXCLUDED.url`
	return r.upsert(ctx, query, len(districts), func(i int) []any {
		d := districts[i]
		return []any{d.ID, d.DivisionID, d.Name, d.BnName, d.Lat, d.Lon, d.URL}
	})
}

// UpsertUpazilas writes every upazila in one transaction.
func (r *LocationRepository) UpsertUpazilas(ctx context.Context, upazilas []types.Upazila) (int, error) {
	const query = `
		INSERT INTO upazilas (id, district_id, name, bn_name, url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET district_id = EXCLUDED.district_id,
			name = EXCLUDED.name,
			bn_name = EXCLUDED.bn_name,
			url = EXCLUDED.url`
	return r.upsert(ctx, query, len(upazilas), func(i int) []any {
		u := upazilas[i]
		return []any{u.ID, u.DistrictID, u.Name, u.BnName, u.URL}
	})
}

func (r *LocationRepository) upsert(ctx context.Context, query string, n int, args func(int) []any) (int, error) {
	if n == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return 0, fmt.Errorf("upsert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
