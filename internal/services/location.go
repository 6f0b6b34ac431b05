package services

import (
	"context"
	"fmt"

	"github.com/blood-heros/apiserver/types"
)

// LocationRepository defines access to the reference location data.
type LocationRepository interface {
	ListDistricts(ctx context.Context) ([]types.District, error)
	ListUpazilas(ctx context.Context) ([]types.Upazila, error)
	UpsertDistricts(ctx context.Context, districts []types.District) (int, error)
	UpsertUpazilas(ctx context.Context, upazilas []types.Upazila) (int, error)
}

// LocationService serves districts and upazilas.
type LocationService struct {
	repo LocationRepository
}

func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

func (s *LocationService) ListDistricts(ctx context.Context) ([]types.District, error) {
	return s.repo.ListDistricts(ctx)
}

func (s *LocationService) ListUpazilas(ctx context.Context) ([]types.Upazila, error) {
	return s.repo.ListUpazilas(ctx)
}

// Seed writes the reference datasets. Records without an id are rejected
// because the id is the upsert key.
func (s *LocationService) Seed(ctx context.Context, districts []types.District, upazilas []types.Upazila) (int, int, error) {
	for i, d := range districts {
		if d.ID == "" {
			return 0, 0, invalid("district %d has no id", i)
		}
	}
	for i, u := range upazilas {
		if u.ID == "" {
			return 0, 0, invalid("upazila %d has no id", i)
		}
	}

	nDistricts, err := s.repo.UpsertDistricts(ctx, districts)
	if err != nil {
		return 0, 0, fmt.Errorf("seed districts: %w", err)
	}
	nUpazilas, err := s.repo.UpsertUpazilas(ctx, upazilas)
	if err != nil {
		return nDistricts, 0, fmt.Errorf("seed upazilas: %w", err)
	}
	return nDistricts, nUpazilas, nil
}
