package mongodb

import (
	"context"

	"github.com/blood-heros/apiserver/internal/db"
	"github.com/blood-heros/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reference documents are keyed by their dataset "id", not by _id.
type districtDocument struct {
	ID         string `bson:"id"`
	DivisionID string `bson:"division_id"`
	Name       string `bson:"name"`
	BnName     string `bson:"bn_name"`
	Lat        string `bson:"lat"`
	Lon        string `bson:"lon"`
	URL        string `bson:"url"`
}

func (d districtDocument) toDistrict() types.District {
	return types.District(d)
}

type upazilaDocument struct {
	ID         string `bson:"id"`
	DistrictID string `bson:"district_id"`
	Name       string `bson:"name"`
	BnName     string `bson:"bn_name"`
	URL        string `bson:"url"`
}

func (d upazilaDocument) toUpazila() types.Upazila {
	return types.Upazila(d)
}

// LocationRepository reads the district and upazila reference collections.
type LocationRepository struct {
	districts *mongo.Collection
	upazilas  *mongo.Collection
}

func NewLocationRepository(database *mongo.Database) *LocationRepository {
	return &LocationRepository{
		districts: database.Collection(db.DistrictsCollection),
		upazilas:  database.Collection(db.UpazilasCollection),
	}
}

func (r *LocationRepository) ListDistricts(ctx context.Context) ([]types.District, error) {
	return findAll(ctx, r.districts, bson.D{}, districtDocument.toDistrict)
}

func (r *LocationRepository) ListUpazilas(ctx context.Context) ([]types.Upazila, error) {
	return findAll(ctx, r.upazilas, bson.D{}, upazilaDocument.toUpazila)
}

// UpsertDistricts replaces every district by its dataset id.
func (r *LocationRepository) UpsertDistricts(ctx context.Context, districts []types.District) (int, error) {
	models := make([]mongo.WriteModel, 0, len(districts))
	for _, district := range districts {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "id", Value: district.ID}}).
			SetReplacement(districtDocument(district)).
			SetUpsert(true))
	}
	return r.bulkUpsert(ctx, r.districts, models)
}

// UpsertUpazilas replaces every upazila by its dataset id.
func (r *LocationRepository) UpsertUpazilas(ctx context.Context, upazilas []types.Upazila) (int, error) {
	models := make([]mongo.WriteModel, 0, len(upazilas))
	for _, upazila := range upazilas {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "id", Value: upazila.ID}}).
			SetReplacement(upazilaDocument(upazila)).
			SetUpsert(true))
	}
	return r.bulkUpsert(ctx, r.upazilas, models)
}

func (r *LocationRepository) bulkUpsert(ctx context.Context, coll *mongo.Collection, models []mongo.WriteModel) (int, error) {
	if len(models) == 0 {
		return 0, nil
	}
	result, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(result.MatchedCount + result.UpsertedCount), nil
}
