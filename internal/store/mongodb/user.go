package mongodb

import (
	"context"
	"time"

	"github.com/blood-heros/apiserver/internal/db"
	"github.com/blood-heros/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Name       string             `bson:"name"`
	Photo      string             `bson:"photo"`
	BloodGroup string             `bson:"bloodGroup"`
	District   string             `bson:"district"`
	Upazila    string             `bson:"upazila"`
	Status     string             `bson:"status"`
	Role       string             `bson:"role"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d userDocument) toUser() types.User {
	return types.User{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		Name:       d.Name,
		Photo:      d.Photo,
		BloodGroup: d.BloodGroup,
		District:   d.District,
		Upazila:    d.Upazila,
		Status:     d.Status,
		Role:       d.Role,
		CreatedAt:  d.CreatedAt,
	}
}

// UserRepository handles persistence for users.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{coll: database.Collection(db.UsersCollection)}
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	return findAll(ctx, r.coll, bson.D{}, userDocument.toUser)
}

func (r *UserRepository) Search(ctx context.Context, search types.UserSearch) ([]types.User, error) {
	filter := bson.D{}
	if search.BloodGroup != "" {
		filter = append(filter, bson.E{Key: "bloodGroup", Value: search.BloodGroup})
	}
	if search.District != "" {
		filter = append(filter, bson.E{Key: "district", Value: search.District})
	}
	if search.Upazila != "" {
		filter = append(filter, bson.E{Key: "upazila", Value: search.Upazila})
	}
	return findAll(ctx, r.coll, filter, userDocument.toUser)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		return types.User{}, translate(err)
	}
	return doc.toUser(), nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	doc := userDocument{
		Email:      user.Email,
		Name:       user.Name,
		Photo:      user.Photo,
		BloodGroup: user.BloodGroup,
		District:   user.District,
		Upazila:    user.Upazila,
		Status:     user.Status,
		Role:       user.Role,
		CreatedAt:  user.CreatedAt,
	}
	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return types.User{}, translate(err)
	}
	user.ID = insertedID(result)
	return user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, email string, profile types.UserProfile) (types.UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: profile.Name},
		{Key: "email", Value: profile.Email},
		{Key: "bloodGroup", Value: profile.BloodGroup},
		{Key: "photo", Value: profile.Photo},
		{Key: "upazila", Value: profile.Upazila},
		{Key: "district", Value: profile.District},
	}}}
	result, err := r.coll.UpdateOne(ctx, bson.D{{Key: "email", Value: email}}, update)
	if err != nil {
		return types.UpdateResult{}, translate(err)
	}
	return updateResult(result)
}

func (r *UserRepository) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	return setByID(ctx, r.coll, id, bson.D{{Key: "status", Value: status}})
}

func (r *UserRepository) SetRole(ctx context.Context, id, role string) (types.UpdateResult, error) {
	return setByID(ctx, r.coll, id, bson.D{{Key: "role", Value: role}})
}
