// Package mongodb implements the repositories on top of a MongoDB database.
package mongodb

import (
	"context"
	"errors"

	"github.com/blood-heros/apiserver/internal/store"
	"github.com/blood-heros/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func insertedID(result *mongo.InsertOneResult) string {
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

func updateResult(result *mongo.UpdateResult) (types.UpdateResult, error) {
	if result.MatchedCount == 0 {
		return types.UpdateResult{}, store.ErrNotFound
	}
	return types.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

func deleteResult(result *mongo.DeleteResult) (types.DeleteResult, error) {
	if result.DeletedCount == 0 {
		return types.DeleteResult{}, store.ErrNotFound
	}
	return types.DeleteResult{
		Acknowledged: true,
		DeletedCount: result.DeletedCount,
	}, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}
	return err
}

// findAll decodes every document matching filter into D and converts it.
// The result is never nil so an empty collection encodes as [].
func findAll[D any, T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter any,
	convert func(D) T,
	opts ...*options.FindOptions,
) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]T, 0)
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, convert(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// setByID applies a $set of fields to the document with the given hex id.
func setByID(ctx context.Context, coll *mongo.Collection, id string, fields any) (types.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.UpdateResult{}, err
	}
	result, err := coll.UpdateOne(ctx, primitive.M{"_id": oid}, primitive.M{"$set": fields})
	if err != nil {
		return types.UpdateResult{}, translate(err)
	}
	return updateResult(result)
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) (types.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.DeleteResult{}, err
	}
	result, err := coll.DeleteOne(ctx, primitive.M{"_id": oid})
	if err != nil {
		return types.DeleteResult{}, err
	}
	return deleteResult(result)
}
