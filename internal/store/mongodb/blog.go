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

type blogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Thumbnail   string             `bson:"thumbnail"`
	Content     string             `bson:"content"`
	AuthorEmail string             `bson:"authorEmail,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d blogDocument) toBlog() types.Blog {
	return types.Blog{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Thumbnail:   d.Thumbnail,
		Content:     d.Content,
		AuthorEmail: d.AuthorEmail,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

// BlogRepository handles persistence for blogs.
type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(database *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: database.Collection(db.BlogsCollection)}
}

func (r *BlogRepository) List(ctx context.Context) ([]types.Blog, error) {
	return findAll(ctx, r.coll, bson.D{}, blogDocument.toBlog)
}

func (r *BlogRepository) ListByStatus(ctx context.Context, status string) ([]types.Blog, error) {
	return findAll(ctx, r.coll, bson.D{{Key: "status", Value: status}}, blogDocument.toBlog)
}

func (r *BlogRepository) Create(ctx context.Context, blog types.Blog) (types.Blog, error) {
	result, err := r.coll.InsertOne(ctx, blogDocument{
		Title:       blog.Title,
		Thumbnail:   blog.Thumbnail,
		Content:     blog.Content,
		AuthorEmail: blog.AuthorEmail,
		Status:      blog.Status,
		CreatedAt:   blog.CreatedAt,
	})
	if err != nil {
		return types.Blog{}, translate(err)
	}
	blog.ID = insertedID(result)
	return blog, nil
}

func (r *BlogRepository) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	return setByID(ctx, r.coll, id, bson.D{{Key: "status", Value: status}})
}

func (r *BlogRepository) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	return deleteByID(ctx, r.coll, id)
}
