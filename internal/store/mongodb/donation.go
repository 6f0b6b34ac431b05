package mongodb

import (
	"context"
	"time"

	"github.com/blood-heros/apiserver/internal/db"
	"github.com/blood-heros/apiserver/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type donationDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	RequesterName     string             `bson:"requesterName"`
	RequesterEmail    string             `bson:"requesterEmail"`
	RecipientName     string             `bson:"recipientName"`
	BloodGroup        string             `bson:"bloodGroup"`
	RecipientDistrict string             `bson:"recipientDistrict"`
	RecipientUpazila  string             `bson:"recipientUpazila"`
	HospitalName      string             `bson:"hospitalName"`
	FullAddress       string             `bson:"fullAddress"`
	DonationDate      string             `bson:"donationDate"`
	DonationTime      string             `bson:"donationTime"`
	RequestMessage    string             `bson:"requestMessage"`
	DonationStatus    string             `bson:"donationStatus"`
	DonorName         string             `bson:"donorName,omitempty"`
	DonorEmail        string             `bson:"donorEmail,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

func newDonationDocument(req types.DonationRequest) donationDocument {
	return donationDocument{
		RequesterName:     req.RequesterName,
		RequesterEmail:    req.RequesterEmail,
		RecipientName:     req.RecipientName,
		BloodGroup:        req.BloodGroup,
		RecipientDistrict: req.RecipientDistrict,
		RecipientUpazila:  req.RecipientUpazila,
		HospitalName:      req.HospitalName,
		FullAddress:       req.FullAddress,
		DonationDate:      req.DonationDate,
		DonationTime:      req.DonationTime,
		RequestMessage:    req.RequestMessage,
		DonationStatus:    req.DonationStatus,
		DonorName:         req.DonorName,
		DonorEmail:        req.DonorEmail,
		CreatedAt:         req.CreatedAt,
	}
}

func (d donationDocument) toDonation() types.DonationRequest {
	return types.DonationRequest{
		ID:                d.ID.Hex(),
		RequesterName:     d.RequesterName,
		RequesterEmail:    d.RequesterEmail,
		RecipientName:     d.RecipientName,
		BloodGroup:        d.BloodGroup,
		RecipientDistrict: d.RecipientDistrict,
		RecipientUpazila:  d.RecipientUpazila,
		HospitalName:      d.HospitalName,
		FullAddress:       d.FullAddress,
		DonationDate:      d.DonationDate,
		DonationTime:      d.DonationTime,
		RequestMessage:    d.RequestMessage,
		DonationStatus:    d.DonationStatus,
		DonorName:         d.DonorName,
		DonorEmail:        d.DonorEmail,
		CreatedAt:         d.CreatedAt,
	}
}

// DonationRepository handles persistence for donation requests.
type DonationRepository struct {
	coll *mongo.Collection
}

func NewDonationRepository(database *mongo.Database) *DonationRepository {
	return &DonationRepository{coll: database.Collection(db.DonationRequestsCollection)}
}

func (r *DonationRepository) List(ctx context.Context) ([]types.DonationRequest, error) {
	return findAll(ctx, r.coll, bson.D{}, donationDocument.toDonation)
}

func (r *DonationRepository) ListByStatus(ctx context.Context, status string) ([]types.DonationRequest, error) {
	return findAll(ctx, r.coll, bson.D{{Key: "donationStatus", Value: status}}, donationDocument.toDonation)
}

func (r *DonationRepository) ListByRequester(ctx context.Context, email string) ([]types.DonationRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll(ctx, r.coll, bson.D{{Key: "requesterEmail", Value: email}}, donationDocument.toDonation, opts)
}

func (r *DonationRepository) Get(ctx context.Context, id string) (types.DonationRequest, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.DonationRequest{}, err
	}
	var doc donationDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return types.DonationRequest{}, translate(err)
	}
	return doc.toDonation(), nil
}

func (r *DonationRepository) Create(ctx context.Context, req types.DonationRequest) (types.DonationRequest, error) {
	result, err := r.coll.InsertOne(ctx, newDonationDocument(req))
	if err != nil {
		return types.DonationRequest{}, translate(err)
	}
	req.ID = insertedID(result)
	return req, nil
}

func (r *DonationRepository) UpdateDetails(ctx context.Context, id string, details types.DonationDetails) (types.UpdateResult, error) {
	return setByID(ctx, r.coll, id, bson.D{
		{Key: "recipientName", Value: details.RecipientName},
		{Key: "bloodGroup", Value: details.BloodGroup},
		{Key: "recipientDistrict", Value: details.RecipientDistrict},
		{Key: "recipientUpazila", Value: details.RecipientUpazila},
		{Key: "hospitalName", Value: details.HospitalName},
		{Key: "fullAddress", Value: details.FullAddress},
		{Key: "donationDate", Value: details.DonationDate},
		{Key: "donationTime", Value: details.DonationTime},
		{Key: "requestMessage", Value: details.RequestMessage},
	})
}

func (r *DonationRepository) ClaimDonor(ctx context.Context, id string, claim types.DonorClaim) (types.UpdateResult, error) {
	return setByID(ctx, r.coll, id, bson.D{
		{Key: "donorName", Value: claim.DonorName},
		{Key: "donorEmail", Value: claim.DonorEmail},
		{Key: "donationStatus", Value: claim.DonationStatus},
	})
}

func (r *DonationRepository) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	return setByID(ctx, r.coll, id, bson.D{{Key: "donationStatus", Value: status}})
}

func (r *DonationRepository) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	return deleteByID(ctx, r.coll, id)
}
