package db

import (
	"context"
	"fmt"
	"time"

	"github.com/blood-heros/apiserver/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

// Collection names shared by the MongoDB store and the seeder.
const (
	UsersCollection            = "users"
	UpazilasCollection         = "upazilas"
	DistrictsCollection        = "districts"
	DonationRequestsCollection = "donationRequest"
	BlogsCollection            = "blogs"
)

// Mongo bundles the client with the application database.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectMongo dials the cluster with the stable server API and pings the
// primary before returning.
func ConnectMongo(ctx context.Context, cfg config.DatabaseConfig) (*Mongo, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(defaultConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{
		Client:   client,
		Database: client.Database(cfg.DBName),
	}, nil
}

// Ping checks the primary is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	return m.Client.Disconnect(ctx)
}
