// Package repository opens the configured data store and exposes its
// repositories behind the service interfaces.
package repository

import (
	"context"
	"fmt"

	"github.com/blood-heros/apiserver/config"
	"github.com/blood-heros/apiserver/internal/db"
	"github.com/blood-heros/apiserver/internal/services"
	"github.com/blood-heros/apiserver/internal/store/mongodb"
	"github.com/blood-heros/apiserver/internal/store/postgres"
	"go.mongodb.org/mongo-driver/mongo"
)

// Set is the shared data-store handle for the process.
type Set struct {
	Users     services.UserRepository
	Donations services.DonationRepository
	Blogs     services.BlogRepository
	Locations services.LocationRepository

	Ping  func(ctx context.Context) error
	Close func() error
}

// Open connects to the backend named in cfg.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Set, error) {
	switch cfg.Backend {
	case config.BackendMongo, "":
		conn, err := db.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		set, err := newMongoSet(ctx, conn.Database)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		set.Ping = conn.Ping
		set.Close = conn.Close
		return set, nil
	case config.BackendPostgres:
		conn, err := db.OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Set{
			Users:     postgres.NewUserRepository(conn),
			Donations: postgres.NewDonationRepository(conn),
			Blogs:     postgres.NewBlogRepository(conn),
			Locations: postgres.NewLocationRepository(conn),
			Ping:      conn.PingContext,
			Close:     conn.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}
}

// newMongoSet creates the indexes the repositories depend on, including the
// unique email index behind duplicate registration, before handing them out.
func newMongoSet(ctx context.Context, database *mongo.Database) (*Set, error) {
	if err := mongodb.EnsureIndexes(ctx, database); err != nil {
		return nil, err
	}
	return &Set{
		Users:     mongodb.NewUserRepository(database),
		Donations: mongodb.NewDonationRepository(database),
		Blogs:     mongodb.NewBlogRepository(database),
		Locations: mongodb.NewLocationRepository(database),
	}, nil
}
