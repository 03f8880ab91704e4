// Package database owns the MongoDB client lifecycle.
//
// It connects and pings at startup so a misconfigured database fails fast,
// and exposes the typed collections the repositories operate on.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mvillard/groupomania/internal/config"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database wraps the Mongo client and the application database handle.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database

	logger *zerolog.Logger
}

// New connects to MongoDB, verifies connectivity with a ping, and ensures
// the unique email index on the users collection.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database.Name)

	// Uniqueness of emails is enforced by the store, not by application
	// checks alone; a duplicate insert surfaces as a duplicate key error.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create email index: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to mongodb")

	return &Database{
		Client: client,
		DB:     db,
		logger: logger,
	}, nil
}

// Users returns the users collection.
func (d *Database) Users() *mongo.Collection { return d.DB.Collection("users") }

// Posts returns the posts collection.
func (d *Database) Posts() *mongo.Collection { return d.DB.Collection("posts") }

// Comments returns the comments collection.
func (d *Database) Comments() *mongo.Collection { return d.DB.Collection("comments") }

// Ping verifies connectivity, used by the health endpoint.
func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, nil)
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	if err := d.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	d.logger.Info().Msg("mongodb connection closed")
	return nil
}
