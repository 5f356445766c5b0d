//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package catalog works the FlexiMart product catalog as documents in
// MongoDB: one document per product with embedded reviews.
package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// Review is one embedded review on a product document.
type Review struct {
	User    string `bson:"user" json:"user"`
	Rating  int    `bson:"rating" json:"rating"`
	Comment string `bson:"comment" json:"comment"`
	Date    string `bson:"date" json:"date"` // YYYY-MM-DD
}

// Product is one catalog document. ProductID carries the business code
// (ELEC001 style), matching the warehouse product dimension.
type Product struct {
	ProductID string   `bson:"product_id" json:"product_id"`
	Name      string   `bson:"name" json:"name"`
	Category  string   `bson:"category" json:"category"`
	Price     float64  `bson:"price" json:"price"`
	Stock     int      `bson:"stock" json:"stock"`
	Reviews   []Review `bson:"reviews" json:"reviews"`
}

// Catalog is a connected product catalog.
type Catalog struct {
	client   *mongo.Client
	products *mongo.Collection
}

// Connect connects to MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database, collection string) (*Catalog, error) {
	logging.Debug().
		Str("uri", uri).
		Str("database", database).
		Str("collection", collection).
		Msg("Connecting to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logging.Info().
		Str("database", database).
		Str("collection", collection).
		Msg("Connected to MongoDB")

	return &Catalog{
		client:   client,
		products: client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects from MongoDB.
func (c *Catalog) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
