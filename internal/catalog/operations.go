//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleximart/fleximart-datakit/internal/logging"
)

// ProductSummary is the projected shape returned by ElectronicsUnder.
type ProductSummary struct {
	Name  string  `bson:"name"`
	Price float64 `bson:"price"`
	Stock int     `bson:"stock"`
}

// RatedProduct is one row of the TopRated aggregation.
type RatedProduct struct {
	ProductID string  `bson:"_id"`
	Name      string  `bson:"name"`
	AvgRating float64 `bson:"avg_rating"`
}

// CategoryPrice is one row of the AvgPriceByCategory aggregation.
type CategoryPrice struct {
	Category     string  `bson:"category"`
	AvgPrice     float64 `bson:"avg_price"`
	ProductCount int     `bson:"product_count"`
}

// ImportFile loads a JSON array of product documents into the catalog
// collection. With drop set, the collection is dropped first so the load
// is repeatable. Returns the number of documents inserted.
func (c *Catalog) ImportFile(ctx context.Context, path string, drop bool) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return 0, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("catalog file %s contains no products", path)
	}

	if drop {
		if err := c.products.Drop(ctx); err != nil {
			return 0, fmt.Errorf("failed to drop collection: %w", err)
		}
	}

	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}

	res, err := c.products.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert products: %w", err)
	}

	logging.Info().
		Int("products", len(res.InsertedIDs)).
		Str("file", path).
		Msg("Loaded product catalog")

	return len(res.InsertedIDs), nil
}

// ElectronicsUnder returns Electronics products priced strictly below
// maxPrice, most expensive first.
func (c *Catalog) ElectronicsUnder(ctx context.Context, maxPrice float64) ([]ProductSummary, error) {
	filter := bson.D{
		{Key: "category", Value: "Electronics"},
		{Key: "price", Value: bson.D{{Key: "$lt", Value: maxPrice}}},
	}
	opts := options.Find().
		SetProjection(bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: 1},
			{Key: "price", Value: 1},
			{Key: "stock", Value: 1},
		}).
		SetSort(bson.D{{Key: "price", Value: -1}})

	cur, err := c.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query electronics: %w", err)
	}
	defer cur.Close(ctx)

	var out []ProductSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode electronics results: %w", err)
	}
	return out, nil
}

// TopRated unwinds the embedded reviews and returns products whose average
// rating is at least minRating, best rated first. Products with no reviews
// never appear. Ties are broken by product id so the order is stable.
func (c *Catalog) TopRated(ctx context.Context, minRating float64) ([]RatedProduct, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$reviews"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "name", Value: bson.D{{Key: "$first", Value: "$name"}}},
			{Key: "avg_rating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
		}}},
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "avg_rating", Value: bson.D{{Key: "$gte", Value: minRating}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "avg_rating", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}

	cur, err := c.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cur.Close(ctx)

	var out []RatedProduct
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode rating results: %w", err)
	}
	return out, nil
}

// AddReview pushes a review onto the product with the given business code.
// An empty review date is stamped with today's UTC date. Returns the
// matched and modified document counts; matched 0 means no such product.
func (c *Catalog) AddReview(ctx context.Context, productID string, review Review) (matched, modified int64, err error) {
	if review.Date == "" {
		review.Date = time.Now().UTC().Format("2006-01-02")
	}

	res, err := c.products.UpdateOne(ctx,
		bson.D{{Key: "product_id", Value: productID}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}}},
	)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to add review to %s: %w", productID, err)
	}

	logging.Debug().
		Str("product_id", productID).
		Int64("matched", res.MatchedCount).
		Int64("modified", res.ModifiedCount).
		Msg("Added review")

	return res.MatchedCount, res.ModifiedCount, nil
}

// AvgPriceByCategory returns the average price and product count per
// category, most expensive category first.
func (c *Catalog) AvgPriceByCategory(ctx context.Context) ([]CategoryPrice, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "avg_price", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "product_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "avg_price", Value: 1},
			{Key: "product_count", Value: 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "avg_price", Value: -1}}}},
	}

	cur, err := c.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category prices: %w", err)
	}
	defer cur.Close(ctx)

	var out []CategoryPrice
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode category price results: %w", err)
	}
	return out, nil
}
