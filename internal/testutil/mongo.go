//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultTestMongoURI is the default MongoDB URI for tests. Override
// with FLEXIMART_TEST_MONGO environment variable.
const DefaultTestMongoURI = "mongodb://localhost:27017"

// MongoAvailable checks if MongoDB is available for testing. Returns
// the URI if available, empty string otherwise.
func MongoAvailable() string {
	uri := os.Getenv("FLEXIMART_TEST_MONGO")
	if uri == "" {
		uri = DefaultTestMongoURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return ""
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return ""
	}

	return uri
}

// SkipIfNoMongo skips the test if MongoDB is not available.
func SkipIfNoMongo(t *testing.T) string {
	uri := MongoAvailable()
	if uri == "" {
		t.Skip("MongoDB not available, skipping integration test")
	}
	return uri
}

// TestMongoDatabase returns a uniquely named scratch database name for
// a test suite.
func TestMongoDatabase(t *testing.T, suite string) string {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	return TestDBPrefix + suite + "_" + hex.EncodeToString(randomBytes)
}

// DropMongoDatabase drops a scratch database unless the test failed,
// in which case it is kept for diagnostics.
func DropMongoDatabase(t *testing.T, uri, dbName string) {
	t.Helper()

	if t.Failed() {
		t.Logf("Test failed - keeping database %s for diagnostics", dbName)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer client.Disconnect(ctx)

	if err := client.Database(dbName).Drop(ctx); err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}
