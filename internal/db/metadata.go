//-------------------------------------------------------------------------
//
// FlexiMart Data Toolkit
//
// Portions copyright (c) 2025 - 2026, FlexiMart Retail Pvt Ltd
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleximart/fleximart-datakit/internal/logging"
	"github.com/fleximart/fleximart-datakit/pkg/version"
)

const metadataTable = "fleximart_metadata"

// createMetadataTableSQL creates the metadata table if it doesn't exist.
const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS fleximart_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveMetadata saves the given key/value entries to the metadata table,
// stamping the toolkit version and update time alongside them.
func SaveMetadata(ctx context.Context, pool *pgxpool.Pool, entries map[string]string) error {
	// Create table if it doesn't exist
	_, err := pool.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"toolkit_version": version.Short(),
		"updated_at":      time.Now().UTC().Format(time.RFC3339),
	}
	for key, value := range entries {
		metadata[key] = value
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO fleximart_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Int("entries", len(metadata)).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM fleximart_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM fleximart_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// DeleteMetadataPrefix removes all metadata entries whose key starts with
// the given prefix. The metadata table is shared between subsystems, so
// reinitializing one must not clobber the others' entries. A missing
// table is not an error.
func DeleteMetadataPrefix(ctx context.Context, pool *pgxpool.Pool, prefix string) error {
	exists, err := MetadataExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check metadata table: %w", err)
	}
	if !exists {
		return nil
	}

	tag, err := pool.Exec(ctx, `
        DELETE FROM fleximart_metadata WHERE key LIKE $1 || '%'
    `, prefix)
	if err != nil {
		return fmt.Errorf("failed to delete metadata with prefix %s: %w", prefix, err)
	}

	logging.Debug().
		Str("prefix", prefix).
		Int64("deleted", tag.RowsAffected()).
		Msg("Deleted metadata entries")

	return nil
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}
