package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type credentialRepo struct {
	db *sql.DB
}

func (r *credentialRepo) SetAPIKey(ctx context.Context, provider, key string) error {
	if provider == "" || key == "" {
		return errors.New("provider and key are required")
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO credentials (provider, api_key, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET api_key = excluded.api_key, updated_at = excluded.updated_at`,
		provider, key, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

func (r *credentialRepo) APIKey(ctx context.Context, provider string) (string, error) {
	var key string
	err := r.db.QueryRowContext(ctx,
		`SELECT api_key FROM credentials WHERE provider = ?`, provider).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load api key: %w", err)
	}
	return key, nil
}

func (r *credentialRepo) Any(ctx context.Context) (string, string, error) {
	var provider, key string
	err := r.db.QueryRowContext(ctx,
		`SELECT provider, api_key FROM credentials ORDER BY updated_at DESC, provider LIMIT 1`).Scan(&provider, &key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("load api key: %w", err)
	}
	return provider, key, nil
}

func (r *credentialRepo) ClearAPIKey(ctx context.Context, provider string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE provider = ?`, provider); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	return nil
}
