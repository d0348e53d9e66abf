package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"imagebot/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	return nil
}

// SaveGeneration records one generation attempt
func (db *ClickHouseDB) SaveGeneration(ctx context.Context, gen models.Generation) error {
	err := db.conn.Exec(ctx,
		`INSERT INTO generations (chat_id, prompt, model, width, height, status, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gen.ChatID, gen.Prompt, gen.Model,
		uint16(gen.Width), uint16(gen.Height),
		gen.Status, gen.LatencyMs, gen.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}
	return nil
}

// GetLastGenerations returns the most recent generations for a chat
func (db *ClickHouseDB) GetLastGenerations(ctx context.Context, chatID int64, limit int) ([]models.Generation, error) {
	rows, err := db.conn.Query(ctx,
		`SELECT chat_id, prompt, model, width, height, status, latency_ms, created_at
		 FROM generations WHERE chat_id = ? ORDER BY created_at DESC LIMIT ?`,
		chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get last generations: %w", err)
	}
	defer rows.Close()

	var generations []models.Generation
	for rows.Next() {
		var gen models.Generation
		var width, height uint16
		if err := rows.Scan(&gen.ChatID, &gen.Prompt, &gen.Model, &width, &height,
			&gen.Status, &gen.LatencyMs, &gen.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		gen.Width = int(width)
		gen.Height = int(height)
		generations = append(generations, gen)
	}
	return generations, nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
