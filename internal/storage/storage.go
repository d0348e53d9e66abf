package storage

import (
	"context"

	"imagebot/internal/models"
)

// Storage defines the interface for generation history persistence
type Storage interface {
	// SaveGeneration records one generation attempt, successful or not
	SaveGeneration(ctx context.Context, gen models.Generation) error

	// GetLastGenerations returns the most recent generations for a chat,
	// newest first
	GetLastGenerations(ctx context.Context, chatID int64, limit int) ([]models.Generation, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
