package stubs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"imagebot/internal/models"
)

func TestMockDB_SaveAndGetGenerations(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()
	if err := db.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	gen := models.Generation{
		ChatID:    1,
		Prompt:    "a red fox in snow",
		Model:     "black-forest-labs/FLUX.1-schnell",
		Width:     1024,
		Height:    1024,
		Status:    "ok",
		LatencyMs: 1500,
		CreatedAt: time.Now(),
	}
	if err := db.SaveGeneration(ctx, gen); err != nil {
		t.Fatalf("Failed to save generation: %v", err)
	}

	generations, err := db.GetLastGenerations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Failed to get generations: %v", err)
	}
	if len(generations) != 1 {
		t.Fatalf("Expected 1 generation, got %d", len(generations))
	}
	if generations[0].Prompt != "a red fox in snow" {
		t.Errorf("Expected prompt to round-trip, got %q", generations[0].Prompt)
	}
}

func TestMockDB_GetLastGenerationsNewestFirst(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		err := db.SaveGeneration(ctx, models.Generation{
			ChatID:    1,
			Prompt:    fmt.Sprintf("prompt %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Failed to save generation: %v", err)
		}
	}

	generations, err := db.GetLastGenerations(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Failed to get generations: %v", err)
	}
	if len(generations) != 2 {
		t.Fatalf("Expected limit of 2, got %d", len(generations))
	}
	if generations[0].Prompt != "prompt 2" || generations[1].Prompt != "prompt 1" {
		t.Errorf("Expected newest first, got %q then %q", generations[0].Prompt, generations[1].Prompt)
	}
}

func TestMockDB_GenerationsAreScopedPerChat(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	db.SaveGeneration(ctx, models.Generation{ChatID: 1, Prompt: "chat one", CreatedAt: time.Now()})
	db.SaveGeneration(ctx, models.Generation{ChatID: 2, Prompt: "chat two", CreatedAt: time.Now()})

	generations, err := db.GetLastGenerations(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Failed to get generations: %v", err)
	}
	if len(generations) != 1 || generations[0].Prompt != "chat one" {
		t.Errorf("Expected only chat 1 history, got %+v", generations)
	}
}

func TestMockDB_EmptyHistory(t *testing.T) {
	db := NewMockDB()

	generations, err := db.GetLastGenerations(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("Failed to get generations: %v", err)
	}
	if len(generations) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(generations))
	}
}
