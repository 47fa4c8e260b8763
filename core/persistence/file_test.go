package persistence_test

import (
	"bytes"
	"context"
	"testing"

	"go-assistant-api/core/persistence"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := persistence.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	value := []byte(`{"events":[]}`)
	if err := store.Save(ctx, "calendar:events", value); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(ctx, "calendar:events")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("got %q, want %q", got, value)
	}

	// Overwrite replaces the value.
	if err := store.Save(ctx, "calendar:events", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Load(ctx, "calendar:events")
	if string(got) != "v2" {
		t.Errorf("got %q after overwrite", got)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := persistence.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(context.Background(), "nothing"); err != persistence.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
