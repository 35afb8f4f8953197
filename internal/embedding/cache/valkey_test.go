package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newValkeyStore(t *testing.T) *ValkeyStore {
	t.Helper()

	address := os.Getenv("VALKEY_TEST_URL")
	if address == "" {
		t.Skip("VALKEY_TEST_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := NewValkeyStore(ctx, address, os.Getenv("VALKEY_TEST_PASSWORD"), time.Minute)
	if err != nil {
		t.Fatalf("connecting to valkey: %v", err)
	}
	t.Cleanup(store.Close)

	return store
}

func TestValkeyStoreRoundTrip(t *testing.T) {
	store := newValkeyStore(t)
	ctx := context.Background()
	key := keyPrefix + "test:" + uuid.NewString()

	if _, ok, err := store.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte{0, 1, 2, 255}
	if err := store.Set(ctx, key, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != string(payload) {
		t.Fatalf("expected %v, got %v", payload, got)
	}
}
