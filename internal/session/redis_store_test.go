package session_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/geocoder89/portfolio/internal/redisclient"
	"github.com/geocoder89/portfolio/internal/session"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redisclient.New(redisclient.Config{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx); err != nil {
		t.Fatalf("redis ping: %v", err)
	}

	store := session.NewRedisStore(client.Raw())

	sess := session.Session{
		ID:        "test-" + time.Now().Format("150405.000000"),
		UserID:    1,
		Username:  "admin",
		LoggedIn:  true,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().Add(time.Minute).UTC(),
	}

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "admin" || !got.LoggedIn {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	expired := sess
	expired.ExpiresAt = time.Now().Add(-time.Second)
	if err := store.Save(ctx, expired); !errors.Is(err, session.ErrExpired) {
		t.Fatalf("saving an expired session should fail, got %v", err)
	}
}
