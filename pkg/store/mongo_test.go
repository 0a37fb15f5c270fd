package store

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set TAGCLOUD_TEST_MONGO to a connection URI to run these tests.
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("TAGCLOUD_TEST_MONGO")
	if uri == "" {
		t.Skip("TAGCLOUD_TEST_MONGO not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Database: "tagcloud_test"})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMongoStore(t *testing.T) {
	s := newTestMongoStore(t)
	testStore(t, s)
}

func TestMongoStoreDelete(t *testing.T) {
	s := newTestMongoStore(t)
	ctx := context.Background()

	rec := sampleRecord()
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("after delete: error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoOptions{}); err == nil {
		t.Error("expected error for empty URI")
	}
}
