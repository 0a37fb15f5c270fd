package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

func sampleRecord() *Record {
	return &Record{
		InputHash: "abc123",
		Layout: cloud.Layout{
			Center:     geom.Pt(600, 450),
			Width:      1200,
			Height:     900,
			Background: tags.Indigo,
			Tags: []tags.Tag{
				{Text: "go", Frequency: 3, FontSize: 23, Color: tags.White, Rect: geom.Rect{X: 589, Y: 439, W: 23, H: 23}},
			},
		},
	}
}

// testStore exercises a Store implementation.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	rec := sampleRecord()
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !ValidID(rec.ID) {
		t.Fatalf("Save assigned invalid id %q", rec.ID)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Save did not set CreatedAt")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != rec.ID || got.InputHash != rec.InputHash {
		t.Errorf("Get = %+v", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
	if len(got.Layout.Tags) != 1 || got.Layout.Tags[0] != rec.Layout.Tags[0] {
		t.Errorf("tags = %+v", got.Layout.Tags)
	}
	if got.Layout.Background != tags.Indigo || got.Layout.Center != rec.Layout.Center {
		t.Errorf("layout = %+v", got.Layout)
	}

	if _, err := s.Get(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing record: error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := sampleRecord()
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Layout.Tags[0].Text = "changed"

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Layout.Tags[0].Text != "go" {
		t.Error("stored record shares memory with the caller")
	}
	got.Layout.Tags[0].Text = "again"
	if again, _ := s.Get(ctx, rec.ID); again.Layout.Tags[0].Text != "go" {
		t.Error("returned record shares memory with the store")
	}
}

func TestMemoryStoreKeepsGivenID(t *testing.T) {
	s := NewMemoryStore()
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC) }

	rec := &Record{ID: "fixed"}
	if err := s.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID != "fixed" {
		t.Errorf("ID = %q", rec.ID)
	}
	if want := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC); !rec.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, want)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d", s.Len())
	}
}

func TestMemoryStoreCanceled(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, sampleRecord()); !errors.Is(err, context.Canceled) {
		t.Errorf("Save error = %v", err)
	}
	if _, err := s.Get(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v", err)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"not-a-uuid", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
