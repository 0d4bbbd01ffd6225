package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/layoutio"
)

func testDocument(name string) layoutio.Document {
	return layoutio.Document{
		Name: name,
		Grid: layoutio.GridConfig{Columns: 12, ContainerWidth: 1200, RowHeight: 40},
		Components: []layoutio.Component{
			{ID: "chart", X: 0, Y: 0, W: 4, H: 2},
			{ID: "table", X: 4, Y: 0, W: 8, H: 3},
		},
	}
}

// storeUnderTest builds each backend that runs without external
// services.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			id := NewID()
			if err := s.Put(ctx, &Record{ID: id, Document: testDocument("sales")}); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := s.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if diff := cmp.Diff(testDocument("sales"), got.Document); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
			if got.UpdatedAt.IsZero() {
				t.Error("expected UpdatedAt to be stamped")
			}
		})
	}
}

func TestStorePutReplaces(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			id := NewID()
			if err := s.Put(ctx, &Record{ID: id, Document: testDocument("v1")}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Put(ctx, &Record{ID: id, Document: testDocument("v2")}); err != nil {
				t.Fatalf("Put: %v", err)
			}

			got, err := s.Get(ctx, id)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Document.Name != "v2" {
				t.Errorf("expected replaced document, got name %q", got.Document.Name)
			}

			all, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(all) != 1 {
				t.Errorf("expected 1 record after replace, got %d", len(all))
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			if _, err := s.Get(ctx, "missing"); errors.GetCode(err) != errors.ErrCodeNotFound {
				t.Errorf("Get: expected NOT_FOUND, got %v", err)
			}
			if err := s.Delete(ctx, "missing"); errors.GetCode(err) != errors.ErrCodeNotFound {
				t.Errorf("Delete: expected NOT_FOUND, got %v", err)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			id := NewID()
			if err := s.Put(ctx, &Record{ID: id, Document: testDocument("gone")}); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := s.Delete(ctx, id); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, id); errors.GetCode(err) != errors.ErrCodeNotFound {
				t.Errorf("expected NOT_FOUND after delete, got %v", err)
			}
		})
	}
}

func TestStoreListOrder(t *testing.T) {
	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			ctx := context.Background()

			for _, id := range []string{"first", "second", "third"} {
				if err := s.Put(ctx, &Record{ID: id, Document: testDocument(id)}); err != nil {
					t.Fatalf("Put %s: %v", id, err)
				}
				// UpdatedAt has real-clock resolution; keep the
				// stamps strictly ordered.
				time.Sleep(5 * time.Millisecond)
			}

			all, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(all) != 3 {
				t.Fatalf("expected 3 records, got %d", len(all))
			}
			for i, want := range []string{"third", "second", "first"} {
				if all[i].ID != want {
					t.Errorf("List[%d] = %q, want %q", i, all[i].ID, want)
				}
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "uuid", id: NewID(), wantErr: false},
		{name: "plain", id: "dashboard-1", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "slash", id: "a/b", wantErr: true},
		{name: "backslash", id: `a\b`, wantErr: true},
		{name: "dotdot", id: "..", wantErr: true},
		{name: "too long", id: strings.Repeat("x", 129), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	id := NewID()
	if err := s1.Put(ctx, &Record{ID: id, Document: testDocument("persisted")}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s1.Close()

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Document.Name != "persisted" {
		t.Errorf("expected persisted document, got name %q", got.Document.Name)
	}
}
