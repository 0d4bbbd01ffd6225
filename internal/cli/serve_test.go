package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/griddeck/griddeck/pkg/layoutio"
	"github.com/griddeck/griddeck/pkg/store"
)

func testDoc() layoutio.Document {
	return layoutio.Document{
		Name: "test",
		Grid: layoutio.GridConfig{Columns: 12, ContainerWidth: 1200, RowHeight: 40},
		Components: []layoutio.Component{
			{ID: "a", X: 0, Y: 5, W: 4, H: 2},
			{ID: "b", X: 4, Y: 3, W: 4, H: 2},
		},
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealthz(t *testing.T) {
	h := newRouter(store.NewMemoryStore())
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestServeArrange(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/v1/arrange", arrangeRequest{Document: testDoc()})
	if rec.Code != http.StatusOK {
		t.Fatalf("arrange status = %d, body %s", rec.Code, rec.Body)
	}

	var got layoutio.Document
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(got.Components))
	}
	// Packing starts from the top left, so nothing stays at row 3 or 5.
	for _, c := range got.Components {
		if c.Y != 0 {
			t.Errorf("component %s at row %d, want 0", c.ID, c.Y)
		}
	}
}

func TestServeArrangeRejectsBadDocument(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	doc := testDoc()
	doc.Components[1].ID = "a" // duplicate
	rec := doJSON(t, h, http.MethodPost, "/v1/arrange", arrangeRequest{Document: doc})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("arrange status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServePlace(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/v1/place", placeRequest{Document: testDoc(), W: 4, H: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("place status = %d, body %s", rec.Code, rec.Body)
	}

	var got map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Rows 0-2 are free in the test document.
	if got["x"] != 0 || got["y"] != 0 {
		t.Errorf("place = (%d,%d), want (0,0)", got["x"], got["y"])
	}
}

func TestServePlaceTooWide(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	rec := doJSON(t, h, http.MethodPost, "/v1/place", placeRequest{Document: testDoc(), W: 13, H: 2})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("place status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestServeLayoutsCRUD(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	// Create
	rec := doJSON(t, h, http.MethodPost, "/v1/layouts/", testDoc())
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created store.Record
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}

	// Get
	rec = doJSON(t, h, http.MethodGet, "/v1/layouts/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// Replace
	doc := testDoc()
	doc.Name = "renamed"
	rec = doJSON(t, h, http.MethodPut, "/v1/layouts/"+created.ID, doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %s", rec.Code, rec.Body)
	}

	// List
	rec = doJSON(t, h, http.MethodGet, "/v1/layouts/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var records []store.Record
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 1 || records[0].Document.Name != "renamed" {
		t.Errorf("unexpected listing: %+v", records)
	}

	// Delete
	rec = doJSON(t, h, http.MethodDelete, "/v1/layouts/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/v1/layouts/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
