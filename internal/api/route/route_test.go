package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bassista/bookpop/internal/app"
	"github.com/bassista/bookpop/internal/books"
	"github.com/bassista/bookpop/internal/cache"
	"github.com/bassista/bookpop/internal/config"
	"github.com/bassista/bookpop/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestApp builds a fully wired app on memory backends.
func newTestApp(t *testing.T) (*app.App, *gin.Engine) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: time.Second},
		Cache:  config.CacheConfig{TTL: 5 * time.Minute},
		Misc:   config.MiscConfig{ViewQueueLen: 16},
	}
	a, err := app.New(cfg, store.NewMemoryStore(), cache.NewMemoryCache(1000, 8, 5*time.Minute))
	if err != nil {
		t.Fatalf("app init failed: %v", err)
	}
	t.Cleanup(a.Shutdown)

	r := gin.New()
	SetupRoutes(r, a)
	return a, r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var data []byte
	if body != nil {
		data, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_Health(t *testing.T) {
	_, r := newTestApp(t)

	w := do(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestRoutes_BookLifecycle(t *testing.T) {
	_, r := newTestApp(t)

	// Empty collection reads as 404
	if w := do(r, http.MethodGet, "/api/books", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on empty collection, got %d", w.Code)
	}

	// Create
	w := do(r, http.MethodPost, "/api/books", books.Book{Title: "Dune", Author: "Frank Herbert"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created books.Book
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to unmarshal created book: %v", err)
	}

	// Read back by id
	w = do(r, http.MethodGet, "/api/books/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Update then verify
	w = do(r, http.MethodPut, "/api/books/1", books.Book{ID: created.ID, Title: "Dune Messiah", Author: "Frank Herbert"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/api/books/1", nil)
	var got books.Book
	json.Unmarshal(w.Body.Bytes(), &got)
	if got.Title != "Dune Messiah" {
		t.Errorf("expected updated title, got '%s'", got.Title)
	}

	// Delete then 404
	if w := do(r, http.MethodDelete, "/api/books/1", nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/books/1", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestRoutes_SearchAndBatch(t *testing.T) {
	_, r := newTestApp(t)

	w := do(r, http.MethodPost, "/api/books/batch", []books.Book{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Doon", Author: "Ellis Weiner"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/books/search?title=Doo", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var items []books.Book
	json.Unmarshal(w.Body.Bytes(), &items)
	if len(items) != 1 || items[0].Title != "Doon" {
		t.Errorf("expected only 'Doon' to match, got %+v", items)
	}

	if w := do(r, http.MethodGet, "/api/books/search?title=zzz", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty search, got %d", w.Code)
	}
}

func TestRoutes_PopularEmptyLeaderboard(t *testing.T) {
	_, r := newTestApp(t)

	w := do(r, http.MethodGet, "/api/books/popular", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 on empty leaderboard, got %d", w.Code)
	}
}
