package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TSUGO-CORPORATED/tsugo-server/internal/audit"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/cache"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/db"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/metrics"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/models"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/relay"
	"github.com/TSUGO-CORPORATED/tsugo-server/internal/routes"
)

// memoryCache is a map-backed cache.Cache that records hits and deletions so
// tests can observe the stats cache path.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	m.hits++
	return true, nil
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
		m.deleted = append(m.deleted, key)
	}
	return nil
}

func (m *memoryCache) Close() error { return nil }

func (m *memoryCache) hitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

func (m *memoryCache) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

var _ cache.Cache = (*memoryCache)(nil)

// testEnv drives handlers through the real route table against an in-memory
// database.
type testEnv struct {
	router *gin.Engine
	gdb    *gorm.DB
	cache  *memoryCache

	// closeAudit drains the audit queue so tests can assert rows; safe to
	// call more than once.
	closeAudit func()
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// A single connection keeps :memory: one database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hub := relay.NewHub()
	t.Cleanup(hub.Close)

	auditDispatcher := audit.NewDispatcher(audit.New(gdb), zerolog.Nop())
	var auditOnce sync.Once
	closeAudit := func() { auditOnce.Do(auditDispatcher.Close) }
	t.Cleanup(closeAudit)

	statsCache := newMemoryCache()

	r := gin.New()
	routes.Register(r, routes.Deps{
		DB:      gdb,
		Cache:   statsCache,
		Hub:     hub,
		Metrics: metrics.Registry("tsugo"),
		Audit:   auditDispatcher,
		Log:     zerolog.Nop(),
	})

	return &testEnv{router: r, gdb: gdb, cache: statsCache, closeAudit: closeAudit}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func (e *testEnv) seedUser(t *testing.T, uid, email, first, last string) models.User {
	t.Helper()
	user := models.User{UID: uid, Email: email, FirstName: first, LastName: last}
	if err := e.gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) seedAppointment(t *testing.T, ap *models.Appointment) *models.Appointment {
	t.Helper()
	if ap.AppointmentDateTime.IsZero() {
		ap.AppointmentDateTime = time.Now().UTC().Add(24 * time.Hour)
	}
	if err := e.gdb.Create(ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status = %d, want %d (body %q)", w.Code, code, w.Body.String())
	}
}

func wantBody(t *testing.T, w *httptest.ResponseRecorder, body string) {
	t.Helper()
	if w.Body.String() != body {
		t.Fatalf("body = %q, want %q", w.Body.String(), body)
	}
}
