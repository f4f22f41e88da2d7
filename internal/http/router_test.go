package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bayanda-Msibi/library-management-system/internal/catalog"
	"github.com/Bayanda-Msibi/library-management-system/internal/circulation"
	"github.com/Bayanda-Msibi/library-management-system/internal/config"
	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
	"github.com/Bayanda-Msibi/library-management-system/internal/scheduler"
)

func TestNewRouter_NoAuthMode(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	router := NewRouter(RouterConfig{
		Database:    db,
		Catalog:     catalog.NewService(db.DB),
		Circulation: circulation.NewService(db.DB, 14),
		Exporter:    exporters.NewService(db.DB),
		AuthConfig:  config.Auth{Mode: config.AuthModeNone},
		Version:     "test",
	})

	t.Run("health reports ok with inventory counts", func(t *testing.T) {
		w := doRequest(router, "GET", "/health")
		assert.Equal(t, http.StatusOK, w.Code)

		var health healthReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
		assert.Equal(t, "ok", health.Status)
		assert.Equal(t, "ok", health.Database)
		require.NotNil(t, health.Inventory)
		assert.Equal(t, int64(0), health.Inventory.Books)
		assert.Nil(t, health.Snapshot)
	})

	t.Run("ping answers", func(t *testing.T) {
		w := doRequest(router, "GET", "/ping")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "pong")
	})

	t.Run("security headers are present", func(t *testing.T) {
		w := doRequest(router, "GET", "/ping")
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("catalog mutations work with the injected admin identity", func(t *testing.T) {
		w := postJSON(router, "POST", "/api/categories", `{"name":"Fiction"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestNewRouter_HealthSnapshotSection(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	exporter := exporters.NewService(db.DB)
	router := NewRouter(RouterConfig{
		Database:    db,
		Catalog:     catalog.NewService(db.DB),
		Circulation: circulation.NewService(db.DB, 14),
		Exporter:    exporter,
		Snapshots:   scheduler.NewSnapshotScheduler(exporter, config.Snapshot{}),
		AuthConfig:  config.Auth{Mode: config.AuthModeNone},
	})

	seedBook(t, db, "Dune", "Frank Herbert", 2)

	w := doRequest(router, "GET", "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var health healthReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	require.NotNil(t, health.Snapshot)
	assert.False(t, health.Snapshot.Running)
	assert.Empty(t, health.Snapshot.NextRun)
	require.NotNil(t, health.Inventory)
	assert.Equal(t, int64(1), health.Inventory.Books)
	assert.Equal(t, int64(0), health.Inventory.ActiveBorrows)
}
