package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Bayanda-Msibi/library-management-system/internal/database"
	"github.com/Bayanda-Msibi/library-management-system/internal/entities"
	"github.com/Bayanda-Msibi/library-management-system/internal/scheduler"
)

// healthReport is the /health payload. The inventory counts double as a
// cheap read check against the store.
type healthReport struct {
	Status    string          `json:"status"`
	Version   string          `json:"version,omitempty"`
	Uptime    string          `json:"uptime"`
	Database  string          `json:"database"`
	Inventory *inventoryStats `json:"inventory,omitempty"`
	Snapshot  *snapshotStatus `json:"snapshot,omitempty"`
}

type inventoryStats struct {
	Books         int64 `json:"books"`
	ActiveBorrows int64 `json:"active_borrows"`
}

type snapshotStatus struct {
	Running bool   `json:"running"`
	NextRun string `json:"next_run,omitempty"`
}

type HealthController struct {
	db        *database.Database
	snapshots *scheduler.SnapshotScheduler
	version   string
	startedAt time.Time
}

func NewHealthController(db *database.Database, snapshots *scheduler.SnapshotScheduler, version string) *HealthController {
	return &HealthController{
		db:        db,
		snapshots: snapshots,
		version:   version,
		startedAt: time.Now(),
	}
}

// Status reports store liveness plus a small operational summary.
//
//	GET /health
func (h *HealthController) Status(c *gin.Context) {
	report := healthReport{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	}

	report.Database, report.Inventory = h.checkDatabase()
	if report.Database != "ok" {
		report.Status = "degraded"
	}

	if h.snapshots != nil {
		snap := snapshotStatus{Running: h.snapshots.IsRunning()}
		if next := h.snapshots.NextRunTime(); next != nil {
			snap.NextRun = next.Format(time.RFC3339)
		}
		report.Snapshot = &snap
	}

	code := http.StatusOK
	if report.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

func (h *HealthController) checkDatabase() (string, *inventoryStats) {
	if h.db == nil {
		return "not configured", nil
	}

	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error(), nil
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error(), nil
	}

	var stats inventoryStats
	if err := h.db.DB.Model(&entities.Book{}).Count(&stats.Books).Error; err != nil {
		return "error: " + err.Error(), nil
	}
	active := h.db.DB.Model(&entities.Borrow{}).Where("return_date IS NULL")
	if err := active.Count(&stats.ActiveBorrows).Error; err != nil {
		return "error: " + err.Error(), nil
	}
	return "ok", &stats
}
