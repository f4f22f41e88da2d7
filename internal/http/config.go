package http

import (
	"github.com/Bayanda-Msibi/library-management-system/internal/auth"
	"github.com/Bayanda-Msibi/library-management-system/internal/catalog"
	"github.com/Bayanda-Msibi/library-management-system/internal/circulation"
	"github.com/Bayanda-Msibi/library-management-system/internal/config"
	"github.com/Bayanda-Msibi/library-management-system/internal/database"
	"github.com/Bayanda-Msibi/library-management-system/internal/exporters"
	"github.com/Bayanda-Msibi/library-management-system/internal/scheduler"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database    *database.Database
	Catalog     *catalog.Service
	Circulation *circulation.Service
	Exporter    *exporters.Service
	Snapshots   *scheduler.SnapshotScheduler

	// Authentication
	AuthService      *auth.Service
	SessionManager   *auth.SessionManager
	AuthMiddleware   *auth.Middleware
	AuthConfig       config.Auth
	LoginRateLimiter *auth.RateLimiter
	CSRFSecret       []byte
	SecureCookies    bool

	// Application info
	Version string
}
