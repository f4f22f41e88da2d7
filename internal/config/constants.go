package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./library.db"

	// DefaultLoanPeriodDays is how long a borrowed book may be kept
	DefaultLoanPeriodDays = 14

	// Default admin credential created on first run when no admin exists.
	// Meant for first-login convenience only; override via ADMIN_USERNAME /
	// ADMIN_PASSWORD and rotate before production exposure.
	DefaultAdminUsername = "administrator"
	DefaultAdminPassword = "administrator123"
)
