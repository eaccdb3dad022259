package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the SQLite catalog database
	DefaultDatabasePath = "./library.db"

	// DefaultEnvFile is loaded into the environment before viper reads it
	DefaultEnvFile = ".env"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
