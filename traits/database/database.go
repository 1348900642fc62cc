package database

import (
	"database/sql"
	"os"
	"tupyme/config"

	"go.uber.org/zap"
)

// InitDatabase initializes the SQLite database
func InitDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DBPath, 0755); err != nil {
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", cfg.GetDatabasePath()+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Database initialized successfully",
		zap.String("path", cfg.GetDatabasePath()),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return db, nil
}

// CreateTables creates the preferences and orders tables
func CreateTables(db *sql.DB, logger *zap.Logger) error {
	// Session preferences live in a plain key-value table; keys are
	// namespaced strings ("logged_in", "user_id", ...), values are text.
	preferencesTable := `
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`

	// Orders are the authoritative record of a checkout. Status moves
	// processing -> paid (payment processor) or -> failed.
	ordersTable := `
		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_id INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL CHECK (total >= 0),
			items_json TEXT NOT NULL DEFAULT '[]',
			status TEXT DEFAULT 'processing' CHECK (status IN ('processing', 'paid', 'failed')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			paid_at DATETIME NULL
		);`

	tables := []struct {
		name string
		sql  string
	}{
		{"preferences", preferencesTable},
		{"orders", ordersTable},
	}

	for _, table := range tables {
		// Check if table exists
		var tableCount int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table.name).Scan(&tableCount)
		if err != nil {
			logger.Error("Failed to check table existence", zap.String("table", table.name), zap.Error(err))
			return err
		}

		if tableCount == 0 {
			// Table doesn't exist, create it
			if _, err := db.Exec(table.sql); err != nil {
				logger.Error("Failed to create table", zap.String("table", table.name), zap.Error(err))
				return err
			}
			logger.Info("Table created successfully", zap.String("table", table.name))
		} else {
			logger.Info("Table exists, checking for missing columns", zap.String("table", table.name))

			// Add missing columns for orders if needed
			if table.name == "orders" {
				columnsToAdd := []struct {
					name string
					sql  string
				}{
					{"user_id", "ALTER TABLE orders ADD COLUMN user_id INTEGER NOT NULL DEFAULT 0;"},
					{"items_json", "ALTER TABLE orders ADD COLUMN items_json TEXT NOT NULL DEFAULT '[]';"},
					{"paid_at", "ALTER TABLE orders ADD COLUMN paid_at DATETIME NULL;"},
				}

				for _, col := range columnsToAdd {
					if _, err := db.Exec(col.sql); err != nil {
						// Column might already exist, that's okay
						logger.Debug("Column might already exist",
							zap.String("table", table.name),
							zap.String("column", col.name),
							zap.Error(err))
					} else {
						logger.Info("Added missing column",
							zap.String("table", table.name),
							zap.String("column", col.name))
					}
				}
			}
		}
	}

	// Create essential indexes for orders
	orderIndexes := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_orders_session_id",
			sql:  "CREATE INDEX IF NOT EXISTS idx_orders_session_id ON orders(session_id);",
		},
		{
			name: "idx_orders_status",
			sql:  "CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);",
		},
		{
			name: "idx_orders_created_at",
			sql:  "CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);",
		},
	}

	for _, index := range orderIndexes {
		if _, err := db.Exec(index.sql); err != nil {
			logger.Warn("Failed to create index",
				zap.String("index", index.name),
				zap.Error(err),
			)
		} else {
			logger.Info("Index created/verified", zap.String("index", index.name))
		}
	}

	// Create triggers for updating timestamps
	triggers := []struct {
		name string
		sql  string
	}{
		{
			name: "trigger_preferences_updated_at",
			sql: `
				CREATE TRIGGER IF NOT EXISTS trigger_preferences_updated_at
				AFTER UPDATE ON preferences
				BEGIN
					UPDATE preferences SET updated_at = CURRENT_TIMESTAMP WHERE key = NEW.key;
				END;`,
		},
		{
			name: "trigger_orders_updated_at",
			sql: `
				CREATE TRIGGER IF NOT EXISTS trigger_orders_updated_at
				AFTER UPDATE ON orders
				BEGIN
					UPDATE orders SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
				END;`,
		},
	}

	for _, trigger := range triggers {
		if _, err := db.Exec(trigger.sql); err != nil {
			logger.Warn("Failed to create trigger",
				zap.String("trigger", trigger.name),
				zap.Error(err))
		} else {
			logger.Info("Trigger created/verified", zap.String("trigger", trigger.name))
		}
	}

	logger.Info("Database schema created successfully")
	return nil
}
