package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/fxmonitor/src/logger"
	_ "modernc.org/sqlite"
)

// InitDB opens the sqlite database at the given path and ensures the schema
// exists. It fatals on failure since the process cannot serve without it.
func InitDB(databasePath string) *sql.DB {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	if logger.L != nil {
		logger.L.Info("Ensuring database schema", "databasePath", databasePath)
	} else {
		stdlog.Println("Ensuring database schema for:", databasePath)
	}

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS thresholds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		legal_entity TEXT NOT NULL,
		currency TEXT NOT NULL,
		original_group TEXT NOT NULL,
		original_threshold TEXT NOT NULL,
		proposed_group TEXT NOT NULL,
		proposed_threshold TEXT NOT NULL,
		adjusted_group TEXT NOT NULL,
		adjusted_threshold TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS trade_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id TEXT NOT NULL,
		product_type TEXT NOT NULL,
		legal_entity TEXT NOT NULL,
		source_system TEXT NOT NULL,
		ccy_pair TEXT NOT NULL,
		trade_date TEXT NOT NULL,
		deviation_percent TEXT,
		alert_description TEXT,
		is_out_of_scope BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exception_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id TEXT NOT NULL,
		exception_type TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS dashboard_config (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE,
		product_type TEXT,
		legal_entity TEXT,
		source_system TEXT,
		start_date TEXT,
		end_date TEXT,
		threshold_mode TEXT DEFAULT 'group',
		analysis_run BOOLEAN DEFAULT FALSE,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS file_uploads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		product_type TEXT NOT NULL,
		legal_entity TEXT NOT NULL,
		source_system TEXT NOT NULL,
		environment TEXT NOT NULL,
		upload_date TEXT NOT NULL,
		file_size INTEGER,
		record_count INTEGER,
		status TEXT NOT NULL DEFAULT 'uploaded',
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS consolidated_datasets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset_name TEXT NOT NULL,
		product_type TEXT NOT NULL,
		legal_entity TEXT NOT NULL,
		source_system TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		uat_file_ids TEXT,
		prod_file_ids TEXT,
		total_uat_trades INTEGER DEFAULT 0,
		total_prod_trades INTEGER DEFAULT 0,
		matched_trades INTEGER DEFAULT 0,
		unmatched_uat_trades INTEGER DEFAULT 0,
		unmatched_prod_trades INTEGER DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err = db.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}

	migrateThresholdTable(db)

	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
	return db
}

// migrateThresholdTable adds the adjusted_* columns to threshold tables
// created before the adjustment workflow existed.
func migrateThresholdTable(db *sql.DB) {
	rows, err := db.Query("PRAGMA table_info(thresholds)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'thresholds'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'thresholds': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'thresholds'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'thresholds': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'thresholds'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'thresholds': %v", err)
		}
		return
	}

	addColumn := func(column, backfillFrom string) {
		if columnExists[column] {
			return
		}
		if _, err := db.Exec("ALTER TABLE thresholds ADD COLUMN " + column + " TEXT NOT NULL DEFAULT ''"); err != nil {
			if logger.L != nil {
				logger.L.Error("Error adding column to 'thresholds' table", "column", column, "error", err)
			} else {
				stdlog.Printf("Error adding column %q to 'thresholds' table: %v", column, err)
			}
			return
		}
		if logger.L != nil {
			logger.L.Info("Added column to 'thresholds' table", "column", column)
		}
		if _, err := db.Exec("UPDATE thresholds SET " + column + " = " + backfillFrom + " WHERE " + column + " = ''"); err != nil {
			if logger.L != nil {
				logger.L.Error("Error backfilling column values", "column", column, "error", err)
			} else {
				stdlog.Printf("Error backfilling column %q values: %v", column, err)
			}
		}
	}

	addColumn("adjusted_group", "proposed_group")
	addColumn("adjusted_threshold", "proposed_threshold")
}
