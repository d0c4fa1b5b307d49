package repository

import (
	"fmt"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/database"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// Open returns the history store selected by STORE_DRIVER
func Open(cfg *config.Config) (domain.HistoryStore, error) {
	switch cfg.Store.Driver {
	case config.DriverCSV, "":
		return NewCSVStore(cfg.Store.CSVPath), nil
	case config.DriverSQLite:
		return NewSQLiteFileStore(cfg.Store.SQLitePath)
	case config.DriverPostgres:
		db, err := database.NewPostgresDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
