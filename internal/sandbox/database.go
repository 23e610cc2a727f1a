package sandbox

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/productbazar/bazaaradmin/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the configured database, migrates it and seeds it when
// enabled and empty.
func Connect(cfg DBConfig, seed bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.SQLitePath)
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver != DriverPostgres {
		// a single connection keeps an in-memory database alive and shared
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if seed {
		n, err := Seed(db)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("sandbox_seeded", map[string]interface{}{"users": n})
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
