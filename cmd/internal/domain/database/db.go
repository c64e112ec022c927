package database

import (
	"fmt"
	"time"

	"rfqengine/cmd/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Models lists every table owned by the service, in dependency order.
var Models = []any{
	&entity.Client{},
	&entity.Supplier{},
	&entity.Material{},
	&entity.MaterialSupplier{},
	&entity.Settings{},
	&entity.Request{},
	&entity.RequestLine{},
	&entity.QuoteLogEntry{},
	&entity.Lead{},
	&entity.Sequence{},
}

// Init opens the database for the given driver and migrates the schema.
// An SQLite DSN of ":memory:" gives a private throwaway database.
func Init(driver, dsn string) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(Models...); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers anyway, a single connection also keeps
	// in-memory databases alive for the lifetime of the pool.
	if driver == DriverSQLite || driver == "" {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite, "":
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}
