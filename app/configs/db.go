package configs

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

// DSN builds the connection string for the configured driver.
func (e ENV) DSN() string {
	if e.DBDriver == "postgres" {
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			e.DBHost, e.DBUser, e.DBPassword, e.DBName, e.DBPort, e.DBSSLMode,
		)
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		e.DBUser, e.DBPassword, e.DBHost, e.DBPort, e.DBName,
	)
}

func dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql", "":
		return mysql.Open(env.DSN()), nil
	case "postgres":
		return postgres.Open(env.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

// OpenConnection opens the database and pings it, retrying while the server
// comes up. It gives up as soon as ctx is done.
func OpenConnection(ctx context.Context, env ENV) (*gorm.DB, error) {
	dial, err := dialector(env)
	if err != nil {
		return nil, err
	}

	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	if env.LogSQL {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("database connection cancelled: %w", err)
		}
		log.Printf("Attempting to connect to %s database (Attempt %d/%d) at %s:%s", env.DBDriver, i+1, maxRetries, env.DBHost, env.DBPort)
		db, err := gorm.Open(dial, cfg)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.PingContext(ctx)
				if pingErr == nil {
					sqlDB.SetMaxOpenConns(25)
					sqlDB.SetMaxIdleConns(5)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connection cancelled: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}

// CloseConnection releases the pool owned by db.
func CloseConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
