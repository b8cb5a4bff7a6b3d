package app

import (
	"database/sql"
	"os"

	"github.com/creesler/laundry-pos-backend/internal/employee"
	"github.com/creesler/laundry-pos-backend/internal/inventory"
	"github.com/creesler/laundry-pos-backend/internal/sale"
	"github.com/creesler/laundry-pos-backend/internal/shared/connection"
	"github.com/creesler/laundry-pos-backend/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&sale.Sale{},
		&timesheet.Timesheet{},
		&inventory.Item{},
		&inventory.Log{},
	); err != nil {
		return err
	}
	if err := ensureOutboxTable(sqlDB); err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		zap.L().Info("redis connection established")
	}

	return registerModules(router, sqlDB, gormDB, rdb)
}

// ensureOutboxTable keeps the transactional outbox schema in step with the
// entity migrations above; the table is written with raw SQL, not gorm.
func ensureOutboxTable(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS outbox_events (
            id uuid PRIMARY KEY,
            request_id text,
            aggregate_type text NOT NULL,
            aggregate_id text NOT NULL,
            event_type text NOT NULL,
            topic text NOT NULL,
            payload jsonb NOT NULL,
            status text NOT NULL DEFAULT 'pending',
            retry_count int NOT NULL DEFAULT 0,
            next_retry_at timestamptz NOT NULL DEFAULT now(),
            created_at timestamptz NOT NULL DEFAULT now(),
            updated_at timestamptz NOT NULL DEFAULT now()
        )
    `)
	return err
}
