package app

import (
	"database/sql"
	"os"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/employee"
	"github.com/creesler/laundry-pos-backend/internal/inventory"
	"github.com/creesler/laundry-pos-backend/internal/messaging/kafka"
	"github.com/creesler/laundry-pos-backend/internal/middleware"
	"github.com/creesler/laundry-pos-backend/internal/period"
	"github.com/creesler/laundry-pos-backend/internal/sale"
	syncmod "github.com/creesler/laundry-pos-backend/internal/sync"
	"github.com/creesler/laundry-pos-backend/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	saleRepo := sale.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)
	inventoryLogRepo := inventory.NewLogRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	saleService := sale.NewService(saleRepo, employeeRepo)
	timesheetService := timesheet.NewService(timesheetRepo, employeeRepo)
	inventoryService := inventory.NewServiceWithOutbox(db, inventoryRepo, inventoryLogRepo, outboxRepo)
	syncService := syncmod.NewService(saleRepo, timesheetRepo, inventoryRepo, inventoryLogRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	saleHandler := sale.NewHandler(saleService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	inventoryHandler := inventory.NewHandler(inventoryService)
	syncHandler := syncmod.NewHandler(syncService)
	periodHandler := period.NewHandler()

	// --- Global middleware ---
	router.Use(middleware.RequestContext(zap.L()))
	router.Use(middleware.CORS(os.Getenv("CORS_ORIGINS")))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	// --- Routes ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler)
		sale.RegisterRoutes(api, saleHandler)
		timesheet.RegisterRoutes(api, timesheetHandler)
		inventory.RegisterRoutes(api, inventoryHandler)
		period.RegisterRoutes(api, periodHandler)

		if rdb != nil {
			syncmod.RegisterRoutes(api, syncHandler, middleware.Idempotency(rdb, 24*time.Hour))
		} else {
			syncmod.RegisterRoutes(api, syncHandler)
		}
	}

	return nil
}
