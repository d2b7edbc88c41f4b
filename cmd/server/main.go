package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"umd-backend/internal/auth"
	"umd-backend/internal/cache"
	"umd-backend/internal/config"
	"umd-backend/internal/database"
	"umd-backend/internal/db"
	"umd-backend/internal/handlers"
	"umd-backend/internal/health"
	apphttp "umd-backend/internal/http"
	"umd-backend/internal/middleware"
	"umd-backend/internal/repositories"
	"umd-backend/internal/services"
	"umd-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	if err := cache.Init(); err != nil {
		log.Printf("[Cache] Redis unavailable, continuing without cache: %v", err)
	}

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("[Migrator] migration failed: %v", err)
	}

	var store storage.MediaStore
	switch cfg.Media.Driver {
	case "s3":
		s3Store, err := storage.NewS3Store(cfg)
		if err != nil {
			log.Fatalf("[Storage] S3 init failed: %v", err)
		}
		store = s3Store
		log.Printf("[Storage] Using S3 bucket %s", cfg.Media.S3.Bucket)
	default:
		store = storage.NewLocalStore(cfg.Media.LocalDir)
		log.Printf("[Storage] Using local directory %s", cfg.Media.LocalDir)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	businessRepo := repositories.NewBusinessRepository(pool)
	branchRepo := repositories.NewBranchRepository(pool)
	budgetRepo := repositories.NewBudgetRepository(pool)
	billRepo := repositories.NewUtilityBillRepository(pool)
	alertRepo := repositories.NewAlertRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	businessService := services.NewBusinessService(businessRepo)
	branchService := services.NewBranchService(branchRepo)
	budgetService := services.NewBudgetService(budgetRepo, branchRepo)
	expenseService := services.NewExpenseService(billRepo, branchRepo, store)
	alertService := services.NewAlertService(alertRepo)
	reportService := services.NewReportService(reportRepo, branchRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	branchHandler := handlers.NewBranchHandler(branchService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	utilityHandler := handlers.NewUtilityHandler(expenseService)
	alertHandler := handlers.NewAlertHandler(alertService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apphttp.NewRouter(
		authHandler,
		userHandler,
		businessHandler,
		branchHandler,
		budgetHandler,
		utilityHandler,
		alertHandler,
		dashboardHandler,
		healthHandler,
		authMiddleware,
	)

	cors := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(cors(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}
