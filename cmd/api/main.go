package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/absensia/absensi-backend-go/internal/config"
	"github.com/absensia/absensi-backend-go/internal/domain/schedule"
	appHTTP "github.com/absensia/absensi-backend-go/internal/handler/http"
	"github.com/absensia/absensi-backend-go/internal/handler/http/middleware"
	"github.com/absensia/absensi-backend-go/internal/pkg/database"
	"github.com/absensia/absensi-backend-go/internal/pkg/facematch"
	"github.com/absensia/absensi-backend-go/internal/pkg/metrics"
	"github.com/absensia/absensi-backend-go/internal/repository/postgresql"
	employeeService "github.com/absensia/absensi-backend-go/internal/service/employee"
	punchService "github.com/absensia/absensi-backend-go/internal/service/punch"
	recordService "github.com/absensia/absensi-backend-go/internal/service/record"
	reportService "github.com/absensia/absensi-backend-go/internal/service/report"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	if err := database.RunMigrations(dsn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	punchRepo := postgresql.NewPunchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)

	// The attendance table schema is probed once; older deployments without
	// the optional columns get a narrower projection write.
	caps, err := recordRepo.DescribeTarget(context.Background())
	if err != nil {
		log.Fatal("Failed to inspect attendance schema: ", err)
	}

	window := schedule.Window{
		WorkStart:    cfg.Attendance.WorkStart,
		WorkEnd:      cfg.Attendance.WorkEnd,
		GraceMinutes: cfg.Attendance.GraceMinutes,
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	faceClient := facematch.NewClient(cfg.FaceAPI)
	resolver := employeeService.NewResolver(employeeRepo)
	synchronizer := recordService.NewSynchronizer(recordRepo, window, caps, collector)
	punchSvc := punchService.NewPunchService(
		punchRepo,
		employeeRepo,
		resolver,
		synchronizer,
		faceClient,
		window,
		collector,
		slog.Default(),
	)
	reportSvc := reportService.NewReportService(punchRepo, resolver)

	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	adminHandler := appHTTP.NewAdminHandler(punchSvc, reportSvc)

	// 60 punches/min per kiosk IP, enough for a queue at the door
	punchLimiter := middleware.NewRateLimiter(rate.Limit(1), 60)
	defer punchLimiter.Stop()

	router := appHTTP.NewRouter(
		cfg,
		punchHandler,
		adminHandler,
		punchLimiter,
		metrics.Handler(registry),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
