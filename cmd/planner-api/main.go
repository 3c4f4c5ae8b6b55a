package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/studyplan-api/api/swagger"
	"github.com/noah-isme/studyplan-api/internal/csvio"
	"github.com/noah-isme/studyplan-api/internal/handler"
	"github.com/noah-isme/studyplan-api/internal/middleware"
	"github.com/noah-isme/studyplan-api/internal/optimizer"
	"github.com/noah-isme/studyplan-api/internal/service"
	"github.com/noah-isme/studyplan-api/pkg/config"
	"github.com/noah-isme/studyplan-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/studyplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/studyplan-api/pkg/middleware/requestid"
	"github.com/noah-isme/studyplan-api/pkg/storage"
)

// @title Study Plan API
// @version 0.1.0
// @description Study time allocation and scheduling service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	timetableStore, err := csvio.NewTimetableStore(cfg.Storage.DataDir, cfg.Storage.TimetableFile)
	if err != nil {
		logr.Sugar().Fatalw("failed to open timetable store", "error", err)
	}
	dataStore, err := storage.NewLocalStorage(cfg.Storage.DataDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open data directory", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	courseSvc := service.NewCourseService(timetableStore, validate, logr)
	plannerSvc := service.NewPlannerService(courseSvc, service.PlannerConfig{
		Weights: optimizer.WeightParams{
			Beta:          cfg.Weights.Beta,
			Gamma:         cfg.Weights.Gamma,
			HorizonDays:   cfg.Weights.HorizonDays,
			CategoryCoefs: cfg.Weights.CategoryCoefs,
		},
		DefaultBlockMinutes: cfg.Planner.DefaultBlockMinutes,
		DefaultRoundTo:      cfg.Planner.DefaultRoundTo,
		PlanTTL:             cfg.Planner.PlanTTL,
	}, validate, logr, metricsSvc)
	exportSvc := service.NewExportService(dataStore, logr)
	reminderSvc := service.NewReminderService(service.LogNotifier{Logger: logr}, service.ReminderConfig{
		PollInterval: cfg.Reminders.PollInterval,
		Snooze:       time.Duration(cfg.Reminders.SnoozeMinutes) * time.Minute,
		Workers:      cfg.Reminders.Workers,
	}, logr)

	if cfg.Reminders.Enabled {
		reminderSvc.Start(context.Background())
		defer reminderSvc.Stop()
	}

	plannerHandler := handler.NewPlannerHandler(plannerSvc, exportSvc)
	timetableHandler := handler.NewTimetableHandler(courseSvc)
	reminderHandler := handler.NewReminderHandler(plannerSvc, reminderSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.PUT("/timetable", timetableHandler.Save)
		api.GET("/timetable", timetableHandler.Get)
		api.GET("/timetable/export", timetableHandler.Download)
		api.GET("/courses", timetableHandler.Courses)

		api.POST("/plans/minutes", plannerHandler.AllocateMinutes)
		api.POST("/plans/blocks", plannerHandler.AssignBlocks)
		api.GET("/plans/blocks/:id", plannerHandler.GetPlan)
		api.GET("/plans/blocks/:id/export", plannerHandler.ExportPlan)

		api.POST("/reminders", reminderHandler.Start)
		api.GET("/reminders", reminderHandler.List)
		api.DELETE("/reminders", reminderHandler.Clear)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
