package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Palash-oss/TIMETABLE/api/swagger"
	"github.com/Palash-oss/TIMETABLE/internal/handler"
	"github.com/Palash-oss/TIMETABLE/internal/middleware"
	"github.com/Palash-oss/TIMETABLE/internal/repository"
	"github.com/Palash-oss/TIMETABLE/internal/service"
	"github.com/Palash-oss/TIMETABLE/pkg/cache"
	"github.com/Palash-oss/TIMETABLE/pkg/config"
	"github.com/Palash-oss/TIMETABLE/pkg/database"
	"github.com/Palash-oss/TIMETABLE/pkg/logger"
	corsmiddleware "github.com/Palash-oss/TIMETABLE/pkg/middleware/cors"
	reqidmiddleware "github.com/Palash-oss/TIMETABLE/pkg/middleware/requestid"
	"github.com/Palash-oss/TIMETABLE/pkg/storage"
)

// @title Timetable Assignment API
// @version 0.1.0
// @description University timetable generation and publication service
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, timetable cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	programRepo := repository.NewProgramRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	constraintRepo := repository.NewConstraintRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)

	loader := repository.NewEngineLoader(courseRepo, facultyRepo, roomRepo, slotRepo, constraintRepo, assignmentRepo)
	catalogStore := repository.NewCatalogStore(programRepo, courseRepo, facultyRepo, roomRepo, slotRepo, constraintRepo)

	validate := validator.New()
	timetableSvc := service.NewTimetableService(timetableRepo, cacheSvc, logr)
	catalogSvc := service.NewCatalogService(catalogStore, validate, logr)

	var archiveSvc *service.ArchiveService
	if cfg.Archive.Enabled {
		archiveStore, err := storage.NewArchiveStore(cfg.Archive.Dir)
		if err != nil {
			logr.Sugar().Warnw("archive directory unavailable, snapshots disabled", "error", err)
		} else {
			signer := storage.NewDownloadSigner(cfg.Archive.SigningSecret, cfg.Archive.TTL)
			archiveSvc = service.NewArchiveService(timetableSvc, archiveStore, signer, cfg.Archive, cfg.APIPrefix, logr)
			archiveSvc.Start(context.Background())
			defer archiveSvc.Stop()
		}
	}

	generationSvc := service.NewGenerationService(loader, timetableRepo, cacheSvc, metrics, archiveSvc, validate, cfg.Engine, logr)

	generationHandler := handler.NewGenerationHandler(generationSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/programs", catalogHandler.Programs)
		api.GET("/courses", catalogHandler.Courses)
		api.GET("/faculty", catalogHandler.Faculty)
		api.GET("/rooms", catalogHandler.Rooms)
		api.GET("/time-slots", catalogHandler.TimeSlots)
		api.GET("/constraints", catalogHandler.Constraints)

		api.GET("/timetable", timetableHandler.List)
		api.GET("/timetable/generation", timetableHandler.Generation)
		api.GET("/timetable/export/csv", timetableHandler.ExportCSV)
		api.GET("/timetable/export/pdf", timetableHandler.ExportPDF)
		api.GET("/faculty/:id/timetable", timetableHandler.FacultyTimetable)

		if archiveSvc != nil {
			archiveHandler := handler.NewArchiveHandler(archiveSvc)
			api.GET("/timetable/archive", archiveHandler.List)
			api.GET("/timetable/archive/:token", archiveHandler.Download)
			api.POST("/timetable/archive", middleware.JWT(cfg.JWT.Secret), archiveHandler.Snapshot)
		}

		protected := api.Group("")
		protected.Use(middleware.JWT(cfg.JWT.Secret))
		{
			protected.POST("/timetable/generate", generationHandler.Generate)
			protected.POST("/timetable/draft", generationHandler.Draft)
			protected.POST("/constraints", catalogHandler.CreateConstraint)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
