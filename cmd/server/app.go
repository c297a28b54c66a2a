package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/config"
	"github.com/Fakhri-abraar/taskdeck/internal/platform/logger"
	"github.com/Fakhri-abraar/taskdeck/internal/platform/postgres"
	"github.com/Fakhri-abraar/taskdeck/internal/service"
	"github.com/Fakhri-abraar/taskdeck/internal/service/auth"
	"github.com/Fakhri-abraar/taskdeck/internal/service/reminder"
	"github.com/Fakhri-abraar/taskdeck/internal/service/upload"
	"github.com/Fakhri-abraar/taskdeck/internal/store"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// application holds the initialized dependencies of the server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	db *sql.DB

	userStore     store.UserStore
	categoryStore store.CategoryStore
	taskStore     *postgres.TaskStore

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
	taskService    *service.TaskService
	uploadService  *upload.Service

	scheduler *reminder.Scheduler
}

// initializeApp loads configuration, connects to the database, applies
// migrations, and wires the service graph.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := runMigrations(db, log); err != nil {
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	uploadService, err := upload.NewService(cfg.Upload.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload service: %w", err)
	}

	userStore := postgres.NewUserStore(db, log)
	categoryStore := postgres.NewCategoryStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)

	taskService := service.NewTaskService(taskStore, categoryStore, uploadService, log)

	app := &application{
		config:         cfg,
		logger:         log,
		db:             db,
		userStore:      userStore,
		categoryStore:  categoryStore,
		taskStore:      taskStore,
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(),
		taskService:    taskService,
		uploadService:  uploadService,
	}

	if err := app.startReminderScheduler(); err != nil {
		return nil, fmt.Errorf("failed to start reminder scheduler: %w", err)
	}

	return app, nil
}

// startReminderScheduler wires the daily reminder job. Without SMTP
// configuration the scheduler is skipped; the API works without it.
func (app *application) startReminderScheduler() error {
	if app.config.SMTP.Host == "" {
		app.logger.Warn("smtp not configured, task deadline reminders disabled")
		return nil
	}

	notifier, err := reminder.NewSMTPNotifier(app.config.SMTP)
	if err != nil {
		return err
	}

	loc := time.Local
	if tz := app.config.Scheduler.Timezone; tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid scheduler timezone %q: %w", tz, err)
		}
	}

	job := reminder.NewJob(app.taskStore, notifier, loc, app.logger)
	scheduler := reminder.NewScheduler(loc)

	runJob := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := job.Run(ctx); err != nil {
			app.logger.Error("reminder job run failed", "error", err)
		}
	}

	if _, err := scheduler.ScheduleDaily(app.config.Scheduler.ReminderTime, runJob); err != nil {
		return err
	}

	scheduler.Start()
	app.scheduler = scheduler

	app.logger.Info("reminder scheduler started",
		"reminder_time", app.config.Scheduler.ReminderTime,
		"timezone", loc.String())
	return nil
}

// cleanup releases process resources during shutdown.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
