package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lovetasks/internal/api"
	"lovetasks/internal/config"
	"lovetasks/internal/repository"
	"lovetasks/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	giftRepo := repository.NewGiftRepository(db)
	anniversaryRepo := repository.NewAnniversaryRepository(db)

	locks := service.NewRelationshipLocks()
	userSvc := service.NewUserService(userRepo)
	relationshipSvc := service.NewRelationshipService(userRepo, relationshipRepo)
	pointsSvc := service.NewPointsService(pointsRepo, locks)
	taskSvc := service.NewTaskService(db, taskRepo, relationshipRepo, pointsSvc, locks)
	giftSvc := service.NewGiftService(db, giftRepo, relationshipRepo, pointsSvc, locks)
	anniversarySvc := service.NewAnniversaryService(anniversaryRepo, relationshipRepo)
	reminderSvc := service.NewReminderService(taskRepo, relationshipRepo, anniversarySvc)

	router := api.SetupRouter(api.Services{
		Users:         userSvc,
		Relationships: relationshipSvc,
		Tasks:         taskSvc,
		Points:        pointsSvc,
		Gifts:         giftSvc,
		Anniversaries: anniversarySvc,
	})

	scheduler := service.NewSchedulerService(time.Local)
	digest := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := reminderSvc.DigestAll(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("digest: %v", err)
		}
	}
	if _, err := scheduler.Daily(cfg.DigestTime, digest); err != nil {
		log.Fatalf("schedule daily digest: %v", err)
	}
	if _, err := scheduler.Every(cfg.RefreshInterval, digest); err != nil {
		log.Fatalf("schedule refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("love tasks service listening on %s", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
