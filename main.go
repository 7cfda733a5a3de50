package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitbook/config"
	"fitbook/cron"
	"fitbook/database"
	facilityRepoPkg "fitbook/database/repository/facility"
	memberRepoPkg "fitbook/database/repository/member"
	reservationRepoPkg "fitbook/database/repository/reservation"
	"fitbook/handlers"
	"fitbook/middleware"
	"fitbook/routes"
	"fitbook/services/facility"
	"fitbook/services/reservation"
	"fitbook/services/tasks"
	"fitbook/services/user"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	facilityRepo := facilityRepoPkg.NewMongoFacilityRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	memberRepo := memberRepoPkg.NewMongoMemberRepo()

	// asynq client for delayed completion tasks.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer asynqClient.Close()

	// services.
	memberService := &user.DefaultMemberService{
		Repo: memberRepo,
	}

	facilityService := &facility.DefaultFacilityService{
		Repo:            facilityRepo,
		ReservationRepo: reservationRepo,
	}

	bookingService := &reservation.DefaultBookingSessionService{
		Sessions:        reservation.NewRedisSessionStore(),
		FacilityRepo:    facilityRepo,
		ReservationRepo: reservationRepo,
		Completion:      &tasks.AsynqCompletionScheduler{Client: asynqClient},
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		MemberRepo:      memberRepo,
		FacilityHandler: handlers.NewFacilityHandler(facilityService),
		BookingHandler:  handlers.NewBookingHandler(bookingService, reservationRepo),
		MemberHandler:   handlers.NewMemberHandler(memberService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker that flips finished reservations to Completed.
	cron.InitCompletionWorker(reservationRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
