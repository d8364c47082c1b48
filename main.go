// File: turfbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turfbook/config"
	"turfbook/cron"
	"turfbook/database"
	availabilityRepo "turfbook/database/repository/availability"
	bookingRepo "turfbook/database/repository/booking"
	"turfbook/handlers"
	"turfbook/middleware"
	"turfbook/routes"
	"turfbook/services/notification"
	"turfbook/services/slots"
	"turfbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()

	// Live booked-set mirror, wall-clock sampler and confirmation queue.
	rootCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	mirror := slots.NewAvailabilityMirror()
	go mirror.Run(rootCtx, availRepo)

	clock := slots.NewClock()
	go clock.Run(rootCtx, time.Minute)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer asynqClient.Close()

	emailSender := notification.NewEmailJSClient(
		config.AppConfig.EmailServiceID,
		config.AppConfig.EmailTemplateID,
		config.AppConfig.EmailPublicKey,
	)
	cron.InitConfirmationWorker(emailSender)

	// services.
	committer := &slots.DefaultReservationCommitter{
		Availability: availRepo,
		Bookings:     bookRepo,
		Notifier:     notification.NewAsynqNotificationService(asynqClient),
		WeekdayRate:  config.AppConfig.WeekdayHourlyRate,
		WeekendRate:  config.AppConfig.WeekendHourlyRate,
		AdvanceRate:  config.AppConfig.AdvanceRate,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Availability:   handlers.NewAvailabilityHandler(availRepo, mirror, clock),
		Booking:        handlers.NewBookingHandler(committer, availRepo, mirror, clock),
		BookingRecords: handlers.NewBookingRecordHandler(bookRepo),
		Auth:           handlers.NewAuthHandler(emailSender),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.SessionCacheClient, utils.AuthCacheClient},
		database.MongoClient,
	)

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

	cancelBackground()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
