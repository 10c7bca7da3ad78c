package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diarista/config"
	"diarista/cron"
	"diarista/database"
	engagementRepoPkg "diarista/database/repository/engagement"
	messageRepoPkg "diarista/database/repository/message"
	ratingRepoPkg "diarista/database/repository/rating"
	shiftRepoPkg "diarista/database/repository/shift"
	userRepoPkg "diarista/database/repository/user"
	"diarista/handlers"
	"diarista/routes"
	"diarista/services/engagement"
	"diarista/services/message"
	"diarista/services/rating"
	"diarista/services/shift"
	"diarista/services/user"
	"diarista/utils"

	"github.com/gin-gonic/gin"
	redislib "github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
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

	// repositories.
	users := userRepoPkg.NewMongoUserRepo()
	engagements := engagementRepoPkg.NewMongoEngagementRepo()
	shifts := shiftRepoPkg.NewMongoShiftRepo()
	ratings := ratingRepoPkg.NewMongoRatingRepo()
	messages := messageRepoPkg.NewMongoMessageRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: users,
	}
	engagementService := &engagement.DefaultEngagementService{
		Repo:  engagements,
		Users: users,
	}
	tracker := &shift.DefaultTracker{
		Shifts:            shifts,
		Engagements:       engagements,
		OvertimeThreshold: config.OvertimeThreshold(),
	}
	ratingService := &rating.DefaultRatingService{
		Ratings:     ratings,
		Engagements: engagements,
	}
	messageService := &message.DefaultMessageService{
		Messages:    messages,
		Engagements: engagements,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   users,
		User:       handlers.NewUserHandler(userService, ratingService),
		Engagement: handlers.NewEngagementHandler(engagementService),
		Shift:      handlers.NewShiftHandler(tracker),
		Rating:     handlers.NewRatingHandler(ratingService),
		Message:    handlers.NewMessageHandler(messageService),
		Admin:      handlers.NewAdminHandler(userService, engagements, shifts),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background health checks and the overtime sweep worker.
	startHealthMonitor(database.MongoClient)
	cron.InitShiftWorker(shifts)

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

func startHealthMonitor(mongoClient *mongo.Client) {
	clients := []*redislib.Client{}
	if c := utils.GetCacheClient(); c != nil {
		clients = append(clients, c)
	}
	if c := utils.GetAuthCacheClient(); c != nil {
		clients = append(clients, c)
	}
	utils.StartHealthMonitor(clients, mongoClient)
}
