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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tempo/broadcast"
	"tempo/handler"
	"tempo/middleware"
	"tempo/repository"
	"tempo/usecase"
	"tempo/utils"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file found, relying on the environment")
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"TASKS_COLLECTION",
		"SESSIONS_COLLECTION",
		"JWT_SECRET_KEY",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	// Initialize MongoDB connection
	if os.Getenv("GO_ENV") != "test" {
		utils.InitMongoClient()
	}
}

func setupRouter(hub *broadcast.Hub) *gin.Engine {
	router := gin.New()

	// Storage
	tasksRepo := repository.GetTasksRepo(utils.MongoClient)
	sessionsRepo := repository.GetSessionsRepo(utils.MongoClient)

	// Services; the hub doubles as the mutation notifier
	taskService := usecase.NewTaskService(tasksRepo, hub)
	focusService := usecase.NewFocusService(sessionsRepo, hub,
		utils.GetEnvAsBool("FOCUS_SINGLE_SESSION", false))
	statsService := usecase.NewStatsService(tasksRepo, sessionsRepo)

	taskHandler := handler.NewTaskHandler(taskService)
	sessionHandler := handler.NewSessionHandler(focusService)
	statsHandler := handler.NewStatsHandler(statsService)
	wsHandler := handler.NewWSHandler(hub)

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	// Unauthenticated probes
	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected API (authentication required)
	redisClient := middleware.NewRedisClient(os.Getenv("REDIS_URL"))
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(
		redisClient,
		utils.GetEnvAsInt("RATE_LIMIT_MAX", 100),
		utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
	))
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/tasks", taskHandler.GetUserTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/sessions", sessionHandler.HandleAction)
		api.GET("/stats", statsHandler.GetStats)
	}

	// Real-time change notifications
	router.GET("/ws", middleware.AuthMiddleware(), wsHandler.Subscribe)

	return router
}

func main() {
	hub := broadcast.NewHub()
	router := setupRouter(hub)

	stop := make(chan struct{})
	utils.StartSystemMetrics(30*time.Second, stop)

	port := utils.GetEnvAsString("PORT", "5001")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	utils.CloseMongoClient()
	log.Println("Server shutdown complete")
}
