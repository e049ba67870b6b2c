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

	"fitcoach/coaching-app/internal/api"
	"fitcoach/coaching-app/internal/config"
	"fitcoach/coaching-app/internal/repository/mongo"
	"fitcoach/coaching-app/internal/service"
	"fitcoach/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Coaching App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureQuestionnaireIndexes(ctx, appDB.Collection("questionnaires"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureCombinedWorkoutIndexes(ctx, appDB.Collection("combined_workouts"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("sessions"))
		mongo.EnsureMealIndexes(ctx, appDB.Collection("meals"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureNotificationIndexes(ctx, appDB.Collection("notifications"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		log.Println("Initializing file storage service...")
		fileStorage, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: No S3 bucket configured, media endpoints disabled.")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	questionnaireRepo := mongo.NewMongoQuestionnaireRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	combinedRepo := mongo.NewMongoCombinedWorkoutRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	mealRepo := mongo.NewMongoMealRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	notificationRepo := mongo.NewMongoNotificationRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	notifier := service.NewNotifier(notificationRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, notifier)
	questionnaireService := service.NewQuestionnaireService(questionnaireRepo, userRepo, notifier)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo, notifier)
	sessionService := service.NewSessionService(sessionRepo, workoutRepo, combinedRepo, notifier, service.CascadePolicy(cfg.Session.Cascade))
	combinedService := service.NewCombinedWorkoutService(combinedRepo, workoutRepo, notifier)
	mealService := service.NewMealService(mealRepo, notifier)
	exerciseService := service.NewExerciseService(exerciseRepo)
	notificationService := service.NewNotificationService(notificationRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, api.Services{
		Auth:          authService,
		User:          userService,
		Questionnaire: questionnaireService,
		Workout:       workoutService,
		Session:       sessionService,
		Combined:      combinedService,
		Meal:          mealService,
		Exercise:      exerciseService,
		Notification:  notificationService,
		FileStorage:   fileStorage,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
