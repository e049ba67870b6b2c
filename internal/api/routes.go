package api

import (
	"net/http"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
	"fitcoach/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
)

// Services bundles everything SetupRoutes wires into handlers.
type Services struct {
	Auth          service.AuthService
	User          service.UserService
	Questionnaire service.QuestionnaireService
	Workout       service.WorkoutService
	Session       service.SessionService
	Combined      service.CombinedWorkoutService
	Meal          service.MealService
	Exercise      service.ExerciseService
	Notification  service.NotificationService
	FileStorage   storage.FileStorage
}

// SetupRoutes registers every endpoint on the router.
func SetupRoutes(router *gin.Engine, jwtSecret string, svcs Services) {
	authHandler := NewAuthHandler(svcs.Auth)
	userHandler := NewUserHandler(svcs.User)
	questionnaireHandler := NewQuestionnaireHandler(svcs.Questionnaire)
	workoutHandler := NewWorkoutHandler(svcs.Workout)
	sessionHandler := NewSessionHandler(svcs.Session)
	combinedHandler := NewCombinedWorkoutHandler(svcs.Combined)
	mealHandler := NewMealHandler(svcs.Meal)
	exerciseHandler := NewExerciseHandler(svcs.Exercise)
	notificationHandler := NewNotificationHandler(svcs.Notification)

	authMiddleware := AuthMiddleware(jwtSecret)
	coachOrAdmin := RoleMiddleware(domain.RoleCoach, domain.RoleAdmin)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Users ---
		protected.GET("/users/me", userHandler.GetMe)
		protected.GET("/users/:id", userHandler.GetUser)
		protected.POST("/users/:id/coach", coachOrAdmin, userHandler.AssignCoach)
		protected.GET("/coaches/:id/clients", coachOrAdmin, userHandler.GetClients)

		// --- Questionnaires ---
		questionnaireGroup := protected.Group("/questionnaires")
		{
			questionnaireGroup.GET("", coachOrAdmin, questionnaireHandler.ListQuestionnaires)
			questionnaireGroup.GET("/:userId", questionnaireHandler.GetQuestionnaire)
			questionnaireGroup.PUT("/:userId", questionnaireHandler.SaveQuestionnaire)
			questionnaireGroup.GET("/:userId/recommendations", questionnaireHandler.GetRecommendations)
			questionnaireGroup.DELETE("/:userId", adminOnly, questionnaireHandler.DeleteQuestionnaire)
		}

		// --- Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", coachOrAdmin, workoutHandler.CreateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.GET("/:id/duration", workoutHandler.GetWorkoutDuration)
			workoutGroup.PUT("/:id", coachOrAdmin, workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", coachOrAdmin, workoutHandler.DeleteWorkout)
		}

		// --- Sessions and their ordered contents ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", coachOrAdmin, sessionHandler.CreateSession)
			sessionGroup.GET("", sessionHandler.ListSessions)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
			sessionGroup.PUT("/:id", coachOrAdmin, sessionHandler.UpdateSession)
			sessionGroup.DELETE("/:id", coachOrAdmin, sessionHandler.DeleteSession)

			sessionGroup.POST("/:id/workouts", coachOrAdmin, sessionHandler.AddWorkoutToSession)
			sessionGroup.DELETE("/:id/workouts/:workoutId", coachOrAdmin, sessionHandler.RemoveWorkoutFromSession)
			sessionGroup.PATCH("/:id/workouts/:workoutId/order", coachOrAdmin, sessionHandler.UpdateWorkoutOrder)

			sessionGroup.POST("/:id/combined-workouts", coachOrAdmin, sessionHandler.AddCombinedWorkoutToSession)
			sessionGroup.DELETE("/:id/combined-workouts/:combinedId", coachOrAdmin, sessionHandler.RemoveCombinedWorkoutFromSession)
			sessionGroup.PATCH("/:id/combined-workouts/:combinedId/order", coachOrAdmin, sessionHandler.UpdateCombinedWorkoutOrder)
		}

		// --- Combined workouts ---
		combinedGroup := protected.Group("/combined-workouts")
		{
			combinedGroup.POST("", coachOrAdmin, combinedHandler.CreateCombinedWorkout)
			combinedGroup.GET("", combinedHandler.ListCombinedWorkouts)
			combinedGroup.GET("/:id", combinedHandler.GetCombinedWorkout)
			combinedGroup.PUT("/:id", coachOrAdmin, combinedHandler.UpdateCombinedWorkout)
			combinedGroup.DELETE("/:id", coachOrAdmin, combinedHandler.DeleteCombinedWorkout)
		}

		// --- Meals ---
		mealGroup := protected.Group("/meals")
		{
			mealGroup.POST("", mealHandler.CreateMeal)
			mealGroup.GET("", mealHandler.ListMeals)
			mealGroup.GET("/:id", mealHandler.GetMeal)
			mealGroup.PUT("/:id", mealHandler.UpdateMeal)
			mealGroup.DELETE("/:id", mealHandler.DeleteMeal)
			mealGroup.POST("/:id/review", coachOrAdmin, mealHandler.ReviewMeal)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", coachOrAdmin, exerciseHandler.CreateExercise)
			exerciseGroup.GET("", coachOrAdmin, exerciseHandler.ListMyExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", coachOrAdmin, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", coachOrAdmin, exerciseHandler.DeleteExercise)
		}

		// --- Notifications ---
		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.ListNotifications)
			notificationGroup.GET("/unread-count", notificationHandler.GetUnreadCount)
			notificationGroup.POST("/read-all", notificationHandler.MarkAllNotificationsRead)
			notificationGroup.POST("/:id/read", notificationHandler.MarkNotificationRead)
		}

		// --- Media (optional; S3 may be unconfigured in dev) ---
		if svcs.FileStorage != nil {
			mediaHandler := NewMediaHandler(svcs.FileStorage)
			mediaGroup := protected.Group("/media")
			{
				mediaGroup.POST("/upload-url", mediaHandler.CreateUploadURL)
				mediaGroup.GET("/download-url", mediaHandler.GetDownloadURL)
			}
		}
	}
}
