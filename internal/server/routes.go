package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/gsouza02/backend-tcc-fitness/internal/auth"
	"github.com/gsouza02/backend-tcc-fitness/internal/training"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	training.Init(s.db.Queries(), s.planner)

	// Public routes
	e.POST("/signup", auth.SignupHandler)
	e.POST("/login", auth.LoginHandler)
	e.GET("/health", s.healthHandler)

	e.Use(LoggerMiddleware)

	// Protected routes
	protected := e.Group("")
	protected.Use(auth.JwtAuthMiddleware)

	// Plan generation workflow: generate/adjust return proposals, confirm saves.
	protected.POST("/plans/workout/generate", training.GenerateWorkoutPlanHandler)
	protected.POST("/plans/workout/adjust", training.AdjustWorkoutPlanHandler)
	protected.POST("/plans/workout/confirm", training.ConfirmWorkoutPlanHandler)
	protected.POST("/plans/diet/generate", training.GenerateDietPlanHandler)
	protected.POST("/plans/diet/adjust", training.AdjustDietPlanHandler)
	protected.POST("/plans/diet/confirm", training.ConfirmDietPlanHandler)

	// Catalog and saved plan listings
	protected.GET("/exercises", training.ListExercisesHandler)
	protected.GET("/programs", training.ListProgramsHandler)
	protected.GET("/programs/:program_id/workouts", training.ListProgramWorkoutsHandler)
	protected.GET("/workouts/:workout_id/exercises", training.ListWorkoutExercisesHandler)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, s.db.Health())
}

func LoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()

		c.Set("logger", &logger)

		return next(c)
	}
}
