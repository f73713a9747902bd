/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and manages
core service dependencies like the database and router.
*/
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"

	"github.com/gsouza02/backend-tcc-fitness/internal/database"
	"github.com/gsouza02/backend-tcc-fitness/internal/gptservice"
)

// Server holds the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// db provides access to the database service and connection pool.
	db database.Service

	// planner runs the plan generation pipeline end to end.
	planner *gptservice.Service

	// Echo is the underlying web framework instance.
	*echo.Echo
}

// NewServer initializes a new Server instance and returns a configured
// *http.Server. It reads configuration from environment variables and sets
// production-ready network timeouts.
func NewServer() (*http.Server, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		port = 8080
	}

	db := database.NewService()

	store, err := database.NewPlanStore(db.Pool())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize plan store: %w", err)
	}

	newApp := &Server{
		port:    port,
		db:      db,
		planner: gptservice.NewService(gptservice.NewClient(), store),
	}

	// Plan generation waits on the model, so the write timeout is generous
	// compared to a plain CRUD service.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	return server, nil
}
