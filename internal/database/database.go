/*
Package database owns the PostgreSQL connection pool and the query layer.
It exposes a Service for lifecycle and health reporting, a Queries type with
every SQL statement the application runs, and a PlanStore adapter that gives
the plan pipeline its transactional write scope.
*/
package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Service represents a service that interacts with the database.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection pool.
	Close()

	Queries() *Queries

	Pool() *pgxpool.Pool
}

type service struct {
	pool *pgxpool.Pool
	q    *Queries
}

var (
	database   = os.Getenv("FITCOACH_DB_DATABASE")
	password   = os.Getenv("FITCOACH_DB_PASSWORD")
	username   = os.Getenv("FITCOACH_DB_USERNAME")
	port       = os.Getenv("FITCOACH_DB_PORT")
	host       = os.Getenv("FITCOACH_DB_HOST")
	schema     = os.Getenv("FITCOACH_DB_SCHEMA")
	dbInstance *service
)

func NewService() Service {
	// Reuse connection
	if dbInstance != nil {
		return dbInstance
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s", username, password, host, port, database, schema)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to create connection pool")
	}

	dbInstance = &service{
		pool: pool,
		q:    New(pool),
	}
	return dbInstance
}

func (s *service) Queries() *Queries {
	return s.q
}

func (s *service) Pool() *pgxpool.Pool {
	return s.pool
}

// Health checks the database connection and reports pool plus host stats.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Error().Err(err).Msg("db down")
		return stats
	}

	poolStats := s.pool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["max_conns"] = strconv.Itoa(int(poolStats.MaxConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)
	stats["acquire_duration_ms"] = strconv.FormatInt(poolStats.AcquireDuration().Milliseconds(), 10)

	if poolStats.AcquiredConns() > (poolStats.MaxConns() * 8 / 10) { // 80% capacity
		stats["message"] = "The database connection pool is experiencing heavy load."
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats["host_mem_used_percent"] = strconv.FormatFloat(vm.UsedPercent, 'f', 1, 64)
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats["host_cpu_percent"] = strconv.FormatFloat(percents[0], 'f', 1, 64)
	}

	return stats
}

// Close closes the database connection pool.
func (s *service) Close() {
	log.Info().Str("database", database).Msg("Disconnected from database")
	s.pool.Close()
}
