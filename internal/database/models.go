package database

import "github.com/jackc/pgx/v5/pgtype"

type User struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Username     string             `json:"username"`
	PasswordHash string             `json:"-"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

type Exercise struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Equipment   string `json:"equipment"`
}

type Program struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type WorkoutRow struct {
	ID              int64  `json:"id"`
	ProgramID       int64  `json:"program_id"`
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int32  `json:"duration_minutes"`
	Difficulty      string `json:"difficulty"`
}

// WorkoutExerciseDetail is the joined view of an exercise inside a workout:
// catalog fields plus the per-workout prescription and the set count.
type WorkoutExerciseDetail struct {
	WorkoutExerciseID int64  `json:"workout_exercise_id"`
	ExerciseID        int64  `json:"exercise_id"`
	Name              string `json:"name"`
	MuscleGroup       string `json:"muscle_group"`
	Equipment         string `json:"equipment"`
	RestSeconds       int32  `json:"rest_seconds"`
	Sets              int64  `json:"sets"`
}
