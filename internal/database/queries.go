package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gsouza02/backend-tcc-fitness/internal/gptservice"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the same Queries
// methods run standalone or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to an open transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

/* ====================================================================
                                Users
==================================================================== */

type CreateUserParams struct {
	Name         string
	Email        string
	Username     string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	const sql = `
		INSERT INTO users (name, email, username, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, username, password_hash, created_at`
	var u User
	err := q.db.QueryRow(ctx, sql, arg.Name, arg.Email, arg.Username, arg.PasswordHash).
		Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const sql = `
		SELECT id, name, email, username, password_hash, created_at
		FROM users WHERE email = $1`
	var u User
	err := q.db.QueryRow(ctx, sql, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	const sql = `
		SELECT id, name, email, username, password_hash, created_at
		FROM users WHERE id = $1`
	var u User
	err := q.db.QueryRow(ctx, sql, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

/* ====================================================================
                           Exercise catalog
==================================================================== */

func (q *Queries) ExerciseExists(ctx context.Context, exerciseID int64) (bool, error) {
	const sql = `SELECT EXISTS(SELECT 1 FROM exercises WHERE id = $1)`
	var exists bool
	err := q.db.QueryRow(ctx, sql, exerciseID).Scan(&exists)
	return exists, err
}

func (q *Queries) ListExercises(ctx context.Context) ([]Exercise, error) {
	const sql = `
		SELECT id, name, COALESCE(muscle_group, ''), COALESCE(equipment, '')
		FROM exercises ORDER BY name`
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (q *Queries) ListExercisesByIDs(ctx context.Context, ids []int64) ([]Exercise, error) {
	const sql = `
		SELECT id, name, COALESCE(muscle_group, ''), COALESCE(equipment, '')
		FROM exercises WHERE id = ANY($1) ORDER BY id`
	rows, err := q.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

/* ====================================================================
                      Plan persistence (RETURNING ids)
==================================================================== */

func (q *Queries) InsertProgram(ctx context.Context, userID int64, name, description string) (int64, error) {
	const sql = `
		INSERT INTO programs (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, sql, userID, name, description).Scan(&id)
	return id, err
}

func (q *Queries) InsertWorkout(ctx context.Context, programID int64, w gptservice.Workout) (int64, error) {
	const sql = `
		INSERT INTO workouts (program_id, user_id, name, description, duration_minutes, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, sql, programID, w.UserID, w.Name, w.Description, w.DurationMinutes, w.Difficulty).Scan(&id)
	return id, err
}

func (q *Queries) InsertWorkoutExercise(ctx context.Context, workoutID, exerciseID int64, restSeconds int) (int64, error) {
	const sql = `
		INSERT INTO workout_exercises (workout_id, exercise_id, rest_seconds)
		VALUES ($1, $2, $3)
		RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, sql, workoutID, exerciseID, restSeconds).Scan(&id)
	return id, err
}

func (q *Queries) InsertSet(ctx context.Context, workoutExerciseID int64, setNumber, reps int) (int64, error) {
	// Load stays NULL at generation time; the user records it while training.
	const sql = `
		INSERT INTO sets (workout_exercise_id, set_number, reps, load)
		VALUES ($1, $2, $3, NULL)
		RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, sql, workoutExerciseID, setNumber, reps).Scan(&id)
	return id, err
}

func (q *Queries) InsertDietPlan(ctx context.Context, userID int64, name, description string) (int64, error) {
	const sql = `
		INSERT INTO diet_plans (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, sql, userID, name, description).Scan(&id)
	return id, err
}

func (q *Queries) InsertMeal(ctx context.Context, dietPlanID int64, m gptservice.Meal) (int64, error) {
	const sql = `
		INSERT INTO meals (diet_plan_id, meal_type, foods, calories)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := q.db.QueryRow(ctx, sql, dietPlanID, m.MealType, m.Foods, m.Calories).Scan(&id)
	return id, err
}

/* ====================================================================
                              Listings
==================================================================== */

func (q *Queries) GetProgram(ctx context.Context, programID int64) (Program, error) {
	const sql = `
		SELECT id, user_id, name, description, created_at
		FROM programs WHERE id = $1`
	var p Program
	err := q.db.QueryRow(ctx, sql, programID).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt)
	return p, err
}

func (q *Queries) ListProgramsByUser(ctx context.Context, userID int64) ([]Program, error) {
	const sql = `
		SELECT id, user_id, name, description, created_at
		FROM programs
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := q.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (q *Queries) ListWorkoutsByProgram(ctx context.Context, programID int64) ([]WorkoutRow, error) {
	const sql = `
		SELECT id, program_id, user_id, name, description, duration_minutes, difficulty
		FROM workouts
		WHERE program_id = $1
		ORDER BY id`
	rows, err := q.db.Query(ctx, sql, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []WorkoutRow
	for rows.Next() {
		var w WorkoutRow
		if err := rows.Scan(&w.ID, &w.ProgramID, &w.UserID, &w.Name, &w.Description, &w.DurationMinutes, &w.Difficulty); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (q *Queries) ListWorkoutExercises(ctx context.Context, workoutID int64) ([]WorkoutExerciseDetail, error) {
	const sql = `
		SELECT we.id, e.id, e.name,
		       COALESCE(e.muscle_group, ''), COALESCE(e.equipment, ''),
		       we.rest_seconds, COALESCE(s.set_count, 0)
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		LEFT JOIN (
			SELECT workout_exercise_id, COUNT(*) AS set_count
			FROM sets GROUP BY workout_exercise_id
		) s ON s.workout_exercise_id = we.id
		WHERE we.workout_id = $1
		ORDER BY we.id`
	rows, err := q.db.Query(ctx, sql, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []WorkoutExerciseDetail
	for rows.Next() {
		var d WorkoutExerciseDetail
		if err := rows.Scan(&d.WorkoutExerciseID, &d.ExerciseID, &d.Name, &d.MuscleGroup, &d.Equipment, &d.RestSeconds, &d.Sets); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
