package gptservice

import (
	"context"
	"fmt"
)

// PlanWriter is the transactional write surface the persister drives. The
// storage layer hands an implementation bound to an open transaction to the
// InTx callback; every insert returns the generated row id.
type PlanWriter interface {
	Catalog
	InsertProgram(ctx context.Context, userID int64, name, description string) (int64, error)
	InsertWorkout(ctx context.Context, programID int64, w Workout) (int64, error)
	InsertWorkoutExercise(ctx context.Context, workoutID, exerciseID int64, restSeconds int) (int64, error)
	InsertSet(ctx context.Context, workoutExerciseID int64, setNumber, reps int) (int64, error)
	InsertDietPlan(ctx context.Context, userID int64, name, description string) (int64, error)
	InsertMeal(ctx context.Context, dietPlanID int64, m Meal) (int64, error)
}

// Store is what the orchestrator needs from storage: catalog reads outside a
// transaction and an atomic write scope. InTx must roll back everything when
// the callback errors and commit only when it returns nil.
type Store interface {
	Catalog
	InTx(ctx context.Context, fn func(PlanWriter) error) error
}

// persistWorkoutPlan writes the validated plan across the four-table
// hierarchy inside one transaction, threading generated ids downward. Any
// failure aborts the transaction; no partial program graph is ever left
// behind.
func persistWorkoutPlan(ctx context.Context, store Store, plan *WorkoutPlan) (*WorkoutReceipt, error) {
	var receipt *WorkoutReceipt

	err := store.InTx(ctx, func(w PlanWriter) error {
		programID, err := w.InsertProgram(ctx, plan.OwnerID, plan.Program.Name, plan.Program.Description)
		if err != nil {
			return &PersistenceError{Op: "insert program", Err: err}
		}
		if programID == 0 {
			// Unreachable with a working RETURNING clause; kept so a broken
			// storage layer cannot thread a zero id through the hierarchy.
			return &PersistenceError{Op: "insert program produced no id"}
		}

		workoutIDs := make([]int64, 0, len(plan.Workouts))
		for _, workout := range plan.Workouts {
			workoutID, err := w.InsertWorkout(ctx, programID, workout)
			if err != nil {
				return &PersistenceError{Op: fmt.Sprintf("insert workout %q", workout.Name), Err: err}
			}
			if workoutID == 0 {
				return &PersistenceError{Op: fmt.Sprintf("insert workout %q produced no id", workout.Name)}
			}
			workoutIDs = append(workoutIDs, workoutID)

			for _, exercise := range workout.Exercises {
				exists, err := w.ExerciseExists(ctx, exercise.ExerciseID)
				if err != nil {
					return &PersistenceError{Op: "exercise catalog lookup", Err: err}
				}
				if !exists {
					return &CatalogReferenceError{ExerciseID: exercise.ExerciseID}
				}

				workoutExerciseID, err := w.InsertWorkoutExercise(ctx, workoutID, exercise.ExerciseID, exercise.RestSeconds)
				if err != nil {
					return &PersistenceError{Op: fmt.Sprintf("insert exercise %d", exercise.ExerciseID), Err: err}
				}
				if workoutExerciseID == 0 {
					return &PersistenceError{Op: fmt.Sprintf("insert exercise %d produced no id", exercise.ExerciseID)}
				}

				// Load is left NULL on purpose: the user fills it in during
				// actual training, long after generation.
				for setNumber := 1; setNumber <= exercise.Sets; setNumber++ {
					if _, err := w.InsertSet(ctx, workoutExerciseID, setNumber, exercise.Reps); err != nil {
						return &PersistenceError{Op: fmt.Sprintf("insert set %d of exercise %d", setNumber, exercise.ExerciseID), Err: err}
					}
				}
			}
		}

		receipt = &WorkoutReceipt{
			ProgramID:   programID,
			ProgramName: plan.Program.Name,
			Description: plan.Program.Description,
			WorkoutIDs:  workoutIDs,
			Plan:        plan,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// persistDietPlan writes the diet plan and its meals in one transaction.
// Generated ids come exclusively from the insert's RETURNING clause; there is
// no last-insert-id session state to go wrong under concurrent writers.
func persistDietPlan(ctx context.Context, store Store, plan *DietPlan) (*DietReceipt, error) {
	var receipt *DietReceipt

	err := store.InTx(ctx, func(w PlanWriter) error {
		dietPlanID, err := w.InsertDietPlan(ctx, plan.UserID, plan.Name, plan.Description)
		if err != nil {
			return &PersistenceError{Op: "insert diet plan", Err: err}
		}
		if dietPlanID == 0 {
			return &PersistenceError{Op: "insert diet plan produced no id"}
		}

		mealIDs := make([]int64, 0, len(plan.Meals))
		for _, meal := range plan.Meals {
			mealID, err := w.InsertMeal(ctx, dietPlanID, meal)
			if err != nil {
				return &PersistenceError{Op: fmt.Sprintf("insert %s meal", meal.MealType), Err: err}
			}
			mealIDs = append(mealIDs, mealID)
		}

		receipt = &DietReceipt{
			DietPlanID:  dietPlanID,
			Name:        plan.Name,
			Description: plan.Description,
			MealIDs:     mealIDs,
			Plan:        plan,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
