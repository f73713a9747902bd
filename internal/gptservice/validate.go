package gptservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Catalog is the read-only exercise lookup the validator and persister
// depend on. Owned by the storage layer.
type Catalog interface {
	ExerciseExists(ctx context.Context, exerciseID int64) (bool, error)
}

var validDifficulties = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

var validMealTypes = map[string]bool{
	"breakfast":  true,
	"lunch":      true,
	"dinner":     true,
	"snack":      true,
	"late-snack": true,
}

const maxExercisesPerWorkout = 10

// ValidateWorkoutPlan walks the decoded model output and enforces the domain
// schema. Rules run top to bottom and the first violation wins; nothing is
// coerced into range silently. The returned plan carries typed fields and the
// program-owning user id derived from the first workout.
func ValidateWorkoutPlan(ctx context.Context, parsed any, catalog Catalog) (*WorkoutPlan, error) {
	root, ok := parsed.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "plan must be a JSON object"}
	}

	programRaw, ok := root["program"].(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "program must be an object"}
	}
	workoutsRaw, ok := root["workouts"].([]any)
	if !ok || len(workoutsRaw) == 0 {
		return nil, &ValidationError{Reason: "workouts must be a non-empty list"}
	}

	programName := asString(programRaw["name"])
	programDescription := asString(programRaw["description"])
	if programName == "" || programDescription == "" {
		return nil, &ValidationError{Reason: "program name and description are required"}
	}

	firstWorkout, ok := workoutsRaw[0].(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "workouts must be objects"}
	}
	ownerID, ok := asInt64(firstWorkout["user_id"])
	if !ok || ownerID < 1 {
		return nil, &ValidationError{Reason: "invalid user id in generated plan"}
	}

	plan := &WorkoutPlan{
		Program:  ProgramInfo{Name: programName, Description: programDescription},
		Workouts: make([]Workout, 0, len(workoutsRaw)),
		OwnerID:  ownerID,
	}

	for i, raw := range workoutsRaw {
		workoutRaw, ok := raw.(map[string]any)
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d must be an object", i+1)}
		}

		userID, okUser := asInt64(workoutRaw["user_id"])
		duration, okDuration := asInt64(workoutRaw["duration_minutes"])
		if !okUser || !okDuration {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d has invalid numeric fields", i+1)}
		}
		if userID != ownerID {
			return nil, &InconsistentOwnerError{Want: ownerID, Got: userID}
		}
		if duration < 10 {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d: duration_minutes must be at least 10", i+1)}
		}

		name := asString(workoutRaw["name"])
		description := asString(workoutRaw["description"])
		difficulty := strings.ToLower(asString(workoutRaw["difficulty"]))
		if name == "" || description == "" || difficulty == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d is missing required fields", i+1)}
		}
		if !validDifficulties[difficulty] {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d: unknown difficulty %q", i+1, difficulty)}
		}

		exercisesRaw, _ := workoutRaw["exercises"].([]any)
		if len(exercisesRaw) == 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d has no exercises", i+1)}
		}
		if len(exercisesRaw) > maxExercisesPerWorkout {
			return nil, &ValidationError{Reason: fmt.Sprintf("workout %d has more than %d exercises", i+1, maxExercisesPerWorkout)}
		}

		workout := Workout{
			Name:            name,
			Description:     description,
			UserID:          userID,
			DurationMinutes: int(duration),
			Difficulty:      difficulty,
			Exercises:       make([]ExerciseItem, 0, len(exercisesRaw)),
		}

		for j, exRaw := range exercisesRaw {
			exercise, err := validateExercise(ctx, exRaw, i+1, j+1, catalog)
			if err != nil {
				return nil, err
			}
			workout.Exercises = append(workout.Exercises, *exercise)
		}

		plan.Workouts = append(plan.Workouts, workout)
	}

	return plan, nil
}

func validateExercise(ctx context.Context, raw any, workoutIdx, exerciseIdx int, catalog Catalog) (*ExerciseItem, error) {
	exerciseRaw, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("workout %d: exercise %d must be an object", workoutIdx, exerciseIdx)}
	}

	exerciseID, okID := asInt64(exerciseRaw["exercise_id"])
	sets, okSets := asInt64(exerciseRaw["sets"])
	reps, okReps := asInt64(exerciseRaw["reps"])
	rest, okRest := asInt64(exerciseRaw["rest_seconds"])
	if !okID || !okSets || !okReps || !okRest {
		return nil, &ValidationError{Reason: fmt.Sprintf("workout %d: exercise %d has invalid numeric fields", workoutIdx, exerciseIdx)}
	}
	if exerciseID < 1 || sets < 1 || reps < 1 || rest < 15 {
		return nil, &ValidationError{Reason: fmt.Sprintf("workout %d: exercise %d has out-of-range values", workoutIdx, exerciseIdx)}
	}

	exists, err := catalog.ExerciseExists(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("exercise catalog lookup failed: %w", err)
	}
	if !exists {
		return nil, &CatalogReferenceError{ExerciseID: exerciseID}
	}

	return &ExerciseItem{
		ExerciseID:  exerciseID,
		Sets:        int(sets),
		Reps:        int(reps),
		RestSeconds: int(rest),
	}, nil
}

// ValidateDietPlan enforces the diet-kind schema. Foods are free text, so no
// catalog lookup is involved.
func ValidateDietPlan(parsed any) (*DietPlan, error) {
	root, ok := parsed.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: "plan must be a JSON object"}
	}

	name := asString(root["name"])
	description := asString(root["description"])
	if name == "" || description == "" {
		return nil, &ValidationError{Reason: "diet plan name and description are required"}
	}

	userID, ok := asInt64(root["user_id"])
	if !ok || userID < 1 {
		return nil, &ValidationError{Reason: "invalid user id in generated diet plan"}
	}

	mealsRaw, ok := root["meals"].([]any)
	if !ok || len(mealsRaw) == 0 {
		return nil, &ValidationError{Reason: "meals must be a non-empty list"}
	}

	plan := &DietPlan{
		Name:        name,
		Description: description,
		UserID:      userID,
		Meals:       make([]Meal, 0, len(mealsRaw)),
	}

	for i, raw := range mealsRaw {
		mealRaw, ok := raw.(map[string]any)
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("meal %d must be an object", i+1)}
		}

		mealType := strings.ToLower(asString(mealRaw["meal_type"]))
		if !validMealTypes[mealType] {
			return nil, &ValidationError{Reason: fmt.Sprintf("meal %d: unknown meal_type %q", i+1, mealType)}
		}

		foods := asString(mealRaw["foods"])
		if foods == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("meal %d is missing foods", i+1)}
		}

		calories, ok := asInt64(mealRaw["calories"])
		if !ok || calories < 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("meal %d has invalid calories", i+1)}
		}

		plan.Meals = append(plan.Meals, Meal{
			MealType: mealType,
			Foods:    foods,
			Calories: int(calories),
		})
	}

	return plan, nil
}

// asString returns the trimmed string value, or "" when the field is absent
// or of another type.
func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asInt64 coerces the loose types JSON decoding produces. Model output is not
// trusted to use numbers consistently, so whole floats and numeric strings
// are accepted; anything fractional or non-numeric is rejected.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
