package gptservice

// Anamnese is the training intake questionnaire. It arrives already typed
// from the HTTP layer and is never persisted by this pipeline; it only feeds
// the prompt compiler.
type Anamnese struct {
	UserID            int64    `json:"user_id"`
	Age               int      `json:"age"`
	Sex               string   `json:"sex"`
	WeightKg          float64  `json:"weight_kg"`
	Experience        string   `json:"experience"`
	TrainingMonths    int      `json:"training_months"`
	DaysPerWeek       int      `json:"days_per_week"`
	MinutesPerSession int      `json:"minutes_per_session"`
	Goals             []string `json:"goals"`
	SpecificGoal      string   `json:"specific_goal"`
	Injuries          string   `json:"injuries"`
	MedicalConditions string   `json:"medical_conditions"`
	DislikedExercises string   `json:"disliked_exercises"`
	Equipment         string   `json:"equipment"`
}

// DietAnamnese is the diet intake variant.
type DietAnamnese struct {
	UserID        int64    `json:"user_id"`
	Age           int      `json:"age"`
	Sex           string   `json:"sex"`
	WeightKg      float64  `json:"weight_kg"`
	HeightCm      float64  `json:"height_cm"`
	ActivityLevel string   `json:"activity_level"`
	Goals         []string `json:"goals"`
	SpecificGoal  string   `json:"specific_goal"`
	Restrictions  string   `json:"restrictions"`
	Allergies     string   `json:"allergies"`
	DislikedFoods string   `json:"disliked_foods"`
	MealsPerDay   int      `json:"meals_per_day"`
}

// WorkoutPlan is a generated plan after validation. OwnerID is the user id
// threaded from the first workout; the validator guarantees every workout
// carries the same value.
type WorkoutPlan struct {
	Program  ProgramInfo `json:"program"`
	Workouts []Workout   `json:"workouts"`
	OwnerID  int64       `json:"-"`
}

type ProgramInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Workout struct {
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	UserID          int64          `json:"user_id"`
	DurationMinutes int            `json:"duration_minutes"`
	Difficulty      string         `json:"difficulty"`
	Exercises       []ExerciseItem `json:"exercises"`
}

type ExerciseItem struct {
	ExerciseID  int64 `json:"exercise_id"`
	Sets        int   `json:"sets"`
	Reps        int   `json:"reps"`
	RestSeconds int   `json:"rest_seconds"`
}

// DietPlan is the validated diet-kind plan.
type DietPlan struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      int64  `json:"user_id"`
	Meals       []Meal `json:"meals"`
}

type Meal struct {
	MealType string `json:"meal_type"`
	Foods    string `json:"foods"`
	Calories int    `json:"calories"`
}

// WorkoutReceipt is returned by a successful confirm. It echoes the validated
// plan so the client does not have to keep its own copy in sync.
type WorkoutReceipt struct {
	ProgramID   int64        `json:"program_id"`
	ProgramName string       `json:"program_name"`
	Description string       `json:"description"`
	WorkoutIDs  []int64      `json:"workout_ids"`
	Plan        *WorkoutPlan `json:"plan"`
}

// DietReceipt is the diet-kind confirm receipt.
type DietReceipt struct {
	DietPlanID  int64     `json:"diet_plan_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MealIDs     []int64   `json:"meal_ids"`
	Plan        *DietPlan `json:"plan"`
}
