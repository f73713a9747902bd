package gptservice

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The instruction templates are process-wide constants: compiled once, never
// mutated. The anamnese slot is substituted per request.
const anamneseSlot = "<<<ANAMNESE>>>"

const workoutPromptTemplate = `You are a workout-prescription AI. Your only task is to generate, from the intake answers described below, a valid JSON document representing a complete training program. Read the whole brief before answering.

MANDATORY REQUIREMENTS
1. The response must be EXCLUSIVELY a well-formed JSON document, with no comments, headers, explanations or additional text.
2. Follow exactly this schema:

{
  "program": {
    "name": "required string",
    "description": "required string"
  },
  "workouts": [
    {
      "name": "required string",
      "description": "required string",
      "user_id": integer >= 1,
      "duration_minutes": integer >= 10,
      "difficulty": "beginner" | "intermediate" | "advanced",
      "exercises": [
        {
          "exercise_id": integer >= 1,
          "sets": integer >= 1,
          "reps": integer >= 1,
          "rest_seconds": integer >= 15
        }
      ]
    }
  ]
}

3. Every field must be filled with values coherent with the intake answers.
4. Generate at least 1 workout and between 1 and 10 exercises per workout.
5. Use only whole numbers for numeric fields.
6. "user_id" must match the user id given in the intake.
7. Names and descriptions must reflect the user's goals, restrictions, experience level, available time and equipment.
8. Exercises must be compatible with the stated conditions and equipment. Adjust sets, reps and rest to the level and goal (e.g. hypertrophy, endurance, weight loss).
9. If there are injuries or limitations, adapt the exercise selection and describe that in the workout's "description" field.
10. Always return syntactically valid JSON (balanced braces, quoted strings, correct commas).
11. Generate one workout for each day the user has available.

GENERATION PROCESS
- First, interpret the user profile (age, experience, availability, goals, injuries, equipment).
- Choose the appropriate difficulty ("beginner", "intermediate" or "advanced").
- Define the program name and description summarizing the main goal and approach.
- For each workout:
  * Give it a specific name and description highlighting muscle focus and the day's goal.
  * Pick compatible exercises; vary muscle groups according to the goals.
  * Tune sets, reps and rest to reflect intensity and available time.
  * Keep the total duration coherent with the time informed.

USER INTAKE
` + anamneseSlot

const dietPromptTemplate = `You are a diet-prescription AI. Your only task is to generate, from the intake answers described below, a valid JSON document representing a complete diet plan. Read the whole brief before answering.

MANDATORY REQUIREMENTS
1. The response must be EXCLUSIVELY a well-formed JSON document, with no comments, headers, explanations or additional text.
2. Follow exactly this schema:

{
  "name": "required string",
  "description": "required string",
  "user_id": integer >= 1,
  "meals": [
    {
      "meal_type": "breakfast" | "lunch" | "dinner" | "snack" | "late-snack",
      "foods": "required string describing the foods and portions",
      "calories": integer >= 0
    }
  ]
}

3. Every field must be filled with values coherent with the intake answers.
4. Generate one meal entry per meal the user eats in a day.
5. Use only whole numbers for numeric fields.
6. "user_id" must match the user id given in the intake.
7. Respect every dietary restriction, allergy and disliked food.
8. Always return syntactically valid JSON (balanced braces, quoted strings, correct commas).

USER INTAKE
` + anamneseSlot

const adjustInstruction = `
The user already received the plan above and requested the listed changes. Regenerate the FULL plan honoring exactly the same JSON schema and all the mandatory requirements, applying the requested changes while keeping everything else coherent with the intake.`

const noAdjustments = "no additional adjustments"

// BuildWorkoutPrompt renders the training prompt for a fresh generation.
// It is a pure function of the anamnese: same input, same prompt.
func BuildWorkoutPrompt(a Anamnese) string {
	return strings.ReplaceAll(workoutPromptTemplate, anamneseSlot, renderAnamnese(a))
}

// BuildDietPrompt renders the diet prompt for a fresh generation.
func BuildDietPrompt(a DietAnamnese) string {
	return strings.ReplaceAll(dietPromptTemplate, anamneseSlot, renderDietAnamnese(a))
}

// BuildAdjustPrompt appends the prior plan and the user's requested change to
// the generation prompt. priorPlan is serialized as indented JSON; an empty
// delta degrades to a fallback literal rather than an empty section.
func BuildAdjustPrompt(basePrompt string, priorPlan any, delta string) string {
	prior, err := json.MarshalIndent(priorPlan, "", "  ")
	if err != nil {
		// A proposal that round-tripped through JSON cannot fail to marshal;
		// fall back to its Go rendering rather than dropping the section.
		prior = fmt.Appendf(nil, "%v", priorPlan)
	}

	delta = strings.TrimSpace(delta)
	if delta == "" {
		delta = noAdjustments
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nPREVIOUS PLAN\n")
	b.Write(prior)
	b.WriteString("\n\nREQUESTED CHANGES\n")
	b.WriteString(delta)
	b.WriteString("\n")
	b.WriteString(adjustInstruction)
	return b.String()
}

// renderAnamnese serializes the profile as a deterministic key-value block.
// Optional fields never render empty: they degrade to fallback literals so
// the model is told explicitly that nothing was informed.
func renderAnamnese(a Anamnese) string {
	goals := "not specified"
	if len(a.Goals) > 0 {
		goals = strings.Join(a.Goals, ", ")
	}

	lines := []string{
		fmt.Sprintf("User ID: %d", a.UserID),
		fmt.Sprintf("Age: %d", a.Age),
		fmt.Sprintf("Sex: %s", fallback(a.Sex, "not informed")),
		fmt.Sprintf("Weight (kg): %g", a.WeightKg),
		fmt.Sprintf("Experience: %s", fallback(a.Experience, "not informed")),
		fmt.Sprintf("Months training regularly: %d", a.TrainingMonths),
		fmt.Sprintf("Days per week available: %d", a.DaysPerWeek),
		fmt.Sprintf("Minutes available per session: %d", a.MinutesPerSession),
		fmt.Sprintf("Main goals: %s", goals),
		fmt.Sprintf("Specific goal: %s", fallback(a.SpecificGoal, "none")),
		fmt.Sprintf("Injuries or limitations: %s", fallback(a.Injuries, "none")),
		fmt.Sprintf("Medical conditions: %s", fallback(a.MedicalConditions, "none")),
		fmt.Sprintf("Exercises the user dislikes: %s", fallback(a.DislikedExercises, "none")),
		fmt.Sprintf("Available equipment: %s", fallback(a.Equipment, "not informed")),
	}
	return strings.Join(lines, "\n")
}

func renderDietAnamnese(a DietAnamnese) string {
	goals := "not specified"
	if len(a.Goals) > 0 {
		goals = strings.Join(a.Goals, ", ")
	}

	lines := []string{
		fmt.Sprintf("User ID: %d", a.UserID),
		fmt.Sprintf("Age: %d", a.Age),
		fmt.Sprintf("Sex: %s", fallback(a.Sex, "not informed")),
		fmt.Sprintf("Weight (kg): %g", a.WeightKg),
		fmt.Sprintf("Height (cm): %g", a.HeightCm),
		fmt.Sprintf("Activity level: %s", fallback(a.ActivityLevel, "not informed")),
		fmt.Sprintf("Main goals: %s", goals),
		fmt.Sprintf("Specific goal: %s", fallback(a.SpecificGoal, "none")),
		fmt.Sprintf("Dietary restrictions: %s", fallback(a.Restrictions, "none")),
		fmt.Sprintf("Allergies: %s", fallback(a.Allergies, "none")),
		fmt.Sprintf("Foods the user dislikes: %s", fallback(a.DislikedFoods, "none")),
		fmt.Sprintf("Meals per day: %d", a.MealsPerDay),
	}
	return strings.Join(lines, "\n")
}

func fallback(s, alt string) string {
	if strings.TrimSpace(s) == "" {
		return alt
	}
	return s
}
