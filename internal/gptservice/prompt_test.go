package gptservice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkoutPromptIsDeterministic(t *testing.T) {
	a := Anamnese{
		UserID:            7,
		Age:               31,
		Sex:               "male",
		WeightKg:          82.5,
		Experience:        "intermediate",
		TrainingMonths:    18,
		DaysPerWeek:       4,
		MinutesPerSession: 60,
		Goals:             []string{"hypertrophy", "conditioning"},
		Equipment:         "full gym",
	}

	first := BuildWorkoutPrompt(a)
	second := BuildWorkoutPrompt(a)
	assert.Equal(t, first, second)

	assert.NotContains(t, first, anamneseSlot)
	assert.Contains(t, first, "User ID: 7")
	assert.Contains(t, first, "Weight (kg): 82.5")
	assert.Contains(t, first, "Main goals: hypertrophy, conditioning")
	assert.Contains(t, first, "Available equipment: full gym")
}

func TestBuildWorkoutPromptFallbackLiterals(t *testing.T) {
	prompt := BuildWorkoutPrompt(Anamnese{UserID: 3, Age: 40})

	assert.Contains(t, prompt, "Sex: not informed")
	assert.Contains(t, prompt, "Main goals: not specified")
	assert.Contains(t, prompt, "Injuries or limitations: none")
	assert.Contains(t, prompt, "Medical conditions: none")
	assert.Contains(t, prompt, "Available equipment: not informed")
}

func TestBuildDietPromptRendersIntake(t *testing.T) {
	prompt := BuildDietPrompt(DietAnamnese{
		UserID:       9,
		Age:          27,
		WeightKg:     64,
		HeightCm:     170,
		Restrictions: "vegetarian",
		MealsPerDay:  5,
	})

	assert.NotContains(t, prompt, anamneseSlot)
	assert.Contains(t, prompt, "User ID: 9")
	assert.Contains(t, prompt, "Height (cm): 170")
	assert.Contains(t, prompt, "Dietary restrictions: vegetarian")
	assert.Contains(t, prompt, "Meals per day: 5")
	assert.Contains(t, prompt, "Allergies: none")
}

func TestBuildAdjustPromptAppendsPlanAndChanges(t *testing.T) {
	base := BuildWorkoutPrompt(Anamnese{UserID: 2, Age: 25})
	prior := map[string]any{"program": map[string]any{"name": "Push Pull Legs"}}

	prompt := BuildAdjustPrompt(base, prior, "swap squats for leg press")

	require.True(t, strings.HasPrefix(prompt, base))
	assert.Contains(t, prompt, "PREVIOUS PLAN")
	assert.Contains(t, prompt, `"name": "Push Pull Legs"`)
	assert.Contains(t, prompt, "REQUESTED CHANGES")
	assert.Contains(t, prompt, "swap squats for leg press")
	assert.Contains(t, prompt, "Regenerate the FULL plan")
}

func TestBuildAdjustPromptEmptyDelta(t *testing.T) {
	prompt := BuildAdjustPrompt("base", map[string]any{}, "   ")
	assert.Contains(t, prompt, noAdjustments)
}
