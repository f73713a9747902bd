// Package training exposes the plan-generation workflow and the program
// listings over HTTP.
package training

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gsouza02/backend-tcc-fitness/internal/database"
	"github.com/gsouza02/backend-tcc-fitness/internal/gptservice"
	"github.com/gsouza02/backend-tcc-fitness/internal/utility"
)

var (
	queries *database.Queries
	planner *gptservice.Service
)

// Init wires the handlers to the query layer and the plan pipeline.
func Init(q *database.Queries, svc *gptservice.Service) {
	queries = q
	planner = svc
}

/* ====================================================================
                      Plan generation workflow
==================================================================== */

// AdjustWorkoutRequest carries the prior proposal and the user's requested
// change alongside the original intake.
type AdjustWorkoutRequest struct {
	Anamnese    gptservice.Anamnese `json:"anamnese"`
	Plan        any                 `json:"plan"`
	Adjustments string              `json:"adjustments"`
}

// ConfirmPlanRequest is the proposal the client decided to commit.
type ConfirmPlanRequest struct {
	Plan any `json:"plan"`
}

type AdjustDietRequest struct {
	Anamnese    gptservice.DietAnamnese `json:"anamnese"`
	Plan        any                     `json:"plan"`
	Adjustments string                  `json:"adjustments"`
}

// GenerateWorkoutPlanHandler compiles the intake into a prompt, calls the
// model and returns the decoded plan as a proposal. Nothing is persisted.
func GenerateWorkoutPlanHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var anamnese gptservice.Anamnese
	if err := c.Bind(&anamnese); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	// The plan's owner is always the authenticated user, whatever the body says.
	anamnese.UserID = userID

	plan, err := planner.GenerateWorkout(ctx, anamnese)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Workout plan generation failed")
		return c.JSON(gptservice.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Plan generated. Review it and confirm to save.",
		"plan":    plan,
	})
}

// AdjustWorkoutPlanHandler regenerates a proposal applying the requested
// changes to the prior plan. The result is again a proposal.
func AdjustWorkoutPlanHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req AdjustWorkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Plan == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A prior plan is required to adjust"})
	}
	req.Anamnese.UserID = userID

	plan, err := planner.AdjustWorkout(ctx, req.Anamnese, req.Plan, req.Adjustments)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Workout plan adjustment failed")
		return c.JSON(gptservice.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Plan adjusted. Review it and confirm to save.",
		"plan":    plan,
	})
}

// ConfirmWorkoutPlanHandler validates the proposal and persists it in one
// transaction. A failed confirm leaves storage untouched; the client may
// adjust and try again.
func ConfirmWorkoutPlanHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req ConfirmPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	receipt, err := planner.ConfirmWorkout(ctx, req.Plan, userID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Workout plan confirmation rejected")
		return c.JSON(gptservice.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Plan saved successfully",
		"program": map[string]any{
			"id":          receipt.ProgramID,
			"name":        receipt.ProgramName,
			"description": receipt.Description,
		},
		"workout_ids": receipt.WorkoutIDs,
		"plan":        receipt.Plan,
	})
}

// GenerateDietPlanHandler is the diet-kind generation entry point.
func GenerateDietPlanHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var anamnese gptservice.DietAnamnese
	if err := c.Bind(&anamnese); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	anamnese.UserID = userID

	plan, err := planner.GenerateDiet(ctx, anamnese)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Diet plan generation failed")
		return c.JSON(gptservice.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Plan generated. Review it and confirm to save.",
		"plan":    plan,
	})
}

func AdjustDietPlanHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req AdjustDietRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Plan == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A prior plan is required to adjust"})
	}
	req.Anamnese.UserID = userID

	plan, err := planner.AdjustDiet(ctx, req.Anamnese, req.Plan, req.Adjustments)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Diet plan adjustment failed")
		return c.JSON(gptservice.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Plan adjusted. Review it and confirm to save.",
		"plan":    plan,
	})
}

func ConfirmDietPlanHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var req ConfirmPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	receipt, err := planner.ConfirmDiet(ctx, req.Plan, userID)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Diet plan confirmation rejected")
		return c.JSON(gptservice.HTTPStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Plan saved successfully",
		"diet_plan": map[string]any{
			"id":          receipt.DietPlanID,
			"name":        receipt.Name,
			"description": receipt.Description,
		},
		"meal_ids": receipt.MealIDs,
		"plan":     receipt.Plan,
	})
}

/* ====================================================================
                              Listings
==================================================================== */

// ListExercisesHandler returns the whole exercise catalog.
func ListExercisesHandler(c echo.Context) error {
	exercises, err := queries.ListExercises(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list exercises")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch exercises"})
	}
	return c.JSON(http.StatusOK, map[string]any{"exercises": exercises})
}

// ListProgramsHandler returns the caller's training programs, newest first.
func ListProgramsHandler(c echo.Context) error {
	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	programs, err := queries.ListProgramsByUser(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list programs")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch programs"})
	}
	return c.JSON(http.StatusOK, map[string]any{"programs": programs})
}

// ListProgramWorkoutsHandler returns a program with its workouts. The meta
// row and the workout list are independent reads, so they run in parallel.
func ListProgramWorkoutsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := utility.GetUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	programID := utility.ParseIntParam(c.Param("program_id"), 0)
	if programID < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid program id"})
	}

	var (
		program  database.Program
		workouts []database.WorkoutRow
	)

	g, grpCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var e error
		program, e = queries.GetProgram(grpCtx, programID)
		return e
	})
	g.Go(func() error {
		var e error
		workouts, e = queries.ListWorkoutsByProgram(grpCtx, programID)
		return e
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Program not found"})
		}
		log.Error().Err(err).Int64("program_id", programID).Msg("Failed to fetch program detail")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch program"})
	}

	if program.UserID != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"program":  program,
		"workouts": workouts,
	})
}

// ListWorkoutExercisesHandler returns the exercises of one workout joined
// with catalog data and the stored set count.
func ListWorkoutExercisesHandler(c echo.Context) error {
	if _, err := utility.GetUserIDFromContext(c); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	workoutID := utility.ParseIntParam(c.Param("workout_id"), 0)
	if workoutID < 1 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid workout id"})
	}

	exercises, err := queries.ListWorkoutExercises(c.Request().Context(), workoutID)
	if err != nil {
		log.Error().Err(err).Int64("workout_id", workoutID).Msg("Failed to list workout exercises")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch workout exercises"})
	}
	return c.JSON(http.StatusOK, map[string]any{"exercises": exercises})
}
