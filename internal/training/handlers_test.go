package training

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsouza02/backend-tcc-fitness/internal/database"
	"github.com/gsouza02/backend-tcc-fitness/internal/gptservice"
)

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	return s.response, s.err
}

// memoryStore is an in-memory gptservice.Store that hands out sequential ids.
type memoryStore struct {
	catalog   map[int64]bool
	nextID    int64
	committed bool
}

func (m *memoryStore) ExerciseExists(_ context.Context, id int64) (bool, error) {
	return m.catalog[id], nil
}

func (m *memoryStore) InTx(_ context.Context, fn func(gptservice.PlanWriter) error) error {
	if err := fn(m); err != nil {
		return err
	}
	m.committed = true
	return nil
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memoryStore) InsertProgram(context.Context, int64, string, string) (int64, error) {
	return m.id(), nil
}

func (m *memoryStore) InsertWorkout(context.Context, int64, gptservice.Workout) (int64, error) {
	return m.id(), nil
}

func (m *memoryStore) InsertWorkoutExercise(context.Context, int64, int64, int) (int64, error) {
	return m.id(), nil
}

func (m *memoryStore) InsertSet(context.Context, int64, int, int) (int64, error) {
	return m.id(), nil
}

func (m *memoryStore) InsertDietPlan(context.Context, int64, string, string) (int64, error) {
	return m.id(), nil
}

func (m *memoryStore) InsertMeal(context.Context, int64, gptservice.Meal) (int64, error) {
	return m.id(), nil
}

const planJSON = `{
	"program": {"name": "Starter", "description": "First cycle"},
	"workouts": [{
		"name": "Full Body A",
		"description": "Machines only",
		"user_id": 42,
		"duration_minutes": 45,
		"difficulty": "beginner",
		"exercises": [{"exercise_id": 1, "sets": 3, "reps": 12, "rest_seconds": 60}]
	}]
}`

func setupHandlers(completer gptservice.Completer, store gptservice.Store) {
	Init(nil, gptservice.NewService(completer, store))
}

func doRequest(t *testing.T, handler echo.HandlerFunc, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID > 0 {
		c.Set("user_id", userID)
	}

	require.NoError(t, handler(c))
	return rec
}

func TestGenerateWorkoutPlanHandlerReturnsProposal(t *testing.T) {
	store := &memoryStore{catalog: map[int64]bool{1: true}}
	setupHandlers(&stubCompleter{response: planJSON}, store)

	rec := doRequest(t, GenerateWorkoutPlanHandler, `{"age": 30, "days_per_week": 1}`, 42)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "plan")
	// Generation never writes.
	assert.False(t, store.committed)
}

func TestGenerateWorkoutPlanHandlerRequiresAuth(t *testing.T) {
	setupHandlers(&stubCompleter{response: planJSON}, &memoryStore{})

	rec := doRequest(t, GenerateWorkoutPlanHandler, `{}`, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateWorkoutPlanHandlerMapsUpstreamGarbage(t *testing.T) {
	setupHandlers(&stubCompleter{response: "not json at all"}, &memoryStore{})

	rec := doRequest(t, GenerateWorkoutPlanHandler, `{"age": 30}`, 42)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAdjustWorkoutPlanHandlerRequiresPriorPlan(t *testing.T) {
	setupHandlers(&stubCompleter{response: planJSON}, &memoryStore{})

	rec := doRequest(t, AdjustWorkoutPlanHandler, `{"anamnese": {"age": 30}, "adjustments": "more legs"}`, 42)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmWorkoutPlanHandlerPersists(t *testing.T) {
	store := &memoryStore{catalog: map[int64]bool{1: true}}
	setupHandlers(&stubCompleter{}, store)

	rec := doRequest(t, ConfirmWorkoutPlanHandler, `{"plan": `+planJSON+`}`, 42)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, store.committed)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "program")
	assert.Contains(t, body, "workout_ids")
}

func TestConfirmWorkoutPlanHandlerRejectsInvalidPlan(t *testing.T) {
	store := &memoryStore{catalog: map[int64]bool{1: true}}
	setupHandlers(&stubCompleter{}, store)

	bad := strings.Replace(planJSON, `"duration_minutes": 45`, `"duration_minutes": 5`, 1)
	rec := doRequest(t, ConfirmWorkoutPlanHandler, `{"plan": `+bad+`}`, 42)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, store.committed)
}

func TestConfirmWorkoutPlanHandlerUnknownExercise(t *testing.T) {
	store := &memoryStore{catalog: map[int64]bool{}}
	setupHandlers(&stubCompleter{}, store)

	rec := doRequest(t, ConfirmWorkoutPlanHandler, `{"plan": `+planJSON+`}`, 42)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, store.committed)
}

func TestConfirmWorkoutPlanHandlerRefusesForeignOwner(t *testing.T) {
	store := &memoryStore{catalog: map[int64]bool{1: true}}
	setupHandlers(&stubCompleter{}, store)

	// Plan workouts claim user 99; the request is authenticated as user 42.
	foreign := strings.ReplaceAll(planJSON, `"user_id": 42`, `"user_id": 99`)
	rec := doRequest(t, ConfirmWorkoutPlanHandler, `{"plan": `+foreign+`}`, 42)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, store.committed)
}

func TestConfirmDietPlanHandlerRefusesForeignOwner(t *testing.T) {
	store := &memoryStore{}
	setupHandlers(&stubCompleter{}, store)

	diet := `{"plan": {
		"name": "Cut",
		"description": "Deficit",
		"user_id": 99,
		"meals": [{"meal_type": "lunch", "foods": "chicken and rice", "calories": 600}]
	}}`
	rec := doRequest(t, ConfirmDietPlanHandler, diet, 42)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, store.committed)
}

func TestConfirmDietPlanHandlerPersists(t *testing.T) {
	store := &memoryStore{}
	setupHandlers(&stubCompleter{}, store)

	diet := `{"plan": {
		"name": "Cut",
		"description": "Deficit",
		"user_id": 42,
		"meals": [{"meal_type": "lunch", "foods": "chicken and rice", "calories": 600}]
	}}`
	rec := doRequest(t, ConfirmDietPlanHandler, diet, 42)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, store.committed)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "diet_plan")
	assert.Contains(t, body, "meal_ids")
}

// failingDB is a database.DBTX whose every operation reports the same error,
// standing in for a missing row or an unreachable database.
type failingDB struct {
	err error
}

func (d failingDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, d.err
}

func (d failingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, d.err
}

func (d failingDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return failingRow{err: d.err}
}

type failingRow struct {
	err error
}

func (r failingRow) Scan(...any) error { return r.err }

func programDetailRequest(t *testing.T, db database.DBTX, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	Init(database.New(db), gptservice.NewService(&stubCompleter{}, &memoryStore{}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/programs/5/workouts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.SetParamNames("program_id")
	c.SetParamValues("5")

	require.NoError(t, ListProgramWorkoutsHandler(c))
	return rec
}

func TestListProgramWorkoutsHandlerMissingProgramIs404(t *testing.T) {
	rec := programDetailRequest(t, failingDB{err: pgx.ErrNoRows}, 42)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProgramWorkoutsHandlerStorageFailureIs500(t *testing.T) {
	rec := programDetailRequest(t, failingDB{err: errors.New("connection refused")}, 42)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
