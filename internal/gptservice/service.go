/*
Package gptservice implements the plan-generation pipeline: it compiles an
intake questionnaire into a prompt, calls the model provider, recovers and
decodes the JSON plan, validates it against the domain schema and, on an
explicit confirm, persists it transactionally.

Generation and persistence are deliberately split: the model's output is
nondeterministic and occasionally malformed, so committing a plan to storage
is a separate, user-approved step. Generate and Adjust return proposals that
live client-side; only Confirm touches the database.
*/
package gptservice

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Service orchestrates the pipeline. It holds no per-request state; every
// call runs to completion inside the caller's request context.
type Service struct {
	completer Completer
	store     Store
}

func NewService(completer Completer, store Store) *Service {
	return &Service{completer: completer, store: store}
}

// GenerateWorkout runs compile -> complete -> extract -> decode and returns
// the decoded plan as a proposal. Beyond JSON well-formedness the proposal is
// unvalidated; the persistence-time rules only run on Confirm.
func (s *Service) GenerateWorkout(ctx context.Context, a Anamnese) (map[string]any, error) {
	return s.propose(ctx, BuildWorkoutPrompt(a))
}

// AdjustWorkout regenerates a full plan from the prior proposal plus the
// user-requested change text. The state stays a proposal.
func (s *Service) AdjustWorkout(ctx context.Context, a Anamnese, priorPlan any, delta string) (map[string]any, error) {
	return s.propose(ctx, BuildAdjustPrompt(BuildWorkoutPrompt(a), priorPlan, delta))
}

// ConfirmWorkout validates the proposal against the domain schema and, when
// it holds, persists it atomically under ownerID. A proposal naming a
// different owner is refused before any write. On failure nothing is written
// and the caller may adjust and confirm again.
func (s *Service) ConfirmWorkout(ctx context.Context, proposal any, ownerID int64) (*WorkoutReceipt, error) {
	plan, err := ValidateWorkoutPlan(ctx, proposal, s.store)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, &ForbiddenOwnerError{Caller: ownerID, PlanOwner: plan.OwnerID}
	}

	receipt, err := persistWorkoutPlan(ctx, s.store, plan)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("program_id", receipt.ProgramID).
		Int64("user_id", plan.OwnerID).
		Int("workouts", len(receipt.WorkoutIDs)).
		Msg("Workout plan confirmed and persisted")
	return receipt, nil
}

// GenerateDiet is the diet-kind counterpart of GenerateWorkout.
func (s *Service) GenerateDiet(ctx context.Context, a DietAnamnese) (map[string]any, error) {
	return s.propose(ctx, BuildDietPrompt(a))
}

// AdjustDiet regenerates a diet proposal with the requested changes applied.
func (s *Service) AdjustDiet(ctx context.Context, a DietAnamnese, priorPlan any, delta string) (map[string]any, error) {
	return s.propose(ctx, BuildAdjustPrompt(BuildDietPrompt(a), priorPlan, delta))
}

// ConfirmDiet validates and persists a diet proposal under ownerID.
func (s *Service) ConfirmDiet(ctx context.Context, proposal any, ownerID int64) (*DietReceipt, error) {
	plan, err := ValidateDietPlan(proposal)
	if err != nil {
		return nil, err
	}
	if plan.UserID != ownerID {
		return nil, &ForbiddenOwnerError{Caller: ownerID, PlanOwner: plan.UserID}
	}

	receipt, err := persistDietPlan(ctx, s.store, plan)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("diet_plan_id", receipt.DietPlanID).
		Int64("user_id", plan.UserID).
		Int("meals", len(receipt.MealIDs)).
		Msg("Diet plan confirmed and persisted")
	return receipt, nil
}

func (s *Service) propose(ctx context.Context, prompt string) (map[string]any, error) {
	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var proposal map[string]any
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &proposal); err != nil {
		log.Warn().Err(err).Msg("Model output did not decode as JSON")
		return nil, &DecodeError{Err: err}
	}
	return proposal, nil
}
