/*
Copyright 2025 Sireline Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package sireline

import (
	"context"
	"strconv"
	"strings"

	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/internal/notification"
	"github.com/sireline/sireline/model"
)

// SubmitOutcome validates and records the outcome of a match. Preconditions are
// checked in a fixed order and each violation fails with its own error code.
// The role gate restricts the male side's owner to reporting no_show only; the
// female side's owner may report any outcome.
//
// SubmitOutcome does not complete the match lifecycle itself: after a successful
// submission the caller transitions the request using
// model.CompletionStatusForOutcome.
func (s *Sireline) SubmitOutcome(ctx context.Context, matchID, outcome, verifyingDogID, litterSizeInput, notesInput, actingUserID string) (model.MatchOutcome, error) {
	if matchID == "" || verifyingDogID == "" {
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Match and verifying dog are required", nil)
	}

	if !model.IsValidOutcome(outcome) {
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrInvalidOutcome, "Outcome must be one of success, failed or no_show", nil)
	}

	if actingUserID == "" {
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrUnauthenticated, "You must be signed in to report an outcome", nil)
	}

	dog, err := s.datasource.GetDogByID(ctx, verifyingDogID)
	if err != nil {
		if apierror.IsCode(err, apierror.ErrNotFound) {
			return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrNotOwner, "You do not own the verifying dog", err)
		}
		return model.MatchOutcome{}, err
	}
	if dog.OwnerUserID != actingUserID {
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrNotOwner, "You do not own the verifying dog", nil)
	}

	match, err := s.datasource.GetMatchRequestByID(ctx, matchID)
	if err != nil {
		return model.MatchOutcome{}, err
	}
	if verifyingDogID != match.RequesterDogID && verifyingDogID != match.RequestedDogID {
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrNotParticipant, "The verifying dog is not part of this match", nil)
	}

	// Role gate: the male side's owner can only attest that the pairing never
	// happened; pregnancy success or failure is attested by the female side.
	if dog.Gender == model.GenderMale && outcome != model.OutcomeNoShow {
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrForbiddenOutcome, "Only a no-show can be reported for this dog", nil)
	}

	litterSize, notes, err := normalizeOutcomeFields(outcome, litterSizeInput, notesInput)
	if err != nil {
		return model.MatchOutcome{}, err
	}

	recorded, err := s.datasource.InsertMatchOutcome(ctx, model.MatchOutcome{
		MatchID:          matchID,
		Outcome:          outcome,
		LitterSize:       litterSize,
		Notes:            notes,
		VerifiedByUserID: actingUserID,
		VerifiedByDogID:  verifyingDogID,
	})
	if err != nil {
		return model.MatchOutcome{}, err
	}

	notification.NotifyEvent("match.outcome.recorded", recorded)
	return recorded, nil
}

// GetOutcome retrieves the outcome recorded for a match.
func (s *Sireline) GetOutcome(ctx context.Context, matchID string) (*model.MatchOutcome, error) {
	return s.datasource.GetOutcomeByMatchID(ctx, matchID)
}

// normalizeOutcomeFields applies the outcome-specific rules for litter size and
// notes. A success must carry a whole litter size of at least one and non-empty
// notes; fractional input is rejected rather than truncated;
// failed and no_show always store a litter size of zero regardless of input, and
// no_show also requires notes.
func normalizeOutcomeFields(outcome, litterSizeInput, notesInput string) (int, string, error) {
	notes := strings.TrimSpace(notesInput)

	var litterSize int
	switch outcome {
	case model.OutcomeSuccess:
		parsed, err := strconv.Atoi(strings.TrimSpace(litterSizeInput))
		if err != nil || parsed < 1 {
			return 0, "", apierror.NewAPIError(apierror.ErrInvalidLitterSize, "Litter size must be a whole number of at least 1 for a successful outcome", nil)
		}
		litterSize = parsed
		if notes == "" {
			return 0, "", apierror.NewAPIError(apierror.ErrNotesRequired, "Notes are required for a successful outcome", nil)
		}
	case model.OutcomeNoShow:
		litterSize = 0
		if notes == "" {
			return 0, "", apierror.NewAPIError(apierror.ErrNotesRequired, "Notes are required for a no-show outcome", nil)
		}
	case model.OutcomeFailed:
		litterSize = 0
	}

	return litterSize, notes, nil
}
