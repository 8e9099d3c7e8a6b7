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

package model

import "time"

// Outcome values. failed means the pairing happened but produced no pregnancy;
// no_show means the pairing never happened.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeNoShow  = "no_show"
)

// MatchOutcome is the terminal attestation of what happened after a match was
// accepted. Exactly one outcome exists per match and it is immutable once recorded.
type MatchOutcome struct {
	ID               int64     `json:"-"`
	OutcomeID        string    `json:"outcome_id"`
	MatchID          string    `json:"match_id"`
	Outcome          string    `json:"outcome"`
	LitterSize       int       `json:"litter_size"`
	Notes            string    `json:"notes,omitempty"`
	VerifiedByUserID string    `json:"verified_by_user_id"`
	VerifiedByDogID  string    `json:"verified_by_dog_id"`
	VerifiedAt       time.Time `json:"verified_at"`
}

// IsValidOutcome reports whether outcome is one of the recognized values.
func IsValidOutcome(outcome string) bool {
	switch outcome {
	case OutcomeSuccess, OutcomeFailed, OutcomeNoShow:
		return true
	}
	return false
}

// CompletionStatusForOutcome maps a recorded outcome to the lifecycle status the
// match should be transitioned to after the outcome is stored.
func CompletionStatusForOutcome(outcome string) string {
	if outcome == OutcomeSuccess {
		return StatusCompletedSuccess
	}
	return StatusCompletedFailed
}
