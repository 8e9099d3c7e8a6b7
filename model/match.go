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

// Match request statuses. A request moves pending -> accepted -> awaiting_confirmation
// and ends in one of the terminal statuses. Accepting a request collapses the accepted
// and awaiting_confirmation steps into a single transition.
const (
	StatusPending              = "pending"
	StatusAccepted             = "accepted"
	StatusDeclined             = "declined"
	StatusCancelled            = "cancelled"
	StatusAwaitingConfirmation = "awaiting_confirmation"
	StatusCompletedSuccess     = "completed_success"
	StatusCompletedFailed      = "completed_failed"
)

// MatchRequest is the negotiation entity between two dog owners proposing a pairing.
type MatchRequest struct {
	ID                     int64      `json:"-"`
	MatchID                string     `json:"match_id"`
	ContactID              string     `json:"contact_id"`
	Status                 string     `json:"status"`
	RequesterUserID        string     `json:"requester_user_id"`
	RequestedUserID        string     `json:"requested_user_id"`
	RequesterDogID         string     `json:"requester_dog_id"`
	RequestedDogID         string     `json:"requested_dog_id"`
	RequesterNotes         string     `json:"requester_notes,omitempty"`
	ResponderNotes         string     `json:"responder_notes,omitempty"`
	RequestedAt            time.Time  `json:"requested_at"`
	AcceptedAt             *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt             *time.Time `json:"declined_at,omitempty"`
	CancelledAt            *time.Time `json:"cancelled_at,omitempty"`
	AwaitingConfirmationAt *time.Time `json:"awaiting_confirmation_at,omitempty"`
	CompletedAt            *time.Time `json:"completed_at,omitempty"`
	LastStatusChangedAt    *time.Time `json:"last_status_changed_at,omitempty"`
}

// ActiveStatuses are the statuses of a request that is still being negotiated.
// At most one request in an active status may exist per contact.
var ActiveStatuses = []string{StatusPending, StatusAccepted, StatusAwaitingConfirmation}

// StatusPredecessors lists the statuses a request must currently hold for a
// transition into the keyed status to be legal. A pending request reaches
// awaiting_confirmation only through the accept operation, which carries its
// own status predicate, so pending is not a predecessor here.
var StatusPredecessors = map[string][]string{
	StatusAccepted:             {StatusPending},
	StatusDeclined:             {StatusPending},
	StatusCancelled:            {StatusPending, StatusAccepted, StatusAwaitingConfirmation},
	StatusAwaitingConfirmation: {StatusAccepted},
	StatusCompletedSuccess:     {StatusAwaitingConfirmation},
	StatusCompletedFailed:      {StatusAwaitingConfirmation},
}

// IsActiveStatus reports whether status marks a request as still under negotiation.
func IsActiveStatus(status string) bool {
	for _, s := range ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a request in this status can no longer change.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusDeclined, StatusCancelled, StatusCompletedSuccess, StatusCompletedFailed:
		return true
	}
	return false
}

// IsTransitionTarget reports whether status is a recognized target for the generic
// status transition. Pending is only ever set at creation and accepted is only
// reached through the accept operation, so neither is a valid target here.
func IsTransitionTarget(status string) bool {
	switch status {
	case StatusDeclined, StatusCancelled, StatusAwaitingConfirmation, StatusCompletedSuccess, StatusCompletedFailed:
		return true
	}
	return false
}

// CanTransition reports whether a request currently in from may move to target.
func CanTransition(from, target string) bool {
	for _, s := range StatusPredecessors[target] {
		if s == from {
			return true
		}
	}
	return false
}

// DogFor returns the dog on the given user's side of the request, or an empty
// string when the user is not a participant.
func (m *MatchRequest) DogFor(userID string) string {
	switch userID {
	case m.RequesterUserID:
		return m.RequesterDogID
	case m.RequestedUserID:
		return m.RequestedDogID
	}
	return ""
}

// MatchView is the per-viewer projection of a match request. All of its flags are
// derived from the stored request plus the viewer's identity; nothing here is stored.
type MatchView struct {
	MatchRequest
	MyDogID          string `json:"my_dog_id"`
	PartnerDogID     string `json:"partner_dog_id"`
	IsRequester      bool   `json:"is_requester"`
	ExpectsOutcome   bool   `json:"expects_outcome"`
	MyDogIsMale      bool   `json:"my_dog_is_male"`
	RequiresResponse bool   `json:"requires_response"`
	CanCancel        bool   `json:"can_cancel"`
	IsHistorical     bool   `json:"is_historical"`
}

// DeriveMatchView computes the viewer-dependent projection of a request. It is a
// pure function: it never mutates the request and identical inputs always yield
// identical output. myDogGender is the gender of the viewer's dog on this request
// and may be empty when the viewer is not a participant.
func DeriveMatchView(request MatchRequest, viewingUserID, myDogGender string) MatchView {
	isRequester := request.RequesterUserID == viewingUserID
	myDog := request.DogFor(viewingUserID)
	partnerDog := request.RequestedDogID
	if !isRequester {
		partnerDog = request.RequesterDogID
	}

	return MatchView{
		MatchRequest:     request,
		MyDogID:          myDog,
		PartnerDogID:     partnerDog,
		IsRequester:      isRequester,
		ExpectsOutcome:   request.Status == StatusAwaitingConfirmation,
		MyDogIsMale:      myDogGender == GenderMale,
		RequiresResponse: request.Status == StatusPending && !isRequester,
		CanCancel:        isRequester && IsActiveStatus(request.Status),
		IsHistorical:     IsTerminalStatus(request.Status),
	}
}
