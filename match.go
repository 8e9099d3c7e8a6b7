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
	"fmt"
	"time"

	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/internal/notification"
	"github.com/sireline/sireline/model"
)

// CreateMatchRequest opens a new negotiation between two dog owners. At most one
// active request may exist per contact; a second attempt fails with a conflict
// carrying the existing request. When the requested user is not supplied it is
// resolved from the requested dog's owner.
func (s *Sireline) CreateMatchRequest(ctx context.Context, request model.MatchRequest) (model.MatchRequest, error) {
	if request.RequesterDogID == "" || request.RequestedDogID == "" {
		return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Both dogs are required for a match request", nil)
	}
	if request.RequesterDogID == request.RequestedDogID {
		return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrInvalidInput, "A dog cannot be matched with itself", nil)
	}
	if request.RequesterUserID == "" {
		return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Requester user is required", nil)
	}
	if request.ContactID == "" {
		return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrInvalidInput, "Contact is required", nil)
	}

	active, err := s.datasource.ListActiveMatchRequestsForContact(ctx, request.ContactID)
	if err != nil {
		return model.MatchRequest{}, err
	}
	if len(active) > 0 {
		return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrConflict, "An active match request already exists for this contact", active[0])
	}

	if request.RequestedUserID == "" {
		dog, err := s.datasource.GetDogByID(ctx, request.RequestedDogID)
		if err != nil {
			return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrResolution, "Could not resolve the requested dog's owner", err)
		}
		if dog.OwnerUserID == "" {
			return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrResolution, "The requested dog has no owner", nil)
		}
		request.RequestedUserID = dog.OwnerUserID
	}

	created, err := s.datasource.InsertMatchRequest(ctx, request)
	if err != nil {
		return model.MatchRequest{}, err
	}

	notification.NotifyEvent("match.request.created", created)
	return created, nil
}

// AcceptMatchRequest accepts a pending request. Acceptance and readiness for an
// outcome are collapsed into one transition: the request lands in
// awaiting_confirmation with accepted_at and awaiting_confirmation_at stamped to
// the same instant.
func (s *Sireline) AcceptMatchRequest(ctx context.Context, matchID string) (*model.MatchRequest, error) {
	if matchID == "" {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Match ID is required", nil)
	}

	updated, err := s.datasource.AcceptMatchRequest(ctx, matchID, time.Now())
	if err != nil {
		return nil, err
	}

	notification.NotifyEvent("match.request.accepted", updated)
	return updated, nil
}

// TransitionMatchStatus performs the generic lifecycle transition used for
// declined, cancelled, awaiting_confirmation and both completed statuses. The
// timestamp paired with the new status is stamped by the datasource.
func (s *Sireline) TransitionMatchStatus(ctx context.Context, matchID string, newStatus string) (*model.MatchRequest, error) {
	if matchID == "" {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Match ID is required", nil)
	}
	if !model.IsTransitionTarget(newStatus) {
		return nil, apierror.NewAPIError(apierror.ErrUnsupportedStatus, fmt.Sprintf("Unsupported status %q", newStatus), nil)
	}

	updated, err := s.datasource.UpdateMatchRequestStatus(ctx, matchID, newStatus, time.Now())
	if err != nil {
		return nil, err
	}

	notification.NotifyEvent("match.request.status_changed", updated)
	return updated, nil
}

// GetMatchRequest retrieves a match request from the database by ID.
func (s *Sireline) GetMatchRequest(ctx context.Context, matchID string) (*model.MatchRequest, error) {
	return s.datasource.GetMatchRequestByID(ctx, matchID)
}

// ListMatchRequestsForUser returns all requests where the user is either
// participant, newest first. An empty user yields an empty list rather than an
// error.
func (s *Sireline) ListMatchRequestsForUser(ctx context.Context, userID string) ([]model.MatchRequest, error) {
	if userID == "" {
		return []model.MatchRequest{}, nil
	}
	return s.datasource.ListMatchRequestsForUser(ctx, userID)
}

// GetMatchRequestView retrieves a request and derives the viewer-dependent
// projection for it. The gender of the viewer's dog feeds the role flag that
// gates outcome options in clients.
func (s *Sireline) GetMatchRequestView(ctx context.Context, matchID string, viewingUserID string) (*model.MatchView, error) {
	request, err := s.datasource.GetMatchRequestByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	myDogGender := model.GenderUnknown
	if myDogID := request.DogFor(viewingUserID); myDogID != "" {
		dog, err := s.datasource.GetDogByID(ctx, myDogID)
		if err != nil {
			return nil, err
		}
		myDogGender = dog.Gender
	}

	view := model.DeriveMatchView(*request, viewingUserID, myDogGender)
	return &view, nil
}
