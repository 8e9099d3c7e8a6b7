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

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/model"
	"github.com/lib/pq"
)

const matchRequestColumns = `match_id, contact_id, status, requester_user_id, requested_user_id,
		requester_dog_id, requested_dog_id, requester_notes, responder_notes, requested_at,
		accepted_at, declined_at, cancelled_at, awaiting_confirmation_at, completed_at, last_status_changed_at`

func scanMatchRequest(row interface{ Scan(dest ...interface{}) error }) (*model.MatchRequest, error) {
	request := model.MatchRequest{}
	var requesterNotes, responderNotes sql.NullString
	var acceptedAt, declinedAt, cancelledAt, awaitingAt, completedAt, lastChangedAt sql.NullTime

	err := row.Scan(&request.MatchID, &request.ContactID, &request.Status,
		&request.RequesterUserID, &request.RequestedUserID,
		&request.RequesterDogID, &request.RequestedDogID,
		&requesterNotes, &responderNotes, &request.RequestedAt,
		&acceptedAt, &declinedAt, &cancelledAt, &awaitingAt, &completedAt, &lastChangedAt)
	if err != nil {
		return nil, err
	}

	request.RequesterNotes = requesterNotes.String
	request.ResponderNotes = responderNotes.String
	if acceptedAt.Valid {
		request.AcceptedAt = &acceptedAt.Time
	}
	if declinedAt.Valid {
		request.DeclinedAt = &declinedAt.Time
	}
	if cancelledAt.Valid {
		request.CancelledAt = &cancelledAt.Time
	}
	if awaitingAt.Valid {
		request.AwaitingConfirmationAt = &awaitingAt.Time
	}
	if completedAt.Valid {
		request.CompletedAt = &completedAt.Time
	}
	if lastChangedAt.Valid {
		request.LastStatusChangedAt = &lastChangedAt.Time
	}
	return &request, nil
}

func (d Datasource) InsertMatchRequest(ctx context.Context, request model.MatchRequest) (model.MatchRequest, error) {
	request.MatchID = model.GenerateUUIDWithSuffix("mch")
	request.Status = model.StatusPending
	now := time.Now()
	request.RequestedAt = now
	request.LastStatusChangedAt = &now

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO match_requests (match_id, contact_id, status, requester_user_id, requested_user_id,
			requester_dog_id, requested_dog_id, requester_notes, responder_notes, requested_at, last_status_changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, request.MatchID, request.ContactID, request.Status, request.RequesterUserID, request.RequestedUserID,
		request.RequesterDogID, request.RequestedDogID, request.RequesterNotes, request.ResponderNotes,
		request.RequestedAt, request.LastStatusChangedAt)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrConflict, "Match request with this ID already exists", err)
			case "foreign_key_violation":
				return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrNotFound, "One of the referenced dogs does not exist", err)
			default:
				return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.MatchRequest{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create match request", err)
	}

	return request, nil
}

func (d Datasource) GetMatchRequestByID(ctx context.Context, id string) (*model.MatchRequest, error) {
	row := d.Conn.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM match_requests
		WHERE match_id = $1
	`, matchRequestColumns), id)

	request, err := scanMatchRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Match request not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve match request", err)
	}
	return request, nil
}

// AcceptMatchRequest moves a pending request straight to awaiting_confirmation,
// stamping accepted_at and awaiting_confirmation_at with the same instant. The
// status predicate in the WHERE clause makes the update a compare-and-set: of two
// concurrent writers exactly one wins and the loser sees an invalid transition.
func (d Datasource) AcceptMatchRequest(ctx context.Context, id string, ts time.Time) (*model.MatchRequest, error) {
	row := d.Conn.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE match_requests
		SET status = $1, accepted_at = $2, awaiting_confirmation_at = $2, last_status_changed_at = $2
		WHERE match_id = $3 AND status = $4
		RETURNING %s
	`, matchRequestColumns), model.StatusAwaitingConfirmation, ts, id, model.StatusPending)

	request, err := scanMatchRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, d.staleMatchRequestError(ctx, id, model.StatusAwaitingConfirmation)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to accept match request", err)
	}
	return request, nil
}

// UpdateMatchRequestStatus performs the generic compare-and-set status transition.
// The timestamp column paired with the new status is stamped alongside
// last_status_changed_at; the legal predecessor statuses are part of the WHERE
// clause so a stale writer updates zero rows.
func (d Datasource) UpdateMatchRequestStatus(ctx context.Context, id string, newStatus string, ts time.Time) (*model.MatchRequest, error) {
	var stampColumn string
	switch newStatus {
	case model.StatusAccepted:
		stampColumn = "accepted_at"
	case model.StatusDeclined:
		stampColumn = "declined_at"
	case model.StatusCancelled:
		stampColumn = "cancelled_at"
	case model.StatusAwaitingConfirmation:
		stampColumn = "awaiting_confirmation_at"
	case model.StatusCompletedSuccess, model.StatusCompletedFailed:
		stampColumn = "completed_at"
	default:
		return nil, apierror.NewAPIError(apierror.ErrUnsupportedStatus, fmt.Sprintf("Unsupported status %q", newStatus), nil)
	}

	row := d.Conn.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE match_requests
		SET status = $1, %s = $2, last_status_changed_at = $2
		WHERE match_id = $3 AND status = ANY($4)
		RETURNING %s
	`, stampColumn, matchRequestColumns), newStatus, ts, id, pq.Array(model.StatusPredecessors[newStatus]))

	request, err := scanMatchRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, d.staleMatchRequestError(ctx, id, newStatus)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update match request status", err)
	}
	return request, nil
}

// staleMatchRequestError disambiguates a zero-row compare-and-set update: the
// request either does not exist or is in a status that does not permit the
// transition.
func (d Datasource) staleMatchRequestError(ctx context.Context, id string, newStatus string) error {
	current, err := d.GetMatchRequestByID(ctx, id)
	if err != nil {
		return err
	}
	return apierror.NewAPIError(apierror.ErrInvalidTransition,
		fmt.Sprintf("Match request in status %q cannot transition to %q", current.Status, newStatus), current)
}

func (d Datasource) ListActiveMatchRequestsForContact(ctx context.Context, contactID string) ([]model.MatchRequest, error) {
	rows, err := d.Conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM match_requests
		WHERE contact_id = $1 AND status = ANY($2)
		ORDER BY requested_at DESC
	`, matchRequestColumns), contactID, pq.Array(model.ActiveStatuses))
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve active match requests", err)
	}
	defer rows.Close()

	return collectMatchRequests(rows)
}

func (d Datasource) ListMatchRequestsForUser(ctx context.Context, userID string) ([]model.MatchRequest, error) {
	rows, err := d.Conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM match_requests
		WHERE requester_user_id = $1 OR requested_user_id = $1
		ORDER BY requested_at DESC
	`, matchRequestColumns), userID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve match requests", err)
	}
	defer rows.Close()

	return collectMatchRequests(rows)
}

func collectMatchRequests(rows *sql.Rows) ([]model.MatchRequest, error) {
	requests := []model.MatchRequest{}

	for rows.Next() {
		request, err := scanMatchRequest(rows)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan match request data", err)
		}
		requests = append(requests, *request)
	}

	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over match requests", err)
	}

	return requests, nil
}
