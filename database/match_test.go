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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var matchRequestTestColumns = []string{
	"match_id", "contact_id", "status", "requester_user_id", "requested_user_id",
	"requester_dog_id", "requested_dog_id", "requester_notes", "responder_notes", "requested_at",
	"accepted_at", "declined_at", "cancelled_at", "awaiting_confirmation_at", "completed_at", "last_status_changed_at",
}

func matchRequestRow(status string, ts time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(matchRequestTestColumns).
		AddRow("mch_1", "cnt_1", status, "usr_a", "usr_b", "dog_a", "dog_b", "please", nil,
			ts, nil, nil, nil, nil, nil, ts)
}

func TestInsertMatchRequest_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	request := model.MatchRequest{
		ContactID:       "cnt_1",
		RequesterUserID: "usr_a",
		RequestedUserID: "usr_b",
		RequesterDogID:  "dog_a",
		RequestedDogID:  "dog_b",
	}

	mock.ExpectExec("INSERT INTO match_requests").
		WithArgs(sqlmock.AnyArg(), request.ContactID, model.StatusPending, request.RequesterUserID,
			request.RequestedUserID, request.RequesterDogID, request.RequestedDogID, "", "",
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := ds.InsertMatchRequest(context.Background(), request)
	assert.NoError(t, err)
	assert.Contains(t, created.MatchID, "mch_")
	assert.Equal(t, model.StatusPending, created.Status)
	assert.WithinDuration(t, time.Now(), created.RequestedAt, time.Second)
	assert.NotNil(t, created.LastStatusChangedAt)
}

func TestInsertMatchRequest_UnknownDog(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectExec("INSERT INTO match_requests").
		WillReturnError(&pq.Error{Code: "23503", Message: "foreign_key_violation"})

	_, err = ds.InsertMatchRequest(context.Background(), model.MatchRequest{
		ContactID: "cnt_1", RequesterUserID: "usr_a", RequestedUserID: "usr_b",
		RequesterDogID: "dog_a", RequestedDogID: "dog_missing",
	})
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}

func TestGetMatchRequestByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WithArgs("mch_1").
		WillReturnRows(matchRequestRow(model.StatusPending, time.Now()))

	request, err := ds.GetMatchRequestByID(context.Background(), "mch_1")
	assert.NoError(t, err)
	assert.Equal(t, "mch_1", request.MatchID)
	assert.Equal(t, model.StatusPending, request.Status)
	assert.Equal(t, "please", request.RequesterNotes)
	assert.Empty(t, request.ResponderNotes)
	assert.Nil(t, request.AcceptedAt)
}

func TestGetMatchRequestByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WithArgs("mch_missing").
		WillReturnError(sql.ErrNoRows)

	_, err = ds.GetMatchRequestByID(context.Background(), "mch_missing")
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}

func TestAcceptMatchRequest_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	ts := time.Now()
	rows := sqlmock.NewRows(matchRequestTestColumns).
		AddRow("mch_1", "cnt_1", model.StatusAwaitingConfirmation, "usr_a", "usr_b", "dog_a", "dog_b",
			nil, nil, ts.Add(-time.Hour), ts, nil, nil, ts, nil, ts)

	mock.ExpectQuery("UPDATE match_requests").
		WithArgs(model.StatusAwaitingConfirmation, sqlmock.AnyArg(), "mch_1", model.StatusPending).
		WillReturnRows(rows)

	request, err := ds.AcceptMatchRequest(context.Background(), "mch_1", ts)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusAwaitingConfirmation, request.Status)
	assert.NotNil(t, request.AcceptedAt)
	assert.NotNil(t, request.AwaitingConfirmationAt)
	assert.Equal(t, *request.AcceptedAt, *request.AwaitingConfirmationAt)
}

func TestAcceptMatchRequest_AlreadyAccepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("UPDATE match_requests").
		WithArgs(model.StatusAwaitingConfirmation, sqlmock.AnyArg(), "mch_1", model.StatusPending).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WithArgs("mch_1").
		WillReturnRows(matchRequestRow(model.StatusAwaitingConfirmation, time.Now()))

	_, err = ds.AcceptMatchRequest(context.Background(), "mch_1", time.Now())
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrInvalidTransition))
}

func TestAcceptMatchRequest_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("UPDATE match_requests").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WithArgs("mch_missing").
		WillReturnError(sql.ErrNoRows)

	_, err = ds.AcceptMatchRequest(context.Background(), "mch_missing", time.Now())
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrNotFound))
}

func TestUpdateMatchRequestStatus_Cancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	ts := time.Now()
	rows := sqlmock.NewRows(matchRequestTestColumns).
		AddRow("mch_1", "cnt_1", model.StatusCancelled, "usr_a", "usr_b", "dog_a", "dog_b",
			nil, nil, ts.Add(-time.Hour), nil, nil, ts, nil, nil, ts)

	mock.ExpectQuery("UPDATE match_requests SET status = (.+) cancelled_at = (.+)").
		WithArgs(model.StatusCancelled, sqlmock.AnyArg(), "mch_1", sqlmock.AnyArg()).
		WillReturnRows(rows)

	request, err := ds.UpdateMatchRequestStatus(context.Background(), "mch_1", model.StatusCancelled, ts)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, request.Status)
	assert.NotNil(t, request.CancelledAt)
}

func TestUpdateMatchRequestStatus_Stale(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("UPDATE match_requests").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WithArgs("mch_1").
		WillReturnRows(matchRequestRow(model.StatusCancelled, time.Now()))

	_, err = ds.UpdateMatchRequestStatus(context.Background(), "mch_1", model.StatusCompletedSuccess, time.Now())
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrInvalidTransition))
}

func TestUpdateMatchRequestStatus_AwaitingRequiresAccepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("UPDATE match_requests").
		WithArgs(model.StatusAwaitingConfirmation, sqlmock.AnyArg(), "mch_1", pq.Array([]string{model.StatusAccepted})).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WithArgs("mch_1").
		WillReturnRows(matchRequestRow(model.StatusPending, time.Now()))

	_, err = ds.UpdateMatchRequestStatus(context.Background(), "mch_1", model.StatusAwaitingConfirmation, time.Now())
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrInvalidTransition))
}

func TestUpdateMatchRequestStatus_Unsupported(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	_, err = ds.UpdateMatchRequestStatus(context.Background(), "mch_1", "approved", time.Now())
	assert.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.ErrUnsupportedStatus))
}

func TestListActiveMatchRequestsForContact(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE contact_id =").
		WithArgs("cnt_1", sqlmock.AnyArg()).
		WillReturnRows(matchRequestRow(model.StatusPending, time.Now()))

	requests, err := ds.ListActiveMatchRequestsForContact(context.Background(), "cnt_1")
	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, model.StatusPending, requests[0].Status)
}

func TestListMatchRequestsForUser_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ds := Datasource{Conn: db}

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE requester_user_id =").
		WithArgs("usr_lonely").
		WillReturnRows(sqlmock.NewRows(matchRequestTestColumns))

	requests, err := ds.ListMatchRequestsForUser(context.Background(), "usr_lonely")
	assert.NoError(t, err)
	assert.Len(t, requests, 0)
}
