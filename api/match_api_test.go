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
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gin-gonic/gin"
	"github.com/sireline/sireline"
	"github.com/sireline/sireline/api/middleware"
	"github.com/sireline/sireline/config"
	"github.com/sireline/sireline/database"
	"github.com/sireline/sireline/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var matchRequestColumns = []string{
	"match_id", "contact_id", "status", "requester_user_id", "requested_user_id",
	"requester_dog_id", "requested_dog_id", "requester_notes", "responder_notes", "requested_at",
	"accepted_at", "declined_at", "cancelled_at", "awaiting_confirmation_at", "completed_at", "last_status_changed_at",
}

var dogColumns = []string{"dog_id", "owner_user_id", "name", "breed", "gender", "created_at", "meta_data"}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	config.MockConfig(&config.Configuration{Server: config.ServerConfig{Secure: false}})

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	service := sireline.NewSireline(database.Datasource{Conn: db})
	router := NewAPI(service).Router()
	return router, mock
}

func performRequest(router *gin.Engine, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(middleware.DevUserHeader, user)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateMatchRequestEndpoint(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE contact_id =").
		WillReturnRows(sqlmock.NewRows(matchRequestColumns))
	mock.ExpectQuery("SELECT (.+) FROM dogs WHERE dog_id =").
		WillReturnRows(sqlmock.NewRows(dogColumns).
			AddRow("dog_b", "usr_b", "Luna", "Border Collie", model.GenderFemale, time.Now(), []byte(`{}`)))
	mock.ExpectExec("INSERT INTO match_requests").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := performRequest(router, http.MethodPost, "/matches", "usr_a", map[string]interface{}{
		"contact_id":       "cnt_1",
		"requester_dog_id": "dog_a",
		"requested_dog_id": "dog_b",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.MatchRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Contains(t, created.MatchID, "mch_")
	assert.Equal(t, model.StatusPending, created.Status)
	assert.Equal(t, "usr_a", created.RequesterUserID)
	assert.Equal(t, "usr_b", created.RequestedUserID)
}

func TestCreateMatchRequestEndpoint_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodPost, "/matches", "", map[string]interface{}{
		"contact_id":       "cnt_1",
		"requester_dog_id": "dog_a",
		"requested_dog_id": "dog_b",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateMatchRequestEndpoint_SameDog(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodPost, "/matches", "usr_a", map[string]interface{}{
		"contact_id":       "cnt_1",
		"requester_dog_id": "dog_a",
		"requested_dog_id": "dog_a",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAcceptMatchRequestEndpoint(t *testing.T) {
	router, mock := newTestRouter(t)

	ts := time.Now()
	mock.ExpectQuery("UPDATE match_requests").
		WillReturnRows(sqlmock.NewRows(matchRequestColumns).
			AddRow("mch_1", "cnt_1", model.StatusAwaitingConfirmation, "usr_a", "usr_b", "dog_a", "dog_b",
				nil, nil, ts.Add(-time.Hour), ts, nil, nil, ts, nil, ts))

	w := performRequest(router, http.MethodPost, "/matches/mch_1/accept", "usr_b", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.MatchRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusAwaitingConfirmation, updated.Status)
	assert.NotNil(t, updated.AcceptedAt)
	assert.NotNil(t, updated.AwaitingConfirmationAt)
}

func TestUpdateMatchStatusEndpoint_RejectsUnknownStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodPut, "/matches/mch_1/status", "usr_a", map[string]interface{}{
		"status": "approved",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOutcomeEndpoint(t *testing.T) {
	router, mock := newTestRouter(t)

	ts := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM dogs WHERE dog_id =").
		WillReturnRows(sqlmock.NewRows(dogColumns).
			AddRow("dog_b", "usr_b", "Luna", "Border Collie", model.GenderFemale, ts, []byte(`{}`)))
	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WillReturnRows(sqlmock.NewRows(matchRequestColumns).
			AddRow("mch_1", "cnt_1", model.StatusAwaitingConfirmation, "usr_a", "usr_b", "dog_a", "dog_b",
				nil, nil, ts.Add(-time.Hour), ts, nil, nil, ts, nil, ts))
	mock.ExpectExec("INSERT INTO match_outcomes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("UPDATE match_requests").
		WillReturnRows(sqlmock.NewRows(matchRequestColumns).
			AddRow("mch_1", "cnt_1", model.StatusCompletedSuccess, "usr_a", "usr_b", "dog_a", "dog_b",
				nil, nil, ts.Add(-time.Hour), ts, nil, nil, ts, ts, ts))

	w := performRequest(router, http.MethodPost, "/matches/mch_1/outcome", "usr_b", map[string]interface{}{
		"outcome":          model.OutcomeSuccess,
		"verifying_dog_id": "dog_b",
		"litter_size":      "4",
		"notes":            "six healthy pups",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Outcome model.MatchOutcome `json:"outcome"`
		Match   model.MatchRequest `json:"match"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Outcome.LitterSize)
	assert.Equal(t, model.StatusCompletedSuccess, resp.Match.Status)
}

func TestSubmitOutcomeEndpoint_MaleDogForbidden(t *testing.T) {
	router, mock := newTestRouter(t)

	ts := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM dogs WHERE dog_id =").
		WillReturnRows(sqlmock.NewRows(dogColumns).
			AddRow("dog_a", "usr_a", "Rex", "Border Collie", model.GenderMale, ts, []byte(`{}`)))
	mock.ExpectQuery("SELECT (.+) FROM match_requests WHERE match_id =").
		WillReturnRows(sqlmock.NewRows(matchRequestColumns).
			AddRow("mch_1", "cnt_1", model.StatusAwaitingConfirmation, "usr_a", "usr_b", "dog_a", "dog_b",
				nil, nil, ts.Add(-time.Hour), ts, nil, nil, ts, nil, ts))

	w := performRequest(router, http.MethodPost, "/matches/mch_1/outcome", "usr_a", map[string]interface{}{
		"outcome":          model.OutcomeSuccess,
		"verifying_dog_id": "dog_a",
		"litter_size":      "4",
		"notes":            "notes",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateDogEndpoint(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectExec("INSERT INTO dogs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := performRequest(router, http.MethodPost, "/dogs", "usr_a", map[string]interface{}{
		"name":   "Luna",
		"breed":  "Border Collie",
		"gender": model.GenderFemale,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Dog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Contains(t, created.DogID, "dog_")
	assert.Equal(t, "usr_a", created.OwnerUserID)
}
