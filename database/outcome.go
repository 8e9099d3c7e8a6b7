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
	"time"

	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/model"
	"github.com/lib/pq"
)

// InsertMatchOutcome records the outcome for a match. The UNIQUE constraint on
// match_id guarantees at most one outcome per match; a second insert surfaces as
// a conflict.
func (d Datasource) InsertMatchOutcome(ctx context.Context, outcome model.MatchOutcome) (model.MatchOutcome, error) {
	outcome.OutcomeID = model.GenerateUUIDWithSuffix("out")
	outcome.VerifiedAt = time.Now()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO match_outcomes (outcome_id, match_id, outcome, litter_size, notes, verified_by_user_id, verified_by_dog_id, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, outcome.OutcomeID, outcome.MatchID, outcome.Outcome, outcome.LitterSize, outcome.Notes,
		outcome.VerifiedByUserID, outcome.VerifiedByDogID, outcome.VerifiedAt)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrConflict, "An outcome has already been recorded for this match", err)
			case "foreign_key_violation":
				return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrNotFound, "Match request not found", err)
			default:
				return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.MatchOutcome{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record match outcome", err)
	}

	return outcome, nil
}

func (d Datasource) GetOutcomeByMatchID(ctx context.Context, matchID string) (*model.MatchOutcome, error) {
	outcome := model.MatchOutcome{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT outcome_id, match_id, outcome, litter_size, notes, verified_by_user_id, verified_by_dog_id, verified_at
		FROM match_outcomes
		WHERE match_id = $1
	`, matchID)

	var notes sql.NullString
	err := row.Scan(&outcome.OutcomeID, &outcome.MatchID, &outcome.Outcome, &outcome.LitterSize,
		&notes, &outcome.VerifiedByUserID, &outcome.VerifiedByDogID, &outcome.VerifiedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "No outcome recorded for this match", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve match outcome", err)
	}
	outcome.Notes = notes.String

	return &outcome, nil
}
