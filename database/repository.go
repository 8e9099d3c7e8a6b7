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
	"time"

	"github.com/sireline/sireline/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	match   // Interface for match-request operations
	dog     // Interface for dog operations
	outcome // Interface for match-outcome operations
}

// match defines methods for handling match requests.
type match interface {
	InsertMatchRequest(ctx context.Context, request model.MatchRequest) (model.MatchRequest, error)                        // Persists a new request in pending status
	GetMatchRequestByID(ctx context.Context, id string) (*model.MatchRequest, error)                                       // Retrieves a match request by ID
	AcceptMatchRequest(ctx context.Context, id string, ts time.Time) (*model.MatchRequest, error)                          // Moves a pending request to awaiting_confirmation
	UpdateMatchRequestStatus(ctx context.Context, id string, newStatus string, ts time.Time) (*model.MatchRequest, error)  // Compare-and-set status transition
	ListActiveMatchRequestsForContact(ctx context.Context, contactID string) ([]model.MatchRequest, error)                 // Retrieves non-terminal requests for a contact
	ListMatchRequestsForUser(ctx context.Context, userID string) ([]model.MatchRequest, error)                             // Retrieves requests where the user is a participant
}

// dog defines methods for handling dogs.
type dog interface {
	CreateDog(ctx context.Context, d model.Dog) (model.Dog, error)  // Creates a new dog
	GetDogByID(ctx context.Context, id string) (*model.Dog, error)  // Retrieves a dog by ID
}

// outcome defines methods for handling match outcomes.
type outcome interface {
	InsertMatchOutcome(ctx context.Context, o model.MatchOutcome) (model.MatchOutcome, error) // Records an outcome, at most one per match
	GetOutcomeByMatchID(ctx context.Context, matchID string) (*model.MatchOutcome, error)     // Retrieves the outcome recorded for a match
}
