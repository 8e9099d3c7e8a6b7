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

import (
	"errors"

	"github.com/sireline/sireline/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func distinctDogsValidation(r *CreateMatchRequest) validation.RuleFunc {
	return func(value interface{}) error {
		if r.RequesterDogID != "" && r.RequesterDogID == r.RequestedDogID {
			return errors.New("requester and requested dogs must be distinct")
		}
		return nil
	}
}

func (r *CreateMatchRequest) ValidateCreateMatchRequest() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ContactID, validation.Required),
		validation.Field(&r.RequesterDogID, validation.Required),
		validation.Field(&r.RequestedDogID, validation.Required, validation.By(distinctDogsValidation(r))),
	)
}

func (u *UpdateMatchStatus) ValidateUpdateMatchStatus() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Status, validation.Required,
			validation.In(model.StatusDeclined, model.StatusCancelled, model.StatusAwaitingConfirmation,
				model.StatusCompletedSuccess, model.StatusCompletedFailed)),
	)
}

func (o *SubmitOutcome) ValidateSubmitOutcome() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Outcome, validation.Required,
			validation.In(model.OutcomeSuccess, model.OutcomeFailed, model.OutcomeNoShow)),
		validation.Field(&o.VerifyingDogID, validation.Required),
	)
}

func (d *CreateDog) ValidateCreateDog() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Gender, validation.In(model.GenderMale, model.GenderFemale, model.GenderUnknown)),
	)
}

// ToMatchRequest converts the API payload to a core match request. The acting
// user fills the requester side; the requested user may stay empty and be
// resolved from the requested dog's owner.
func (r *CreateMatchRequest) ToMatchRequest(requesterUserID string) model.MatchRequest {
	return model.MatchRequest{
		ContactID:       r.ContactID,
		RequesterDogID:  r.RequesterDogID,
		RequestedDogID:  r.RequestedDogID,
		RequestedUserID: r.RequestedUserID,
		RequesterUserID: requesterUserID,
		RequesterNotes:  r.Notes,
	}
}

func (d *CreateDog) ToDog(ownerUserID string) model.Dog {
	return model.Dog{
		OwnerUserID: ownerUserID,
		Name:        d.Name,
		Breed:       d.Breed,
		Gender:      d.Gender,
		MetaData:    d.MetaData,
	}
}
