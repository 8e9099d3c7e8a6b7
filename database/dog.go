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
	"encoding/json"
	"time"

	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/model"
	"github.com/lib/pq"
)

func (d Datasource) CreateDog(ctx context.Context, dog model.Dog) (model.Dog, error) {
	metaDataJSON, err := json.Marshal(dog.MetaData)
	if err != nil {
		return model.Dog{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	dog.DogID = model.GenerateUUIDWithSuffix("dog")
	dog.CreatedAt = time.Now()
	if dog.Gender == "" {
		dog.Gender = model.GenderUnknown
	}

	_, err = d.Conn.ExecContext(ctx, `
		INSERT INTO dogs (dog_id, owner_user_id, name, breed, gender, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, dog.DogID, dog.OwnerUserID, dog.Name, dog.Breed, dog.Gender, dog.CreatedAt, metaDataJSON)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.Dog{}, apierror.NewAPIError(apierror.ErrConflict, "Dog with this ID already exists", err)
			default:
				return model.Dog{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.Dog{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create dog", err)
	}

	return dog, nil
}

func (d Datasource) GetDogByID(ctx context.Context, id string) (*model.Dog, error) {
	cacheKey := "dog:" + id
	if d.Cache != nil {
		cached := model.Dog{}
		if err := d.Cache.Get(ctx, cacheKey, &cached); err == nil && cached.DogID != "" {
			return &cached, nil
		}
	}

	dog := model.Dog{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT dog_id, owner_user_id, name, breed, gender, created_at, meta_data
		FROM dogs
		WHERE dog_id = $1
	`, id)

	var name, breed sql.NullString
	var metaDataJSON []byte
	err := row.Scan(&dog.DogID, &dog.OwnerUserID, &name, &breed, &dog.Gender, &dog.CreatedAt, &metaDataJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Dog not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve dog", err)
	}
	dog.Name = name.String
	dog.Breed = breed.String

	if len(metaDataJSON) > 0 {
		err = json.Unmarshal(metaDataJSON, &dog.MetaData)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}
	}

	if d.Cache != nil {
		_ = d.Cache.Set(ctx, cacheKey, dog, 5*time.Minute)
	}

	return &dog, nil
}
