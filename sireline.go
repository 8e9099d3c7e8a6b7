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
	"github.com/sireline/sireline/database"
)

// Sireline coordinates the breeding-match workflow: the request lifecycle on one
// side and outcome verification on the other. It is transport-agnostic; the API
// layer wraps it and storage is reached through database.IDataSource.
type Sireline struct {
	datasource database.IDataSource
}

// NewSireline initializes a new instance of Sireline with the provided database datasource.
//
// Parameters:
// - db database.IDataSource: The datasource for database operations.
//
// Returns:
// - *Sireline: A pointer to the newly created Sireline instance.
func NewSireline(db database.IDataSource) *Sireline {
	return &Sireline{datasource: db}
}
