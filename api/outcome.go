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
	"net/http"

	model2 "github.com/sireline/sireline/api/model"

	"github.com/sireline/sireline/api/middleware"
	"github.com/sireline/sireline/internal/apierror"
	"github.com/sireline/sireline/model"

	"github.com/gin-gonic/gin"
)

// SubmitOutcome records the outcome for a match and then issues the paired
// lifecycle transition (success -> completed_success, failed/no_show ->
// completed_failed). The rule engine itself never completes the match; that
// responsibility sits here with the caller.
func (a Api) SubmitOutcome(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	var submission model2.SubmitOutcome
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := submission.ValidateSubmitOutcome()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	userID, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	outcome, err := a.sireline.SubmitOutcome(c.Request.Context(), id, submission.Outcome,
		submission.VerifyingDogID, submission.LitterSize, submission.Notes, userID)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	completed, err := a.sireline.TransitionMatchStatus(c.Request.Context(), id, model.CompletionStatusForOutcome(outcome.Outcome))
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error(), "outcome": outcome})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"outcome": outcome, "match": completed})
}

func (a Api) GetOutcome(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	resp, err := a.sireline.GetOutcome(c.Request.Context(), id)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
