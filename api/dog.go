package api

import (
	"net/http"

	model2 "github.com/sireline/sireline/api/model"

	"github.com/sireline/sireline/api/middleware"
	"github.com/sireline/sireline/internal/apierror"

	"github.com/gin-gonic/gin"
)

func (a Api) CreateDog(c *gin.Context) {
	var newDog model2.CreateDog
	if err := c.ShouldBindJSON(&newDog); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := newDog.ValidateCreateDog()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	userID, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp, err := a.sireline.CreateDog(c.Request.Context(), newDog.ToDog(userID))
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetDog(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	resp, err := a.sireline.GetDog(c.Request.Context(), id)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
