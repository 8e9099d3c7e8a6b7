package api

import (
	"github.com/sireline/sireline/config"

	"github.com/sireline/sireline/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sireline/sireline"
)

type Api struct {
	sireline *sireline.Sireline
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/dogs", a.CreateDog)
	router.GET("/dogs/:id", a.GetDog)

	router.POST("/matches", a.CreateMatchRequest)
	router.GET("/matches", a.ListMatchRequests)
	router.GET("/matches/:id", a.GetMatchRequest)
	router.POST("/matches/:id/accept", a.AcceptMatchRequest)
	router.PUT("/matches/:id/status", a.UpdateMatchStatus)

	router.POST("/matches/:id/outcome", a.SubmitOutcome)
	router.GET("/matches/:id/outcome", a.GetOutcome)

	return a.router
}

func NewAPI(s *sireline.Sireline) *Api {
	gin.SetMode(gin.ReleaseMode)
	_, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	r.Use(middleware.TokenAuthMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{sireline: s, router: r}
}
