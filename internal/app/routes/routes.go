package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/seasonledger/internal/app/controllers"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/middleware"
)

// Controllers bundles the HTTP handlers mounted under /api.
type Controllers struct {
	Person *controllers.PersonController
	Season *controllers.SeasonController
	Event  *controllers.EventController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *Controllers) {
	api := router.Group("/api")

	people := api.Group("/people")
	{
		people.GET("", ctrl.Person.ListPeople)
		people.POST("", ctrl.Person.CreatePerson)
		people.GET("/:id", ctrl.Person.GetPerson)
		people.PUT("/:id", ctrl.Person.UpdatePerson)
		// People are deactivated, never removed.
		people.DELETE("/:id", ctrl.Person.DeactivatePerson)
		people.POST("/:id/activate", ctrl.Person.ActivatePerson)
		people.POST("/:id/deactivate", ctrl.Person.DeactivatePerson)
		people.GET("/:id/report", ctrl.Person.GetPersonReport)
		people.GET("/:id/report/export", ctrl.Person.ExportPersonReport)
	}

	seasons := api.Group("/seasons")
	{
		seasons.GET("", ctrl.Season.ListSeasons)
		seasons.POST("", ctrl.Season.CreateSeason)
		seasons.GET("/latest", ctrl.Season.GetLatestSeason)
		seasons.GET("/:id", ctrl.Season.GetSeason)
		seasons.PUT("/:id", ctrl.Season.UpdateSeason)
		seasons.POST("/:id/activate", ctrl.Season.ActivateSeason)
		seasons.POST("/:id/deactivate", ctrl.Season.DeactivateSeason)
		seasons.GET("/:id/report", ctrl.Season.GetSeasonReport)
		seasons.GET("/:id/report/export", ctrl.Season.ExportSeasonReport)
		seasons.GET("/:id/report/chart", ctrl.Season.GetSeasonChart)
	}

	events := api.Group("/events")
	{
		events.GET("", ctrl.Event.ListEvents)
		events.POST("", ctrl.Event.CreateEvent)
		events.GET("/:id", ctrl.Event.GetEvent)
		events.PUT("/:id", ctrl.Event.UpdateEvent)
		events.DELETE("/:id", ctrl.Event.DeleteEvent)
		events.GET("/:id/participants", ctrl.Event.ListParticipants)
		events.POST("/:id/participants/:personId", ctrl.Event.AddParticipant)
		events.DELETE("/:id/participants/:personId", ctrl.Event.RemoveParticipant)
		events.PUT("/:id/participants/:personId/payment", ctrl.Event.UpdateParticipantPayment)
	}

	router.NoRoute(middleware.NotFound())
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// SetupOps mounts /health and /metrics outside the API group.
func SetupOps(router *gin.Engine, db Pinger, gatherer prometheus.Gatherer) {
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable").WithDetails(err.Error())
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(errorDetail))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
