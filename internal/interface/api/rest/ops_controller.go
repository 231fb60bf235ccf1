package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type OpsController struct {
	name     string
	gatherer prometheus.Gatherer
}

func NewOpsController(r *gin.Engine, name string, gatherer prometheus.Gatherer) *OpsController {
	oc := &OpsController{
		name:     name,
		gatherer: gatherer,
	}

	r.GET(RouteHealth, oc.HealthHandler)
	r.GET(RouteMetrics, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return oc
}

func (oc *OpsController) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": oc.name})
}
