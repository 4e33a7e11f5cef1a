package catalogapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nexcat/catalog/internal/domain"
	"github.com/nexcat/catalog/internal/webserver"
	"github.com/nexcat/catalog/pkg/metrics"
)

var startTime = time.Now()

type statusResponse struct {
	Uptime     string                 `json:"uptime"`
	System     metrics.SystemSnapshot `json:"system"`
	Products   int64                  `json:"products"`
	Categories int64                  `json:"categories"`
}

func registerStatusRoutes() {
	webserver.ApiGET("/status", getStatus)
}

// getStatus godoc
// @Summary Service status
// @Tags status
// @Produce json
// @Success 200 {object} statusResponse
// @Router /status [get]
func getStatus(c echo.Context) error {
	snap, _ := metrics.Snapshot()

	var resp statusResponse
	resp.Uptime = time.Since(startTime).Round(time.Second).String()
	resp.System = snap

	db := GetDB(c)
	if err := db.Model(&domain.Product{}).Count(&resp.Products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query row counts", err.Error())
	}
	if err := db.Model(&domain.Category{}).Count(&resp.Categories).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query row counts", err.Error())
	}
	return ok(c, resp)
}
