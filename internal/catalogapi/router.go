package catalogapi

import (
	"github.com/nexcat/catalog/internal/app"
)

var actx app.AppContext

// InitRouter wires the catalog API routes onto the web server. Must be
// called after webserver.Init.
func InitRouter(ctx app.AppContext) {
	actx = ctx
	registerCategoryRoutes()
	registerProductRoutes()
	registerStatusRoutes()
}
