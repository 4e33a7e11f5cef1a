package webserver

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/nexcat/catalog/config"
)

var server *WebServer

// WebServer wraps the echo instance and the api route group.
type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
	api  *echo.Group
}

// Init creates the global web server instance used by the Api route
// helpers.
func Init(cfg *config.AppConfig) *WebServer {
	server = NewWebServer(cfg)
	return server
}

func NewWebServer(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &JsoniterSerializer{}
	e.Validator = &CustomValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(ZapLogger())
	if cfg.RateLimit.Enabled {
		e.Use(RateLimiter(cfg.RateLimit))
	}
	if cfg.Web.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return &WebServer{
		cfg:  cfg,
		root: e,
		api:  e.Group("/api"),
	}
}

// Echo exposes the underlying echo instance (tests drive it directly).
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Start listens on the configured address and blocks.
func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.cfg.Web.Host, ws.cfg.Web.Port)
	zap.S().Infof("web server listen %s", addr)
	return ws.root.Start(addr)
}

// CustomValidator adapts go-playground/validator to echo's Validate.
type CustomValidator struct {
	validate *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// RestError is the uniform error envelope for every failed request.
type RestError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
