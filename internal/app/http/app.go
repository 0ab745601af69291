package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"xr_archive/internal/middleware"
	httprouters "xr_archive/internal/transport/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	host      string
	port      string
	uploadDir string
}

func New(log *slog.Logger, host, port, uploadDir string, timeout time.Duration, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.PrometheusMetrics)

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			)

			return nil
		},
	}))

	e.Server.ReadHeaderTimeout = timeout

	return &Server{
		log:       log,
		e:         e,
		routers:   routers,
		host:      host,
		port:      port,
		uploadDir: uploadDir,
	}
}

// Handler отдаёт echo как http.Handler, нужен для тестов
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("port", s.port))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf("%s:%s", s.host, s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	swagger := s.e.Group("/swagger")
	{
		swagger.GET("/*", echoSwagger.WrapHandler)
	}

	if s.uploadDir != "" {
		s.e.Static("/uploads", s.uploadDir)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/status", s.routers.GetStatus)
		api.POST("/home", s.routers.GoHome)
		api.GET("/stream", s.routers.Stream)

		records := api.Group("/records")
		{
			records.GET("", s.routers.ListRecords)
			records.POST("", s.routers.CreateRecord)
			records.GET("/:id", s.routers.OpenRecord)
			records.PUT("/:id", s.routers.UpdateRecord)
			records.DELETE("/:id", s.routers.DeleteRecord)
		}

		aiGroup := api.Group("/ai")
		{
			aiGroup.POST("/refine", s.routers.RefinePrompt)
			aiGroup.POST("/hotspots", s.routers.SuggestHotspots)
		}

		api.POST("/images", s.routers.UploadImage)
	}
}
