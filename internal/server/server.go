package server

import (
	"kzstore-backoffice/internal/handler"
	"kzstore-backoffice/internal/job"
	"kzstore-backoffice/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo             *echo.Echo
	cronHandler      *handler.CronHandler
	analyticsHandler *handler.AnalyticsHandler
	cartHandler      *handler.CartHandler
}

func NewServer(runner *job.Runner, analyticsService service.AnalyticsService, cartService service.CartService) *Server {
	e := echo.New()

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:             e,
		cronHandler:      handler.NewCronHandler(runner),
		analyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		cartHandler:      handler.NewCartHandler(cartService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- analytics reports --------
	analytics := api.Group("/analytics")
	analytics.GET("/clv", s.analyticsHandler.GetCLV)
	analytics.GET("/conversion-rate", s.analyticsHandler.GetConversionRate)
	analytics.GET("/revenue", s.analyticsHandler.GetRevenue)
	analytics.GET("/funnel", s.analyticsHandler.GetSalesFunnel)
	analytics.GET("/history", s.analyticsHandler.GetHistory)

	// -------- cart tracking (called by the storefront) --------
	cart := api.Group("/cart")
	cart.POST("/track", s.cartHandler.TrackCart)
	cart.POST("/recovered", s.cartHandler.MarkRecovered)

	// -------- cron trigger surface (called by the external scheduler) --------
	cron := s.echo.Group("/cron")
	cron.GET("/jobs", s.cronHandler.ListJobs)
	cron.POST("/run-all", s.cronHandler.RunAll)
	cron.POST("/:id", s.cronHandler.RunJob)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
