package server

import (
	"apostila-pix-store/internal/handler"
	"apostila-pix-store/internal/middleware"
	"apostila-pix-store/internal/service"
	"context"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo        *echo.Echo
	saleHandler *handler.SaleHandler
	staticDir   string
}

func NewServer(saleService service.SaleService, staticDir string, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:        e,
		saleHandler: handler.NewSaleHandler(saleService, logger),
		staticDir:   staticDir,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	s.echo.POST("/create-payment-apostila", s.saleHandler.CreatePayment)
	s.echo.GET("/check-status", s.saleHandler.CheckStatus)
	s.echo.POST(service.NotificationPath, s.saleHandler.PaymentWebhook)
	s.echo.POST("/save-whatsapp", s.saleHandler.SaveWhatsapp)

	if s.staticDir != "" {
		s.echo.Static("/", s.staticDir)
		// registered after Static so it replaces the directory handler on "/"
		s.echo.File("/", filepath.Join(s.staticDir, "apostila.html"))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
