package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/madistic/Edviron-2/internal/handler"
	custommw "github.com/madistic/Edviron-2/internal/middleware"
)

type Server struct {
	echo               *echo.Echo
	authHandler        *handler.AuthHandler
	paymentHandler     *handler.PaymentHandler
	webhookHandler     *handler.WebhookHandler
	transactionHandler *handler.TransactionHandler
	jwtSecret          string
}

func NewServer(
	authHandler *handler.AuthHandler,
	paymentHandler *handler.PaymentHandler,
	webhookHandler *handler.WebhookHandler,
	transactionHandler *handler.TransactionHandler,
	jwtSecret string,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:               e,
		authHandler:        authHandler,
		paymentHandler:     paymentHandler,
		webhookHandler:     webhookHandler,
		transactionHandler: transactionHandler,
		jwtSecret:          jwtSecret,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)

	// -------- gateway callbacks --------
	// unauthenticated: the gateway only knows the URL
	api.POST("/webhook", s.webhookHandler.HandlePaymentWebhook)

	// -------- dashboard --------
	protected := api.Group("", custommw.JWTAuth(s.jwtSecret))
	protected.POST("/create-payment", s.paymentHandler.CreatePayment)
	protected.GET("/payment-status/:collectRequestID", s.paymentHandler.CheckPaymentStatus)
	protected.GET("/transactions", s.transactionHandler.GetTransactions)
	protected.GET("/transactions/school/:schoolId", s.transactionHandler.GetSchoolTransactions)
	protected.GET("/transaction-status/:customOrderId", s.transactionHandler.GetTransactionStatus)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
