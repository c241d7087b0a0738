package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kayexpress/internal/config"
	"kayexpress/internal/database"
	"kayexpress/internal/middleware"
	"kayexpress/internal/modules/agent"
	"kayexpress/internal/modules/auth"
	"kayexpress/internal/modules/booking"
	"kayexpress/internal/modules/fleet"
	"kayexpress/internal/modules/luggage"
	"kayexpress/internal/modules/payment"
	"kayexpress/internal/modules/quote"
	"kayexpress/internal/modules/trip"
	"kayexpress/internal/notification"
	jwtsvc "kayexpress/internal/pkg/jwt"
	"kayexpress/internal/pkg/validator"
	"kayexpress/internal/refnum"
	"kayexpress/internal/repository"
)

func main() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	validator.RegisterGinValidators()

	userRepo := repository.NewUserRepository(db)
	agentRepo := repository.NewAgentRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	terminalRepo := repository.NewTerminalRepository(db)
	busRepo := repository.NewBusRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	tripRepo := repository.NewTripRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	luggageRepo := repository.NewLuggageRepository(db)
	refs := refnum.NewGenerator(db)

	var mailer notification.Sender = notification.Noop{}
	if !cfg.NotifyDisable && cfg.SMTPHost != "" {
		m, err := notification.NewMailer(notification.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
		if err != nil {
			log.Fatal(err)
		}
		mailer = m
	}

	var gateway payment.Gateway
	if cfg.GatewayMode == "live" {
		gateway = payment.NewHTTPGateway(cfg.GatewayBaseURL, cfg.GatewaySecret, log.Printf)
	} else {
		gateway = payment.NewSimulatedGateway(log.Printf)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j), bookingRepo)
	agentHandler := agent.NewHandler(agent.NewService(agentRepo, refs, mailer))
	quoteHandler := quote.NewHandler(quote.NewService(quoteRepo, refs, mailer, cfg.QuoteThrottleWindow, cfg.QuoteThrottleMax))
	fleetHandler := fleet.NewHandler(fleet.NewService(terminalRepo, busRepo, routeRepo, refs))
	tripHandler := trip.NewHandler(trip.NewService(tripRepo, routeRepo, busRepo, bookingRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, tripRepo, userRepo, paymentRepo, mailer, cfg.BookingPaymentWindow))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, tripRepo, userRepo, gateway, mailer, log.Printf), log.Printf)
	luggageHandler := luggage.NewHandler(luggage.NewService(luggageRepo, bookingRepo, tripRepo, userRepo))

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSOrigins))

	public := r.Group("/api/v1")

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(j))

	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())

	authHandler.RegisterPublicRoutes(public)
	authHandler.RegisterProtectedRoutes(protected)
	agentHandler.RegisterRoutes(public, admin)
	quoteHandler.RegisterRoutes(public, admin)
	fleetHandler.RegisterRoutes(public, admin)
	tripHandler.RegisterRoutes(public, admin)
	bookingHandler.RegisterRoutes(protected, admin)
	paymentHandler.RegisterRoutes(protected, admin)
	paymentHandler.RegisterWebhook(public, cfg.GatewaySecret)
	luggageHandler.RegisterRoutes(public, protected, admin)

	log.Printf("kayexpress api listening on %s (env=%s gateway=%s)", cfg.HTTPAddr, cfg.AppEnv, cfg.GatewayMode)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
