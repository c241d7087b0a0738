package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kayexpress/internal/database"
	"kayexpress/internal/domain"
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

const (
	gatewaySecret = "test-gateway-secret"
	adminEmail    = "admin@kayexpress.test"
	adminPassword = "admin123"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Agent{},
		&domain.Quote{},
		&domain.Terminal{},
		&domain.Bus{},
		&domain.Route{},
		&domain.Trip{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.LuggageType{},
		&domain.Luggage{},
		&domain.LuggageEvent{},
		&domain.SequenceCounter{},
	), "Failed to migrate models")

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

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	mailer := notification.Noop{}
	gateway := payment.NewSimulatedGateway(nil)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService), bookingRepo)
	agentHandler := agent.NewHandler(agent.NewService(agentRepo, refs, mailer))
	// Throttle max of 3 keeps the rate-limit flow short.
	quoteHandler := quote.NewHandler(quote.NewService(quoteRepo, refs, mailer, time.Hour, 3))
	fleetHandler := fleet.NewHandler(fleet.NewService(terminalRepo, busRepo, routeRepo, refs))
	tripHandler := trip.NewHandler(trip.NewService(tripRepo, routeRepo, busRepo, bookingRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, tripRepo, userRepo, paymentRepo, mailer, 2*time.Hour))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, tripRepo, userRepo, gateway, mailer, nil), nil)
	luggageHandler := luggage.NewHandler(luggage.NewService(luggageRepo, bookingRepo, tripRepo, userRepo))

	validator.RegisterGinValidators()

	r := gin.New()
	r.Use(gin.Recovery())

	public := r.Group("/api/v1")

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtService))

	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(jwtService), middleware.AdminOnly())

	authHandler.RegisterPublicRoutes(public)
	authHandler.RegisterProtectedRoutes(protected)
	agentHandler.RegisterRoutes(public, admin)
	quoteHandler.RegisterRoutes(public, admin)
	fleetHandler.RegisterRoutes(public, admin)
	tripHandler.RegisterRoutes(public, admin)
	bookingHandler.RegisterRoutes(protected, admin)
	paymentHandler.RegisterRoutes(protected, admin)
	paymentHandler.RegisterWebhook(public, gatewaySecret)
	luggageHandler.RegisterRoutes(public, protected, admin)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Email:        adminEmail,
		Phone:        "+233302000001",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		FullName:     "Test Admin",
		Region:       "greater_accra",
		IsActive:     true,
	}).Error, "Failed to create admin user")

	return &E2ETestSuite{router: r, db: db, jwt: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// postWebhook delivers a gateway notification with a valid (or broken)
// HMAC signature over the raw body.
func (s *E2ETestSuite) postWebhook(body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/webhooks/gateway", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(middleware.SignatureHeader, signature)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response failed. Status: %d, Body: %s", w.Code, w.Body.String())
	}
	return &resp
}

func logErrorResponse(t *testing.T, resp *TestResponse, context string) {
	t.Helper()
	if resp.Error != nil {
		t.Logf("%s - Error: [%s] %s", context, resp.Error.Code, resp.Error.Message)
		if resp.Error.Details != nil {
			t.Logf("  Details: %+v", resp.Error.Details)
		}
	}
}

func (s *E2ETestSuite) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	require.True(t, resp.Success)
	return resp.Data["token"].(string)
}

func (s *E2ETestSuite) registerClient(t *testing.T, name, email, phone string) string {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
		"full_name": name,
		"email":     email,
		"phone":     phone,
		"password":  "Password123!",
		"region":    "greater_accra",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	resp := parseResponse(t, w)
	require.True(t, resp.Success)
	return resp.Data["token"].(string)
}

type fleetIDs struct {
	originID int64
	destID   int64
	busID    int64
	routeID  int64
	tripID   int64
	depDate  string
}

// seedFleet walks the admin fleet endpoints end to end: two terminals,
// a bus, a route between them and a scheduled trip at 45 GHS.
func (s *E2ETestSuite) seedFleet(t *testing.T, adminToken string) fleetIDs {
	t.Helper()
	var ids fleetIDs

	makeTerminal := func(name, region, city string) int64 {
		w := s.makeRequest("POST", "/api/v1/admin/terminals", map[string]interface{}{
			"name":          name,
			"terminal_type": "main_station",
			"region":        region,
			"city_town":     city,
			"address":       city + " station road",
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, "terminal create failed: %s", w.Body.String())
		resp := parseResponse(t, w)
		terminal := resp.Data["terminal"].(map[string]interface{})
		return int64(terminal["id"].(float64))
	}
	ids.originID = makeTerminal("Accra Central", "greater_accra", "Accra")
	ids.destID = makeTerminal("Kumasi Adum", "ashanti", "Kumasi")

	w := s.makeRequest("POST", "/api/v1/admin/buses", map[string]interface{}{
		"plate_number": "GR-1234-25",
		"bus_type":     "standard",
		"total_seats":  12,
		"has_ac":       true,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "bus create failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	bus := resp.Data["bus"].(map[string]interface{})
	ids.busID = int64(bus["id"].(float64))
	assert.Equal(t, "KE001", bus["bus_number"], "first bus should get the first fleet number")

	w = s.makeRequest("POST", "/api/v1/admin/routes", map[string]interface{}{
		"name":                       "Accra - Kumasi Express",
		"origin_terminal_id":         ids.originID,
		"destination_terminal_id":    ids.destID,
		"distance_km":                250,
		"estimated_duration_minutes": 240,
		"base_fare":                  45.0,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "route create failed: %s", w.Body.String())
	resp = parseResponse(t, w)
	route := resp.Data["route"].(map[string]interface{})
	ids.routeID = int64(route["id"].(float64))

	departure := time.Now().UTC().Add(48 * time.Hour)
	departure = time.Date(departure.Year(), departure.Month(), departure.Day(), 9, 0, 0, 0, time.UTC)
	ids.depDate = departure.Format("2006-01-02")
	w = s.makeRequest("POST", "/api/v1/admin/trips", map[string]interface{}{
		"route_id":       ids.routeID,
		"bus_id":         ids.busID,
		"departure_time": departure.Format(time.RFC3339),
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, "trip create failed: %s", w.Body.String())
	resp = parseResponse(t, w)
	tripData := resp.Data["trip"].(map[string]interface{})
	ids.tripID = int64(tripData["id"].(float64))

	return ids
}

func (s *E2ETestSuite) availableSeats(t *testing.T, tripID int64) int {
	t.Helper()
	w := s.makeRequest("GET", fmt.Sprintf("/api/v1/trips/%d", tripID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	tripData := resp.Data["trip"].(map[string]interface{})
	return int(tripData["available_seats"].(float64))
}

// bookAndPay runs the happy booking path and settles the payment via a
// signed gateway webhook. Returns the booking and payment references.
func (s *E2ETestSuite) bookAndPay(t *testing.T, clientToken string, tripID int64, seats int) (string, string) {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"trip_id": tripID,
		"seats":   seats,
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, "booking failed: %s", w.Body.String())
	resp := parseResponse(t, w)
	bookingData := resp.Data["booking"].(map[string]interface{})
	bookingRef := bookingData["reference_number"].(string)
	amount := bookingData["total_amount"].(float64)

	w = s.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
		"booking_reference": bookingRef,
		"payment_method":    "mobile_money",
		"momo_provider":     "mtn_momo",
		"momo_number":       "0244123456",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, "payment initiate failed: %s", w.Body.String())
	resp = parseResponse(t, w)
	paymentData := resp.Data["payment"].(map[string]interface{})
	paymentRef := paymentData["reference_number"].(string)
	txnID := paymentData["gateway_transaction_id"].(string)

	body := []byte(fmt.Sprintf(`{"transaction_id":%q,"payment_reference":%q,"status":"successful","amount":%.2f}`,
		txnID, paymentRef, amount))
	w = s.postWebhook(body, middleware.Sign(body, gatewaySecret))
	require.Equal(t, http.StatusOK, w.Code, "webhook failed: %s", w.Body.String())

	return bookingRef, paymentRef
}

// =============================================================================
// Test Flow 1: Registration and Authentication
// =============================================================================

func TestFlow1_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("POST /auth/register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"full_name": "Ama Serwaa",
			"email":     "ama@example.com",
			"phone":     "0244123456",
			"password":  "Password123!",
			"region":    "greater_accra",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		resp := parseResponse(t, w)
		if !resp.Success {
			logErrorResponse(t, resp, "Client registration failed")
		}
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])

		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "ama@example.com", user["email"])
		assert.Equal(t, "client", user["role"])

		log.Printf("✅ POST /auth/register - SUCCESS")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"full_name": "Ama Again",
			"email":     "ama@example.com",
			"phone":     "0244999888",
			"password":  "Password123!",
			"region":    "greater_accra",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
	})

	t.Run("duplicate phone is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"full_name": "Kwame Boateng",
			"email":     "kwame@example.com",
			"phone":     "0244123456",
			"password":  "Password123!",
			"region":    "ashanti",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "PHONE_EXISTS", resp.Error.Code)
	})

	t.Run("non-Ghana phone fails binding", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"full_name": "John Doe",
			"email":     "john@example.com",
			"phone":     "+15551234567",
			"password":  "Password123!",
			"region":    "greater_accra",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST /auth/login", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "ama@example.com",
			"password": "Password123!",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
		assert.NotZero(t, resp.Data["expires_in"])

		log.Printf("✅ POST /auth/login - SUCCESS")
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "ama@example.com",
			"password": "nope12345",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("GET /users/me", func(t *testing.T) {
		token := suite.login(t, "ama@example.com", "Password123!")

		w := suite.makeRequest("GET", "/api/v1/users/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "ama@example.com", user["email"])
		assert.NotNil(t, resp.Data["booking_stats"], "profile carries the booking rollup")

		log.Printf("✅ GET /users/me - SUCCESS")
	})

	t.Run("GET /users/me without token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/users/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("POST /users/me/password and relogin", func(t *testing.T) {
		token := suite.login(t, "ama@example.com", "Password123!")

		w := suite.makeRequest("POST", "/api/v1/users/me/password", map[string]interface{}{
			"current_password": "Password123!",
			"new_password":     "EvenBetter456!",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, "password change failed: %s", w.Body.String())

		// Old password no longer works, the new one does.
		w = suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "ama@example.com",
			"password": "Password123!",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		suite.login(t, "ama@example.com", "EvenBetter456!")

		log.Printf("✅ POST /users/me/password - SUCCESS")
	})
}

// =============================================================================
// Test Flow 2: Admin Fleet Setup and Trip Search
// =============================================================================

func TestFlow2_FleetAndTripSearch(t *testing.T) {
	suite := setupTestSuite(t)

	adminToken := suite.login(t, adminEmail, adminPassword)
	ids := suite.seedFleet(t, adminToken)

	t.Run("GET /trips finds the scheduled departure", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/trips?origin=%d&destination=%d&date=%s", ids.originID, ids.destID, ids.depDate)
		w := suite.makeRequest("GET", path, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, float64(1), resp.Data["total"])

		items := resp.Data["items"].([]interface{})
		require.Len(t, items, 1)
		found := items[0].(map[string]interface{})
		assert.Equal(t, float64(45), found["fare"], "trip fare defaults to the route base fare")
		assert.Equal(t, float64(12), found["available_seats"])

		log.Printf("✅ GET /trips search - SUCCESS")
	})

	t.Run("GET /trips/:id includes route and bus", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/trips/%d", ids.tripID), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		tripData := resp.Data["trip"].(map[string]interface{})
		assert.Equal(t, "scheduled", tripData["status"])
		route := tripData["route"].(map[string]interface{})
		assert.Equal(t, "Accra - Kumasi Express", route["name"])
	})

	t.Run("search for the wrong day comes back empty", func(t *testing.T) {
		wrongDay := time.Now().Add(30 * 24 * time.Hour).Format("2006-01-02")
		w := suite.makeRequest("GET", "/api/v1/trips?date="+wrongDay, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, float64(0), resp.Data["total"])
	})

	t.Run("fleet endpoints are admin only", func(t *testing.T) {
		clientToken := suite.registerClient(t, "Efua Mensah", "efua@example.com", "0209999888")

		w := suite.makeRequest("POST", "/api/v1/admin/terminals", map[string]interface{}{
			"name":          "Rogue Terminal",
			"terminal_type": "main_station",
			"region":        "greater_accra",
			"city_town":     "Accra",
			"address":       "nowhere",
		}, clientToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = suite.makeRequest("POST", "/api/v1/admin/terminals", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		log.Printf("✅ admin guard - SUCCESS")
	})

	t.Run("GET /terminals lists public terminals", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/terminals?region=greater_accra", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		items := resp.Data["items"].([]interface{})
		require.NotEmpty(t, items)
		terminal := items[0].(map[string]interface{})
		assert.Equal(t, "Accra Central", terminal["name"])
	})
}

// =============================================================================
// Test Flow 3: Booking, Payment, Ticket and Cancellation
// =============================================================================

func TestFlow3_BookingPaymentAndCancel(t *testing.T) {
	suite := setupTestSuite(t)

	adminToken := suite.login(t, adminEmail, adminPassword)
	ids := suite.seedFleet(t, adminToken)
	clientToken := suite.registerClient(t, "Kojo Antwi", "kojo@example.com", "0244765432")

	var bookingRef, paymentRef, txnID string
	var totalAmount float64

	t.Run("POST /bookings reserves seats", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"trip_id": ids.tripID,
			"seats":   2,
		}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, "booking failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		bookingData := resp.Data["booking"].(map[string]interface{})
		bookingRef = bookingData["reference_number"].(string)
		totalAmount = bookingData["total_amount"].(float64)

		assert.True(t, strings.HasPrefix(bookingRef, "KB"), "booking reference %q", bookingRef)
		assert.Equal(t, "pending", bookingData["status"])
		assert.Equal(t, "pending", bookingData["payment_status"])
		assert.Equal(t, 2*45.0+domain.BookingFee, totalAmount)
		assert.Equal(t, 10, suite.availableSeats(t, ids.tripID), "two seats held")

		log.Printf("✅ POST /bookings - SUCCESS (ref=%s)", bookingRef)
	})

	t.Run("overbooking is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"trip_id": ids.tripID,
			"seats":   10, // binding max, but only 10 left and we ask again below
		}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := parseResponse(t, w)
		second := resp.Data["booking"].(map[string]interface{})["reference_number"].(string)

		// Trip is now full, the next request must fail cleanly.
		w = suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"trip_id": ids.tripID,
			"seats":   1,
		}, clientToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INSUFFICIENT_SEATS", parseResponse(t, w).Error.Code)
		assert.Equal(t, 0, suite.availableSeats(t, ids.tripID))

		// Cancelling the filler booking releases its seats.
		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%s/cancel", second), nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code, "cancel failed: %s", w.Body.String())
		assert.Equal(t, 10, suite.availableSeats(t, ids.tripID))

		log.Printf("✅ seat accounting - SUCCESS")
	})

	t.Run("POST /payments charges the gateway", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_reference": bookingRef,
			"payment_method":    "mobile_money",
			"momo_provider":     "mtn_momo",
			"momo_number":       "0244765432",
		}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, "initiate failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		paymentData := resp.Data["payment"].(map[string]interface{})
		paymentRef = paymentData["reference_number"].(string)
		txnID = paymentData["gateway_transaction_id"].(string)

		assert.True(t, strings.HasPrefix(paymentRef, "PAY"), "payment reference %q", paymentRef)
		assert.Equal(t, "processing", paymentData["status"])
		assert.Equal(t, totalAmount, paymentData["amount"])
		assert.True(t, strings.HasPrefix(txnID, "SIM-OK-"), "simulated txn id %q", txnID)

		log.Printf("✅ POST /payments - SUCCESS (ref=%s)", paymentRef)
	})

	t.Run("signed webhook confirms the booking", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"transaction_id":%q,"payment_reference":%q,"status":"successful","amount":%.2f}`,
			txnID, paymentRef, totalAmount))
		w := suite.postWebhook(body, middleware.Sign(body, gatewaySecret))
		require.Equal(t, http.StatusOK, w.Code, "webhook failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, "successful", resp.Data["status"])

		w = suite.makeRequest("GET", "/api/v1/bookings/"+bookingRef, nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code)
		bookingData := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "confirmed", bookingData["status"])
		assert.Equal(t, "paid", bookingData["payment_status"])

		log.Printf("✅ webhook settlement - SUCCESS")
	})

	t.Run("GET /bookings/:reference/ticket streams a PDF", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%s/ticket", bookingRef), nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code, "ticket failed: %s", w.Body.String())

		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), bookingRef)
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")), "body should be a PDF document")

		log.Printf("✅ GET ticket - SUCCESS")
	})

	t.Run("other accounts cannot read the booking", func(t *testing.T) {
		otherToken := suite.registerClient(t, "Yaw Darko", "yaw@example.com", "0201112223")
		w := suite.makeRequest("GET", "/api/v1/bookings/"+bookingRef, nil, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cancel refunds the payment and releases seats", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%s/cancel", bookingRef), map[string]interface{}{
			"reason": "change of plans",
		}, clientToken)
		require.Equal(t, http.StatusOK, w.Code, "cancel failed: %s", w.Body.String())

		bookingData := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "refunded", bookingData["status"])
		assert.Equal(t, "refunded", bookingData["payment_status"])
		assert.Equal(t, 12, suite.availableSeats(t, ids.tripID), "all seats back")

		w = suite.makeRequest("GET", "/api/v1/payments/"+paymentRef, nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code)
		paymentData := parseResponse(t, w).Data["payment"].(map[string]interface{})
		assert.Equal(t, "refunded", paymentData["status"])

		log.Printf("✅ cancel + refund - SUCCESS")
	})

	t.Run("cancelling twice is a no-op for seats", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/bookings/%s/cancel", bookingRef), nil, clientToken)
		assert.Equal(t, http.StatusOK, w.Code, "repeat cancel should be accepted: %s", w.Body.String())
		assert.Equal(t, 12, suite.availableSeats(t, ids.tripID), "seats must not be released twice")
	})
}

// =============================================================================
// Test Flow 4: Webhook Security and Idempotency
// =============================================================================

func TestFlow4_WebhookSecurity(t *testing.T) {
	suite := setupTestSuite(t)

	adminToken := suite.login(t, adminEmail, adminPassword)
	ids := suite.seedFleet(t, adminToken)
	clientToken := suite.registerClient(t, "Adwoa Safo", "adwoa@example.com", "0543216789")

	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"trip_id": ids.tripID,
		"seats":   1,
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	bookingData := parseResponse(t, w).Data["booking"].(map[string]interface{})
	bookingRef := bookingData["reference_number"].(string)
	amount := bookingData["total_amount"].(float64)

	w = suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
		"booking_reference": bookingRef,
		"payment_method":    "mobile_money",
		"momo_provider":     "vodafone_cash",
		"momo_number":       "0543216789",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	paymentData := parseResponse(t, w).Data["payment"].(map[string]interface{})
	paymentRef := paymentData["reference_number"].(string)
	txnID := paymentData["gateway_transaction_id"].(string)

	goodBody := []byte(fmt.Sprintf(`{"transaction_id":%q,"payment_reference":%q,"status":"successful","amount":%.2f}`,
		txnID, paymentRef, amount))

	t.Run("unsigned webhook is rejected", func(t *testing.T) {
		w := suite.postWebhook(goodBody, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_SIGNATURE", parseResponse(t, w).Error.Code)
	})

	t.Run("tampered body is rejected", func(t *testing.T) {
		sig := middleware.Sign(goodBody, gatewaySecret)
		tampered := bytes.Replace(goodBody, []byte("successful"), []byte("failed"), 1)
		w := suite.postWebhook(tampered, sig)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_SIGNATURE", parseResponse(t, w).Error.Code)
	})

	t.Run("amount mismatch fails the payment", func(t *testing.T) {
		bad := []byte(fmt.Sprintf(`{"transaction_id":%q,"payment_reference":%q,"status":"successful","amount":%.2f}`,
			txnID, paymentRef, amount-10))
		w := suite.postWebhook(bad, middleware.Sign(bad, gatewaySecret))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "AMOUNT_MISMATCH", parseResponse(t, w).Error.Code)

		w = suite.makeRequest("GET", "/api/v1/payments/"+paymentRef, nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code)
		paymentData := parseResponse(t, w).Data["payment"].(map[string]interface{})
		assert.Equal(t, "failed", paymentData["status"])

		log.Printf("✅ amount mismatch - SUCCESS")
	})

	t.Run("booking can be paid again after a failed attempt", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_reference": bookingRef,
			"payment_method":    "mobile_money",
			"momo_provider":     "vodafone_cash",
			"momo_number":       "0543216789",
		}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, "second initiate failed: %s", w.Body.String())
		paymentData := parseResponse(t, w).Data["payment"].(map[string]interface{})
		paymentRef = paymentData["reference_number"].(string)
		txnID = paymentData["gateway_transaction_id"].(string)

		body := []byte(fmt.Sprintf(`{"transaction_id":%q,"payment_reference":%q,"status":"successful","amount":%.2f}`,
			txnID, paymentRef, amount))
		w = suite.postWebhook(body, middleware.Sign(body, gatewaySecret))
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", "/api/v1/bookings/"+bookingRef, nil, clientToken)
		bookingData := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "confirmed", bookingData["status"])

		goodBody = body

		log.Printf("✅ retry after failure - SUCCESS")
	})

	t.Run("replayed webhook does not double-settle", func(t *testing.T) {
		w := suite.postWebhook(goodBody, middleware.Sign(goodBody, gatewaySecret))
		assert.Equal(t, http.StatusOK, w.Code, "replay should be acknowledged: %s", w.Body.String())

		w = suite.makeRequest("GET", "/api/v1/payments/"+paymentRef, nil, clientToken)
		paymentData := parseResponse(t, w).Data["payment"].(map[string]interface{})
		assert.Equal(t, "successful", paymentData["status"])

		w = suite.makeRequest("GET", "/api/v1/bookings/"+bookingRef, nil, clientToken)
		bookingData := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, "confirmed", bookingData["status"])

		log.Printf("✅ webhook idempotency - SUCCESS")
	})

	t.Run("declined wallets fail via verify polling", func(t *testing.T) {
		otherToken := suite.registerClient(t, "Nana Yaa", "nanayaa@example.com", "0551230000")
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"trip_id": ids.tripID,
			"seats":   1,
		}, otherToken)
		require.Equal(t, http.StatusCreated, w.Code)
		ref := parseResponse(t, w).Data["booking"].(map[string]interface{})["reference_number"].(string)

		// Wallets ending in 0000 are declined by the simulated gateway.
		w = suite.makeRequest("POST", "/api/v1/payments", map[string]interface{}{
			"booking_reference": ref,
			"payment_method":    "mobile_money",
			"momo_provider":     "mtn_momo",
			"momo_number":       "0551230000",
		}, otherToken)
		require.Equal(t, http.StatusCreated, w.Code)
		paymentData := parseResponse(t, w).Data["payment"].(map[string]interface{})
		payRef := paymentData["reference_number"].(string)

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/payments/%s/verify", payRef), nil, otherToken)
		require.Equal(t, http.StatusOK, w.Code, "verify failed: %s", w.Body.String())
		paymentData = parseResponse(t, w).Data["payment"].(map[string]interface{})
		assert.Equal(t, "failed", paymentData["status"])

		log.Printf("✅ verify polling - SUCCESS")
	})
}

// =============================================================================
// Test Flow 5: Charter Quotes and Agent Applications
// =============================================================================

func TestFlow5_QuotesAndAgents(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.login(t, adminEmail, adminPassword)

	quoteBody := func(phone string) map[string]interface{} {
		travel := time.Now().Add(14 * 24 * time.Hour)
		return map[string]interface{}{
			"full_name":                "Abena Osei",
			"phone_number":             phone,
			"email":                    "abena@example.com",
			"pickup_location":          "Accra, Osu",
			"destination":              "Akosombo",
			"travel_date":              travel.Format(time.RFC3339),
			"return_date":              travel.Add(48 * time.Hour).Format(time.RFC3339),
			"number_of_passengers":     25,
			"trip_type":                "round_trip",
			"preferred_contact_method": "phone",
			"additional_requirements":  "AC bus with onboard fridge",
		}
	}

	var quoteRef string
	var quoteID int64

	t.Run("POST /quotes issues sequential references", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/quotes", quoteBody("0244000001"), "")
		require.Equal(t, http.StatusCreated, w.Code, "quote failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		quoteData := resp.Data["quote"].(map[string]interface{})
		quoteRef = quoteData["reference_number"].(string)
		quoteID = int64(quoteData["id"].(float64))

		period := time.Now().Format("200601")
		assert.Equal(t, "BQ"+period+"001", quoteRef, "first quote of the month")
		assert.Equal(t, "pending", quoteData["status"])

		log.Printf("✅ POST /quotes - SUCCESS (ref=%s)", quoteRef)
	})

	t.Run("second quote increments the counter", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/quotes", quoteBody("0244000002"), "")
		require.Equal(t, http.StatusCreated, w.Code)

		quoteData := parseResponse(t, w).Data["quote"].(map[string]interface{})
		period := time.Now().Format("200601")
		assert.Equal(t, "BQ"+period+"002", quoteData["reference_number"])
	})

	t.Run("GET /quotes/:reference tracks publicly", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/quotes/"+quoteRef, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		quoteData := parseResponse(t, w).Data["quote"].(map[string]interface{})
		assert.Equal(t, "pending", quoteData["status"])
	})

	t.Run("admin responds with a price", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/quotes/%d/respond", quoteID), map[string]interface{}{
			"quote_amount": 5400.0,
			"quote_notes":  "Executive coach, driver and fuel included",
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, "respond failed: %s", w.Body.String())

		quoteData := parseResponse(t, w).Data["quote"].(map[string]interface{})
		assert.Equal(t, "quoted", quoteData["status"])
		assert.Equal(t, 5400.0, quoteData["quote_amount"])

		log.Printf("✅ quote respond - SUCCESS")
	})

	t.Run("quote can be accepted after pricing", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/admin/quotes/%d/status", quoteID), map[string]interface{}{
			"status": "accepted",
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		quoteData := parseResponse(t, w).Data["quote"].(map[string]interface{})
		assert.Equal(t, "accepted", quoteData["status"])
	})

	t.Run("same phone is throttled", func(t *testing.T) {
		// Suite config allows 3 per hour per phone; two more land, the
		// fourth bounces.
		w := suite.makeRequest("POST", "/api/v1/quotes", quoteBody("0208880001"), "")
		require.Equal(t, http.StatusCreated, w.Code)
		w = suite.makeRequest("POST", "/api/v1/quotes", quoteBody("0208880001"), "")
		require.Equal(t, http.StatusCreated, w.Code)
		w = suite.makeRequest("POST", "/api/v1/quotes", quoteBody("0208880001"), "")
		require.Equal(t, http.StatusCreated, w.Code)

		w = suite.makeRequest("POST", "/api/v1/quotes", quoteBody("0208880001"), "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "RATE_LIMITED", parseResponse(t, w).Error.Code)

		log.Printf("✅ quote throttle - SUCCESS")
	})

	agentBody := map[string]interface{}{
		"full_name":             "Kwabena Agyei",
		"phone_number":          "0277001122",
		"email":                 "kwabena@example.com",
		"id_type":               "ghana_card",
		"id_number":             "GHA-000111222-3",
		"region":                "ashanti",
		"city_town":             "Kumasi",
		"area_suburb":           "Asokwa",
		"mobile_money_provider": "mtn_momo",
		"mobile_money_number":   "0277001122",
		"availability":          "full_time",
		"why_join":              "I run a chop bar next to the Asokwa stop and everyone asks me about tickets.",
	}

	var agentRef string
	var agentID int64

	t.Run("POST /agents/register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/agents/register", agentBody, "")
		require.Equal(t, http.StatusCreated, w.Code, "agent register failed: %s", w.Body.String())

		resp := parseResponse(t, w)
		agentRef = resp.Data["reference_number"].(string)
		agentID = int64(resp.Data["agent_id"].(float64))

		period := time.Now().Format("200601")
		assert.Equal(t, "AG"+period+"001", agentRef)
		assert.Equal(t, "pending", resp.Data["status"])

		log.Printf("✅ POST /agents/register - SUCCESS (ref=%s)", agentRef)
	})

	t.Run("duplicate application is rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/agents/register", agentBody, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("referral code must exist", func(t *testing.T) {
		bad := map[string]interface{}{}
		for k, v := range agentBody {
			bad[k] = v
		}
		bad["email"] = "other@example.com"
		bad["phone_number"] = "0277003344"
		bad["mobile_money_number"] = "0277003344"
		bad["referral_code"] = "AG209912999"

		w := suite.makeRequest("POST", "/api/v1/agents/register", bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REFERRAL", parseResponse(t, w).Error.Code)
	})

	t.Run("referred application chains on the first agent", func(t *testing.T) {
		second := map[string]interface{}{}
		for k, v := range agentBody {
			second[k] = v
		}
		second["full_name"] = "Akosua Agyei"
		second["email"] = "akosua@example.com"
		second["phone_number"] = "0277005566"
		second["mobile_money_number"] = "0277005566"
		second["referral_code"] = agentRef

		w := suite.makeRequest("POST", "/api/v1/agents/register", second, "")
		require.Equal(t, http.StatusCreated, w.Code, "referred register failed: %s", w.Body.String())
	})

	t.Run("admin approves the application", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/admin/agents/%d/status", agentID), map[string]interface{}{
			"status": "approved",
			"notes":  "Interviewed at Kumasi Adum office",
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code, "approve failed: %s", w.Body.String())

		agentData := parseResponse(t, w).Data["agent"].(map[string]interface{})
		assert.Equal(t, "approved", agentData["status"])
		assert.NotNil(t, agentData["status_updated_at"])

		log.Printf("✅ agent approval - SUCCESS")
	})

	t.Run("admin lists pending applications", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/agents?status=pending", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		items := resp.Data["items"].([]interface{})
		require.NotEmpty(t, items)
		for _, raw := range items {
			assert.Equal(t, "pending", raw.(map[string]interface{})["status"])
		}
	})
}

// =============================================================================
// Test Flow 6: Luggage Lifecycle
// =============================================================================

func TestFlow6_LuggageLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	adminToken := suite.login(t, adminEmail, adminPassword)
	ids := suite.seedFleet(t, adminToken)
	clientToken := suite.registerClient(t, "Akua Donkor", "akua@example.com", "0244556677")
	bookingRef, _ := suite.bookAndPay(t, clientToken, ids.tripID, 1)

	var typeID int64
	var tag string

	t.Run("admin creates a luggage type", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/admin/luggage-types", map[string]interface{}{
			"name":          "Medium Bag",
			"description":   "Standard suitcases",
			"max_weight_kg": 20,
			"base_price":    5.00,
			"price_per_kg":  1.50,
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, "type create failed: %s", w.Body.String())

		typeData := parseResponse(t, w).Data["luggage_type"].(map[string]interface{})
		typeID = int64(typeData["id"].(float64))
		assert.Equal(t, true, typeData["is_active"])
	})

	t.Run("public luggage type listing", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/luggage-types", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		items := parseResponse(t, w).Data["items"].([]interface{})
		require.Len(t, items, 1)
	})

	t.Run("POST /luggage checks a bag in", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/luggage", map[string]interface{}{
			"booking_reference": bookingRef,
			"luggage_type_id":   typeID,
			"weight_kg":         12,
			"description":       "blue suitcase with stickers",
			"is_valuable":       true,
			"declared_value":    500.0,
		}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, "check-in failed: %s", w.Body.String())

		luggageData := parseResponse(t, w).Data["luggage"].(map[string]interface{})
		tag = luggageData["reference_number"].(string)

		assert.True(t, strings.HasPrefix(tag, "LG"), "luggage tag %q", tag)
		assert.Equal(t, "registered", luggageData["status"])
		assert.Equal(t, 5.00+1.50*12, luggageData["handling_fee"], "base plus per-kg charge")
		assert.Equal(t, 5.0, luggageData["insurance_fee"], "one percent of declared value")

		log.Printf("✅ POST /luggage - SUCCESS (tag=%s)", tag)
	})

	t.Run("overweight bags are rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/luggage", map[string]interface{}{
			"booking_reference": bookingRef,
			"luggage_type_id":   typeID,
			"weight_kg":         21,
		}, clientToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("tracking is public but masked", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/luggage/%s/track", tag), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		luggageData := parseResponse(t, w).Data["luggage"].(map[string]interface{})
		assert.Equal(t, "registered", luggageData["status"])
		assert.Equal(t, "Medium Bag", luggageData["luggage_type"])

		owner := luggageData["owner_phone"].(string)
		assert.Contains(t, owner, "*", "owner phone must be masked: %q", owner)
		assert.NotContains(t, owner, "445566", "middle digits must not leak")

		events := luggageData["events"].([]interface{})
		require.Len(t, events, 1)
		first := events[0].(map[string]interface{})
		assert.Equal(t, "registered", first["status"])
		assert.Equal(t, "Accra Central", first["location"], "check-in location is the origin terminal")

		log.Printf("✅ GET /luggage/:tag/track - SUCCESS")
	})

	t.Run("handlers walk the bag through the flow", func(t *testing.T) {
		steps := []struct {
			status   string
			location string
		}{
			{"loaded", "Accra Central"},
			{"in_transit", ""},
			{"arrived", "Kumasi Adum"},
			{"collected", "Kumasi Adum"},
		}
		for _, step := range steps {
			w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/luggage/%s/events", tag), map[string]interface{}{
				"status":   step.status,
				"location": step.location,
			}, adminToken)
			require.Equal(t, http.StatusOK, w.Code, "event %s failed: %s", step.status, w.Body.String())

			luggageData := parseResponse(t, w).Data["luggage"].(map[string]interface{})
			assert.Equal(t, step.status, luggageData["status"])
		}

		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/luggage/%s/track", tag), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		events := parseResponse(t, w).Data["luggage"].(map[string]interface{})["events"].([]interface{})
		assert.Len(t, events, 5, "check-in plus four handling events")

		log.Printf("✅ luggage flow - SUCCESS")
	})

	t.Run("collected bags accept no more events", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/admin/luggage/%s/events", tag), map[string]interface{}{
			"status": "lost",
		}, adminToken)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_STATE", parseResponse(t, w).Error.Code)
	})

	t.Run("unknown tags 404", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/luggage/LG20990101FFFFFF/track", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /bookings/:reference/luggage lists the bag", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%s/luggage", bookingRef), nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code)
		items := parseResponse(t, w).Data["items"].([]interface{})
		require.Len(t, items, 1)
		assert.Equal(t, tag, items[0].(map[string]interface{})["reference_number"])
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
