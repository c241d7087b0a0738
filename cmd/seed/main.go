package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"kayexpress/internal/database"
	"kayexpress/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "kayexpress.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM luggage_events")
	db.Exec("DELETE FROM luggages")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM trips")
	db.Exec("DELETE FROM routes")
	db.Exec("DELETE FROM buses")
	db.Exec("DELETE FROM terminals")
	db.Exec("DELETE FROM luggage_types")
	db.Exec("DELETE FROM quotes")
	db.Exec("DELETE FROM agents")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM sequence_counters")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@kayexpress.com",
		Phone:        "+233302000001",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		FullName:     "KayExpress Admin",
		Region:       "greater_accra",
		IsActive:     true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@kayexpress.com / admin123")

	clientRows := []struct {
		name   string
		email  string
		phone  string
		region string
	}{
		{"Ama Serwaa", "ama.serwaa@example.com", "+233244123456", "greater_accra"},
		{"Kofi Asante", "kofi.asante@example.com", "+233208765432", "ashanti"},
		{"Esi Owusu", "esi.owusu@example.com", "+233551234567", "central"},
	}
	clients := make([]domain.User, 0, len(clientRows))
	for _, row := range clientRows {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Email:        row.email,
			Phone:        row.phone,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			FullName:     row.name,
			Region:       row.region,
			IsActive:     true,
		}
		db.Create(&client)
		clients = append(clients, client)
	}
	log.Printf("Created %d clients (password: client123)", len(clients))

	// ================== TERMINALS ==================
	log.Println("Creating terminals...")

	terminalRows := []domain.Terminal{
		{Name: "Accra Central", TerminalType: domain.TerminalMainStation, Region: "greater_accra", CityTown: "Accra", Address: "Kwame Nkrumah Avenue, Tudu", GPSAddress: "GA-183-8164", ContactPhone: "+233302911001", IsActive: true},
		{Name: "Kumasi Adum", TerminalType: domain.TerminalMainStation, Region: "ashanti", CityTown: "Kumasi", Address: "Adum, near Kejetia Market", GPSAddress: "AK-039-5028", ContactPhone: "+233322911002", IsActive: true},
		{Name: "Takoradi Market Circle", TerminalType: domain.TerminalMainStation, Region: "western", CityTown: "Takoradi", Address: "Market Circle, Harbour Road", GPSAddress: "WS-155-2203", ContactPhone: "+233312911003", IsActive: true},
		{Name: "Tamale Central", TerminalType: domain.TerminalMainStation, Region: "northern", CityTown: "Tamale", Address: "Bolgatanga Road, Aboabo", GPSAddress: "NT-002-7741", ContactPhone: "+233372911004", IsActive: true},
		{Name: "Cape Coast Central", TerminalType: domain.TerminalMainStation, Region: "central", CityTown: "Cape Coast", Address: "Jubilee Road, Kotokuraba", GPSAddress: "CC-061-3310", ContactPhone: "+233332911005", IsActive: true},
		{Name: "Ho Main Station", TerminalType: domain.TerminalMainStation, Region: "volta", CityTown: "Ho", Address: "Civic Centre Road", GPSAddress: "VH-019-4472", ContactPhone: "+233362911006", IsActive: true},
		{Name: "Circle VIP Station", TerminalType: domain.TerminalSubStation, Region: "greater_accra", CityTown: "Accra", Address: "Kwame Nkrumah Circle", GPSAddress: "GA-025-4419", ContactPhone: "+233302911007", IsActive: true},
	}
	terminals := map[string]*domain.Terminal{}
	for i := range terminalRows {
		db.Create(&terminalRows[i])
		terminals[terminalRows[i].CityTown] = &terminalRows[i]
	}
	// Two Accra stations, the main one wins the city key.
	terminals["Accra"] = &terminalRows[0]
	log.Printf("Created %d terminals", len(terminalRows))

	// ================== BUSES ==================
	log.Println("Creating buses...")

	busRows := []domain.Bus{
		{BusNumber: "KE001", PlateNumber: "GR-1101-25", BusType: domain.BusStandard, Status: domain.BusActive, TotalSeats: 45, Manufacturer: "Yutong", Model: "ZK6122H", YearOfMake: 2022, HasAC: true},
		{BusNumber: "KE002", PlateNumber: "GR-2202-25", BusType: domain.BusVIP, Status: domain.BusActive, TotalSeats: 32, Manufacturer: "Scania", Model: "Touring HD", YearOfMake: 2023, HasAC: true, HasWifi: true, HasToilet: true},
		{BusNumber: "KE003", PlateNumber: "AS-3303-25", BusType: domain.BusStandard, Status: domain.BusActive, TotalSeats: 45, Manufacturer: "Yutong", Model: "ZK6122H", YearOfMake: 2021, HasAC: true},
		{BusNumber: "KE004", PlateNumber: "GR-4404-25", BusType: domain.BusExecutive, Status: domain.BusActive, TotalSeats: 28, Manufacturer: "Mercedes-Benz", Model: "Travego", YearOfMake: 2024, HasAC: true, HasWifi: true, HasToilet: true},
		{BusNumber: "KE005", PlateNumber: "WR-5505-25", BusType: domain.BusStandard, Status: domain.BusActive, TotalSeats: 45, Manufacturer: "King Long", Model: "XMQ6117Y", YearOfMake: 2020, HasAC: true},
		{BusNumber: "KE006", PlateNumber: "GR-6606-25", BusType: domain.BusVIP, Status: domain.BusMaintenance, TotalSeats: 32, Manufacturer: "Scania", Model: "Touring HD", YearOfMake: 2022, HasAC: true, HasWifi: true},
	}
	for i := range busRows {
		home := terminals["Accra"].ID
		busRows[i].HomeTerminalID = &home
		db.Create(&busRows[i])
	}
	log.Printf("Created %d buses", len(busRows))

	// ================== ROUTES ==================
	log.Println("Creating routes...")

	routeRows := []struct {
		name     string
		from, to string
		km       float64
		minutes  int
		fare     float64
	}{
		{"Accra - Kumasi Express", "Accra", "Kumasi", 250, 240, 85},
		{"Accra - Cape Coast Highway", "Accra", "Cape Coast", 165, 150, 45},
		{"Kumasi - Tamale Route", "Kumasi", "Tamale", 380, 360, 120},
		{"Takoradi - Accra", "Takoradi", "Accra", 232, 210, 60},
		{"Ho - Accra", "Ho", "Accra", 165, 150, 55},
	}
	routes := make([]domain.Route, 0, len(routeRows))
	for _, row := range routeRows {
		route := domain.Route{
			Name:              row.name,
			OriginID:          terminals[row.from].ID,
			DestinationID:     terminals[row.to].ID,
			DistanceKM:        row.km,
			EstimatedDuration: row.minutes,
			BaseFare:          row.fare,
			IsActive:          true,
		}
		db.Create(&route)
		routes = append(routes, route)
	}
	log.Printf("Created %d routes", len(routes))

	// ================== TRIPS ==================
	log.Println("Creating trips...")

	morning := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(6 * time.Hour)
	tripRows := []struct {
		route   domain.Route
		bus     domain.Bus
		dep     time.Time
		minutes int
		fare    float64
	}{
		{routes[0], busRows[0], morning, 240, 85},                      // Accra - Kumasi, morning
		{routes[0], busRows[3], morning.Add(10 * time.Hour), 240, 95},  // Accra - Kumasi, evening executive
		{routes[1], busRows[1], morning.Add(2 * time.Hour), 150, 45},   // Accra - Cape Coast
		{routes[2], busRows[2], morning.Add(25 * time.Hour), 360, 120}, // Kumasi - Tamale, next day
		{routes[3], busRows[4], morning.Add(4 * time.Hour), 210, 60},   // Takoradi - Accra
		{routes[4], busRows[0], morning.Add(49 * time.Hour), 150, 55},  // Ho - Accra, day after
		{routes[0], busRows[0], morning.Add(72 * time.Hour), 240, 85},  // Accra - Kumasi, later in the week
		{routes[1], busRows[3], morning.Add(74 * time.Hour), 150, 50},  // Accra - Cape Coast, executive
	}
	for _, row := range tripRows {
		trip := domain.Trip{
			RouteID:        row.route.ID,
			BusID:          row.bus.ID,
			DepartureTime:  row.dep,
			ArrivalTime:    row.dep.Add(time.Duration(row.minutes) * time.Minute),
			Fare:           row.fare,
			TotalSeats:     row.bus.TotalSeats,
			AvailableSeats: row.bus.TotalSeats,
			Status:         domain.TripScheduled,
		}
		db.Create(&trip)
	}
	log.Printf("Created %d trips", len(tripRows))

	// ================== LUGGAGE TYPES ==================
	log.Println("Creating luggage types...")

	luggageTypes := []domain.LuggageType{
		{Name: "Small Bag", Description: "Backpacks and hand luggage", MaxWeightKG: 10, BasePrice: 3.00, PricePerKG: 1.00, IsActive: true},
		{Name: "Medium Bag", Description: "Standard suitcases", MaxWeightKG: 20, BasePrice: 5.00, PricePerKG: 1.50, IsActive: true},
		{Name: "Large Bag", Description: "Oversized suitcases and travel bags", MaxWeightKG: 30, BasePrice: 15.00, PricePerKG: 1.50, IsActive: true},
		{Name: "Extra Large", Description: "Trunks and bulk goods", MaxWeightKG: 50, BasePrice: 25.00, PricePerKG: 2.00, IsActive: true},
		{Name: "Fragile Item", Description: "Electronics, glassware, anything handled with care", MaxWeightKG: 15, BasePrice: 20.00, PricePerKG: 2.50, IsActive: true},
	}
	for i := range luggageTypes {
		db.Create(&luggageTypes[i])
	}
	log.Printf("Created %d luggage types", len(luggageTypes))

	// ================== SUMMARY ==================
	fmt.Println()
	log.Println("Seed completed!")
	log.Println("Admin: admin@kayexpress.com / admin123")
	log.Printf("Clients: %s / client123 (and %d more)", clients[0].Email, len(clients)-1)
	log.Println("Try: GET /api/v1/trips?origin=Accra&destination=Kumasi")
}
