package repository

import (
	"path/filepath"
	"testing"
	"time"

	"kayexpress/internal/database"
	"kayexpress/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
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
	))
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	migrate(t, db)
	return db
}

// fileDB backs the concurrency tests: a shared on-disk database with a
// single connection so parallel goroutines contend on real statements.
func fileDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	migrate(t, db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	u := domain.User{
		Email:        "ama@example.com",
		Phone:        "+233244123456",
		PasswordHash: "x",
		Role:         domain.RoleClient,
		FullName:     "Ama Mensah",
		Region:       "greater_accra",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedTrip(t *testing.T, db *gorm.DB, seats int) *domain.Trip {
	t.Helper()

	origin := domain.Terminal{
		Name:         "Accra Central",
		TerminalType: domain.TerminalMainStation,
		Region:       "greater_accra",
		CityTown:     "Accra",
		IsActive:     true,
	}
	dest := domain.Terminal{
		Name:         "Kumasi Adum",
		TerminalType: domain.TerminalMainStation,
		Region:       "ashanti",
		CityTown:     "Kumasi",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&origin).Error)
	require.NoError(t, db.Create(&dest).Error)

	bus := domain.Bus{
		BusNumber:   "KE001",
		PlateNumber: "GR-1234-25",
		BusType:     domain.BusStandard,
		Status:      domain.BusActive,
		TotalSeats:  seats,
	}
	require.NoError(t, db.Create(&bus).Error)

	route := domain.Route{
		Name:              "Accra - Kumasi",
		OriginID:          origin.ID,
		DestinationID:     dest.ID,
		DistanceKM:        250,
		EstimatedDuration: 360,
		BaseFare:          120,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&route).Error)

	dep := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	trip := domain.Trip{
		RouteID:        route.ID,
		BusID:          bus.ID,
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(6 * time.Hour),
		Fare:           120,
		TotalSeats:     seats,
		AvailableSeats: seats,
		Status:         domain.TripScheduled,
	}
	require.NoError(t, db.Create(&trip).Error)
	return &trip
}

func newBooking(user *domain.User, trip *domain.Trip, seats int, ref string) *domain.Booking {
	fare := trip.Fare * float64(seats)
	return &domain.Booking{
		Reference:       ref,
		UserID:          user.ID,
		TripID:          trip.ID,
		Seats:           seats,
		FarePerSeat:     trip.Fare,
		TotalFare:       fare,
		BookingFee:      domain.BookingFee,
		TotalAmount:     fare + domain.BookingFee,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentDeadline: time.Now().Add(2 * time.Hour),
	}
}

func tripSeats(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()

	var trip domain.Trip
	require.NoError(t, db.First(&trip, id).Error)
	return trip.AvailableSeats
}
