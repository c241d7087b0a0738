package refnum

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MaxAttempts bounds retry loops that regenerate a reference after a
// unique-constraint collision.
const MaxAttempts = 3

// ErrDuplicateReference is returned when a unique reference could not
// be produced within MaxAttempts.
var ErrDuplicateReference = errors.New("could not generate a unique reference number")

// Generator hands out sequential reference numbers backed by the
// sequence_counters table. Each named counter is bumped with a single
// upsert, so concurrent callers never observe the same value.
type Generator struct {
	db *gorm.DB
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// Next increments the named counter and returns the new value. When tx
// is non-nil the increment runs on it and commits or rolls back with
// the caller's transaction, which keeps counters exact even if the
// surrounding insert fails.
func (g *Generator) Next(tx *gorm.DB, name string) (int64, error) {
	if tx == nil {
		tx = g.db
	}
	var value int64
	err := tx.Raw(`
		INSERT INTO sequence_counters (name, last_value)
		VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET last_value = sequence_counters.last_value + 1
		RETURNING last_value`, name).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// NextSequential draws the next counter value scoped to prefix+period
// and formats it, e.g. ("AG", "202501", 3) -> "AG202501003". Counters
// restart whenever the period string changes; pass an empty period for
// a single global counter.
func (g *Generator) NextSequential(tx *gorm.DB, prefix, period string, width int) (string, error) {
	name := prefix
	if period != "" {
		name += ":" + period
	}
	v, err := g.Next(tx, name)
	if err != nil {
		return "", err
	}
	return Sequential(prefix, period, v, width), nil
}

// Sequential formats an already-drawn counter value.
func Sequential(prefix, period string, value int64, width int) string {
	return fmt.Sprintf("%s%s%0*d", prefix, period, width, value)
}

// Random builds prefix + YYYYMMDD + n uppercase hex characters from a
// fresh UUID, e.g. "KB20250115A3F2B1". Collisions are unlikely but
// possible, so callers insert and retry on IsDuplicateKey.
func Random(prefix string, t time.Time, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + t.Format("20060102") + hex[:n]
}

// IsDuplicateKey reports whether err is a unique-constraint violation
// from postgres or sqlite.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
