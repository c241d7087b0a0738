package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const txnAttempts = 3

// retriableTxnError reports driver failures a fresh attempt can recover
// from: postgres serialization aborts and sqlite busy locks.
func retriableTxnError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// runTxn runs fn in one transaction, retrying retriable driver errors a
// bounded number of times. Exhausted retries surface as
// ErrConcurrentModification so callers can treat the failure as
// transient.
func runTxn(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txnAttempts; attempt++ {
		if err = db.Transaction(fn); err == nil || !retriableTxnError(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return fmt.Errorf("%w: %v", ErrConcurrentModification, err)
}
