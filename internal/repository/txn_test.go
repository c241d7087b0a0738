package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRunTxn_ExhaustsRetriesOnBusy(t *testing.T) {
	db := testDB(t)

	attempts := 0
	err := runTxn(db, func(tx *gorm.DB) error {
		attempts++
		return errors.New("database is locked (5) (SQLITE_BUSY)")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConcurrentModification)
	assert.Equal(t, txnAttempts, attempts)
}

func TestRunTxn_DoesNotRetryOrdinaryErrors(t *testing.T) {
	db := testDB(t)

	boom := errors.New("boom")
	attempts := 0
	err := runTxn(db, func(tx *gorm.DB) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestRunTxn_RecoversAfterTransientFailure(t *testing.T) {
	db := testDB(t)

	attempts := 0
	err := runTxn(db, func(tx *gorm.DB) error {
		attempts++
		if attempts == 1 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
