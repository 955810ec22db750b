package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	serial := &pq.Error{Code: pq.ErrorCode(pgerrcode.SerializationFailure)}
	deadlock := &pq.Error{Code: pq.ErrorCode(pgerrcode.DeadlockDetected)}
	check := &pq.Error{Code: pq.ErrorCode(pgerrcode.CheckViolation)}

	assert.True(t, isRetryable(serial))
	assert.True(t, isRetryable(fmt.Errorf("store: commit transaction: %w", serial)))
	assert.True(t, isRetryable(deadlock))
	assert.False(t, isRetryable(check))
	assert.False(t, isRetryable(errors.New("plain")))
	assert.False(t, isRetryable(nil))
}

func TestPgCode(t *testing.T) {
	assert.Equal(t, pgerrcode.CheckViolation, pgCode(&pq.Error{Code: pq.ErrorCode(pgerrcode.CheckViolation)}))
	assert.Empty(t, pgCode(errors.New("x")))
}
