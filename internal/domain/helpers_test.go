package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func pinClock(t *testing.T) {
	t.Helper()
	prev := now
	now = func() time.Time { return fixedNow }
	t.Cleanup(func() { now = prev })
}

func requireDomainError(t *testing.T, err error, kind *Error) *Error {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var de *Error
	require.ErrorAs(t, err, &de)
	return de
}

func ptr[T any](v T) *T {
	return &v
}
