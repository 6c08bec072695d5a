package resilience

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider down")

func TestBreakerOpensAfterFailures(t *testing.T) {
	cb := NewBreaker[string](BreakerConfig{Name: "test-open", MinRequests: 3, FailureRatio: 0.5})

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (string, error) { return "", errProvider })
		require.ErrorIs(t, err, errProvider)
	}

	_, err := cb.Execute(func() (string, error) { return "ok", nil })
	assert.True(t, IsRejected(err))
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	errBadInput := errors.New("bad input")
	cb := NewBreaker[string](BreakerConfig{
		Name:         "test-client-errors",
		MinRequests:  2,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errBadInput) },
	})

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (string, error) { return "", errBadInput })
		require.ErrorIs(t, err, errBadInput)
	}

	got, err := cb.Execute(func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}
