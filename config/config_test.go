package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestNegativeLimitsRejected(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"time", Config{TimeLimit: -1}, ErrNegativeTimeLimit},
		{"fail", Config{FailLimit: -1}, ErrNegativeFailLimit},
		{"solution", Config{SolutionLimit: -1}, ErrNegativeSolutionLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tc.cfg), tc.want)
		})
	}
}

func TestHasLimitHelpers(t *testing.T) {
	c := Config{FailLimit: 5}
	assert.True(t, c.HasFailLimit())
	assert.False(t, c.HasTimeLimit())
	assert.False(t, c.HasSolutionLimit())
}
