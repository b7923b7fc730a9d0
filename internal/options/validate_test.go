package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/oaserrors"
)

func TestCountSet(t *testing.T) {
	assert.Equal(t, 0, CountSet())
	assert.Equal(t, 0, CountSet(false, false))
	assert.Equal(t, 2, CountSet(true, false, true))
}

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantMsg string
	}{
		{name: "none", sources: []bool{false, false, false}, wantMsg: "need one"},
		{name: "no sources at all", sources: nil, wantMsg: "need one"},
		{name: "one", sources: []bool{false, true, false}},
		{name: "two", sources: []bool{true, true, false}, wantMsg: "only one"},
		{name: "all", sources: []bool{true, true, true}, wantMsg: "only one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("need one", "only one", tt.sources...)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))

			var cfgErr *oaserrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "input", cfgErr.Option)
		})
	}
}
