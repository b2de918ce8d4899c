package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}

func TestValidateDurationRange(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		min     time.Duration
		max     time.Duration
		wantErr bool
	}{
		{name: "inside", d: 10 * time.Second, min: time.Second, max: time.Minute},
		{name: "min inclusive", d: time.Second, min: time.Second, max: time.Minute},
		{name: "max inclusive", d: time.Minute, min: time.Second, max: time.Minute},
		{name: "below", d: time.Millisecond, min: time.Second, max: time.Minute, wantErr: true},
		{name: "above", d: time.Hour, min: time.Second, max: time.Minute, wantErr: true},
		{name: "inverted range", d: time.Second, min: time.Minute, max: time.Second, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDurationRange(tt.d, tt.min, tt.max)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
