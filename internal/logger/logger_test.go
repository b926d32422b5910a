package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		wantErr bool
		enabled zapcore.Level
	}{
		{"prod defaults to info", "prod", "", false, zapcore.InfoLevel},
		{"local defaults to debug", "local", "", false, zapcore.DebugLevel},
		{"override level", "development", "warn", false, zapcore.WarnLevel},
		{"unknown env", "staging-ish", "", true, 0},
		{"bad level", "prod", "loud", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(tt.env, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.enabled))
			if tt.enabled > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.enabled-1))
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
