package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	require.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	l, err = New(" WARN ")
	require.NoError(t, err)
	require.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestNewUnknownLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)
}
