package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("chatty"))
}

func TestNewFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, closer, err := NewFileLogger(WarnLevel, dir, time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	l.Info("skipped below level")
	l.WithField("roomId", "r1").Warn("room %s double booked", "101")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app-2030-06-01.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "room 101 double booked")
	assert.Contains(t, string(data), "roomId=r1")
	assert.NotContains(t, string(data), "skipped below level")
}
