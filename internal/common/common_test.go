package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("no such table")
	err := NewUserError("classifier unavailable", cause)

	assert.Equal(t, "classifier unavailable: no such table", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "classifier unavailable", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "bare", NewUserError("bare", nil).Error())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))
	slog.Debug("hidden")
	slog.Info("shown", "category", "Food")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"category":"Food"`)

	require.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}
