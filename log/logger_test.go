// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLegacyLevel(t *testing.T) {
	tests := []struct {
		legacy   int
		expected slog.Level
	}{
		{0, LevelCrit},
		{1, slog.LevelError},
		{2, slog.LevelWarn},
		{3, slog.LevelInfo},
		{4, slog.LevelDebug},
		{5, LevelTrace},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromLegacyLevel(tt.legacy))
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(JSONHandler(&buf))

	l.Info("deposit accepted", "amount", big.NewInt(100), "user", "alice")

	var parsed map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, "deposit accepted", parsed["msg"])
	assert.Equal(t, "100", parsed["amount"])
	assert.Equal(t, "alice", parsed["user"])
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, slog.LevelWarn, false))

	l.Debug("hidden")
	l.Info("also hidden")
	l.Warn("visible", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "key=value")
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogfmtHandler(&buf)).With("pkg", "tokenfarm")

	l.Info("started")
	assert.Contains(t, buf.String(), "pkg=tokenfarm")
	assert.Contains(t, buf.String(), "started")
}

func TestOddAttrPadding(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LogfmtHandler(&buf))

	// odd attr count must not panic; the dangling key is flagged
	l.Info("odd", "dangling")
	assert.Contains(t, buf.String(), errorKey)
}

func TestContextLoggerFollowsRoot(t *testing.T) {
	defer SetDefault(NewLogger(DiscardHandler()))

	ctxLogger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(NewLogger(LogfmtHandler(&buf)))

	// a context logger created before SetDefault picks up the new handler
	ctxLogger.Info("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, strings.ToLower(buf.String()), "pkg=test")
}
