// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const errorKey = "LOG_ERROR"

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger carrying the given attributes on every record.
// It is the conventional way for a package to obtain its named logger:
//
//	var logger = log.WithContext("pkg", "tokenfarm")
func WithContext(ctx ...interface{}) Logger {
	return &contextLogger{ctx: ctx}
}

// contextLogger resolves the root logger at call time, so package-level
// loggers created before SetDefault still pick up the configured handler.
type contextLogger struct {
	ctx []interface{}
}

func (c *contextLogger) delegate() Logger {
	return Root().With(c.ctx...)
}

func (c *contextLogger) With(ctx ...interface{}) Logger {
	return &contextLogger{ctx: append(append([]interface{}{}, c.ctx...), ctx...)}
}

func (c *contextLogger) New(ctx ...interface{}) Logger {
	return c.With(ctx...)
}

func (c *contextLogger) Log(level slog.Level, msg string, ctx ...interface{}) {
	c.delegate().Log(level, msg, ctx...)
}

func (c *contextLogger) Trace(msg string, ctx ...interface{}) {
	c.delegate().Trace(msg, ctx...)
}

func (c *contextLogger) Debug(msg string, ctx ...interface{}) {
	c.delegate().Debug(msg, ctx...)
}

func (c *contextLogger) Info(msg string, ctx ...interface{}) {
	c.delegate().Info(msg, ctx...)
}

func (c *contextLogger) Warn(msg string, ctx ...interface{}) {
	c.delegate().Warn(msg, ctx...)
}

func (c *contextLogger) Error(msg string, ctx ...interface{}) {
	c.delegate().Error(msg, ctx...)
}

func (c *contextLogger) Crit(msg string, ctx ...interface{}) {
	c.delegate().Crit(msg, ctx...)
}

func (c *contextLogger) Write(level slog.Level, msg string, attrs ...any) {
	c.delegate().Write(level, msg, attrs...)
}

func (c *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return c.delegate().Enabled(ctx, level)
}

func (c *contextLogger) Handler() slog.Handler {
	return c.delegate().Handler()
}

// The following functions bypass the exported logger methods (logger.Debug,
// etc.) to keep the call depth the same for all paths to logger.Write so
// runtime.Caller(2) always refers to the call site in client code.

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...interface{}) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...interface{}) {
	Root().Write(slog.LevelDebug, msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...interface{}) {
	Root().Write(slog.LevelInfo, msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...interface{}) {
	Root().Write(slog.LevelWarn, msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...interface{}) {
	Root().Write(slog.LevelError, msg, ctx...)
}

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...interface{}) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// New returns a new logger with the given context.
// New is a convenient alias for Root().New
func New(ctx ...interface{}) Logger {
	return Root().New(ctx...)
}
