package reactive

import (
	"io"
	"log/slog"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ReactiveContext carries the subscriber that is performing its initial read,
// if any. Every Object observed through a context shares its slot.
//
// A ReactiveContext is not safe for concurrent use. Goroutines that build
// bindings at the same time need one context each.
type ReactiveContext struct {
	// target is the watcher currently registering itself, nil otherwise
	target Subscriber
	logger *slog.Logger
}

func NewReactiveContext(logger *slog.Logger) *ReactiveContext {
	return &ReactiveContext{logger: logger}
}

// Target returns the subscriber currently collecting its dependencies.
func (rc *ReactiveContext) Target() Subscriber {
	return rc.target
}

func (rc *ReactiveContext) Logger() *slog.Logger {
	if rc.logger == nil {
		return discardLogger
	}
	return rc.logger
}
