package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// coreWithLevel wraps a zapcore.Core and enables dynamic change of the logging
// level.
//
// Given how zap cores work, the level can only be changed to a more
// restrictive one: if the wrapped core is set to Warn, coreWithLevel can limit
// logging to Error and above, but cannot widen it to Debug or Info. The
// recommended usage is therefore to wrap a core configured at Debug level and
// restrict it through coreWithLevel.
type coreWithLevel struct {
	zapcore.Core

	lvl *zap.AtomicLevel
}

// Enabled returns true if the given level is at or above the configured
// level of both the wrapper and the core.
func (c *coreWithLevel) Enabled(level zapcore.Level) bool {
	return c.lvl.Enabled(level) && c.Core.Enabled(level)
}

// Check determines whether the supplied Entry should be logged.
func (c *coreWithLevel) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	// Instantiation of CheckedEntry happens within zap's private ioCore, so we
	// must delegate to the wrapped c.Core. The wrapped core only returns
	// non-nil if it is set at a level that accepts the entry, which is why
	// coreWithLevel can only further restrict the logging level.
	if !c.lvl.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

// With adds structured context to the Core. Zap returns a new private ioCore,
// so the result must be wrapped again within a coreWithLevel.
func (c *coreWithLevel) With(fields []zapcore.Field) zapcore.Core {
	core := c.Core.With(fields)
	return &coreWithLevel{
		Core: core,
		lvl:  c.lvl,
	}
}

// wrapCoreWithLevel returns a zap.Option that wraps the current logger core
// within a coreWithLevel at the given level.
func wrapCoreWithLevel(l *zap.AtomicLevel) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		newCore := &coreWithLevel{
			Core: core,
			lvl:  l,
		}

		// If core is already a coreWithLevel we want to wrap the underlying
		// core, which is configured at Debug level.
		lvlCore, ok := core.(*coreWithLevel)
		if ok {
			newCore.Core = lvlCore.Core
		}

		return newCore
	})
}
