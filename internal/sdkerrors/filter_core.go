package sdkerrors

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

type filterCore struct {
	zapcore.Core
}

// NewFilterCore drops error and warning entries whose message or error
// fields match known benign noise.
func NewFilterCore(core zapcore.Core) zapcore.Core {
	return &filterCore{Core: core}
}

func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: c.Core.With(fields)}
}

func (c *filterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}

	return checked
}

func (c *filterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel {
		message := entryText(entry, fields)
		if entry.Level == zapcore.WarnLevel && IsBenignWarning(message) {
			return nil
		}
		if entry.Level >= zapcore.ErrorLevel && IsBenignError(message) {
			return nil
		}
	}

	return c.Core.Write(entry, fields)
}

func entryText(entry zapcore.Entry, fields []zapcore.Field) string {
	parts := []string{entry.Message}
	for _, field := range fields {
		switch field.Type {
		case zapcore.StringType:
			parts = append(parts, field.String)
		case zapcore.ErrorType:
			if err, ok := field.Interface.(error); ok && err != nil {
				parts = append(parts, err.Error())
			}
		}
	}

	return strings.Join(parts, " ")
}
