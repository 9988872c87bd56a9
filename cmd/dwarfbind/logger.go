package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// verbosityLevel maps a repeated -v count to a zap level, one step below
// ERROR per added flag (spec §6): no flags logs only ERROR, one step
// reaches WARN, two reaches INFO, three or more reaches DEBUG.
func verbosityLevel(count int) zapcore.Level {
	switch {
	case count <= 0:
		return zapcore.ErrorLevel
	case count == 1:
		return zapcore.WarnLevel
	case count == 2:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// setupLogger builds the process-wide logger: encoder matching the
// teacher's plain development style, sink to logPath when set (spec §6's
// --log) or stderr otherwise.
func setupLogger(verbosity int, logPath string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(cfg)

	var ws zapcore.WriteSyncer
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		ws = zapcore.AddSync(f)
	} else {
		ws = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(encoder, ws, verbosityLevel(verbosity))
	return zap.New(core), nil
}
