package logger

import (
	"os"

	"go.uber.org/zap"
)

var L *zap.Logger = zap.NewNop()

// Init builds the process logger. APP_ENV=development switches to the
// human-readable console encoder.
func Init() {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("APP_ENV") == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	L = l
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = L.Sync()
}
