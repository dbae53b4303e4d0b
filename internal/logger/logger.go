package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the application logger. Production mode uses the JSON encoder
// with sampling; development mode uses the console encoder.
func New(isProduction bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if isProduction {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}
