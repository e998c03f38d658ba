package devicefactory

import (
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
	"github.com/srg/bonded/pkg/config"
)

// ProviderFactory creates the device.Provider for the running platform.
// This is a variable so that it can be overridden in tests.
var ProviderFactory = func(cfg *config.Config, logger *logrus.Logger) (device.Provider, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return newPlatformProvider(cfg, logger)
}
