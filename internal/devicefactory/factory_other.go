//go:build !linux

package devicefactory

import (
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
	"github.com/srg/bonded/internal/device/goble"
	"github.com/srg/bonded/pkg/config"
)

// go-ble registers a backend only where it has one (darwin); elsewhere the
// provider reports no adapter.
func newPlatformProvider(cfg *config.Config, logger *logrus.Logger) (device.Provider, error) {
	if cfg.Adapter != "" {
		logger.WithField("adapter", cfg.Adapter).Warn("Adapter selection is ignored on this platform")
	}
	return goble.NewProvider(logger), nil
}
