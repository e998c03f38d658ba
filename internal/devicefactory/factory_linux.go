//go:build linux

package devicefactory

import (
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/device"
	"github.com/srg/bonded/internal/device/bluez"
	"github.com/srg/bonded/pkg/config"
)

func newPlatformProvider(cfg *config.Config, logger *logrus.Logger) (device.Provider, error) {
	return bluez.NewProvider(cfg.Adapter, logger), nil
}
