package services

import (
	"context"

	"github.com/grovetools/onair/config"
)

// StaticDiscovery reports a fixed device list.
type StaticDiscovery struct {
	Cameras     []Device
	Microphones []Device
	// Denied makes RequestPermissions fail.
	Denied bool
}

// DiscoveryFromConfig builds a StaticDiscovery from the devices section.
func DiscoveryFromConfig(cfg config.DevicesConfig) *StaticDiscovery {
	d := &StaticDiscovery{}
	for _, c := range cfg.Cameras {
		d.Cameras = append(d.Cameras, Device{ID: c.ID, Label: c.Label})
	}
	for _, m := range cfg.Microphones {
		d.Microphones = append(d.Microphones, Device{ID: m.ID, Label: m.Label})
	}
	return d
}

func (d *StaticDiscovery) RequestPermissions(ctx context.Context) bool {
	return !d.Denied && ctx.Err() == nil
}

func (d *StaticDiscovery) ListCameras(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Device(nil), d.Cameras...), nil
}

func (d *StaticDiscovery) ListMicrophones(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Device(nil), d.Microphones...), nil
}
