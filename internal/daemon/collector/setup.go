package collector

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/services"
)

// SetupCollector registers discovered capture devices on first boot.
type SetupCollector struct {
	discovery services.DeviceDiscovery
	logger    *logrus.Entry
}

// NewSetupCollector creates a SetupCollector.
func NewSetupCollector(d services.DeviceDiscovery, logger *logrus.Entry) *SetupCollector {
	return &SetupCollector{discovery: d, logger: logger}
}

// Name returns the collector's name.
func (c *SetupCollector) Name() string { return "setup" }

// Run imports the devices once and marks setup complete. It does nothing when
// setup already ran.
func (c *SetupCollector) Run(ctx context.Context, st *store.Store, out Sender) error {
	if st.State().Prefs.SetupCompleted {
		c.logger.Debug("Setup already completed")
		return nil
	}

	var batch command.SourceBatch
	if c.discovery != nil && c.discovery.RequestPermissions(ctx) {
		cams, err := c.discovery.ListCameras(ctx)
		if err != nil {
			return fmt.Errorf("list cameras: %w", err)
		}
		mics, err := c.discovery.ListMicrophones(ctx)
		if err != nil {
			return fmt.Errorf("list microphones: %w", err)
		}
		batch = Batch(cams, mics)
	} else {
		c.logger.Warn("Device permissions denied, continuing without discovered devices")
	}

	if len(batch.Video) > 0 || len(batch.Audio) > 0 {
		if err := out.Send(ctx, command.New(command.SourceBatchAdd, batch)); err != nil {
			return fmt.Errorf("register devices: %w", err)
		}
	}
	c.logger.WithField("cameras", len(batch.Video)).WithField("microphones", len(batch.Audio)).Info("Setup complete")
	return out.Send(ctx, command.Bare(command.SetupComplete))
}

// Batch maps discovered devices to sources and channel strips.
func Batch(cams, mics []services.Device) command.SourceBatch {
	var b command.SourceBatch
	for _, cam := range cams {
		b.Video = append(b.Video, models.Source{ID: cam.ID, Name: cam.Label, Type: models.SourceUSB, IsVisible: true})
	}
	for _, mic := range mics {
		b.Audio = append(b.Audio, models.NewInputChannel(mic.ID, mic.Label))
	}
	return b
}
