package engine

import (
	"context"
	"math"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/services"
)

// Health jitter while live.
const (
	baseBitrate      = 5200
	bitrateJitter    = 800
	baseLatency      = 20
	latencyJitter    = 15
	dropProbability  = 0.02
	temperatureDrift = 0.1
)

// produce runs a task and returns the one command it yields, if any.
func (e *Engine) produce(ctx context.Context, task console.Task) (command.Command, bool) {
	log := e.logger.WithField("task", string(task.Kind))
	switch task.Kind {
	case console.TaskHealth:
		return e.sampleHealth(), true

	case console.TaskStreamConnect:
		res := e.services.Probe.Connect(ctx, task.Target)
		log.WithField("destination", task.Target).WithField("ok", res.OK).Debug("Stream probe finished")
		return command.New(command.StreamConnectResult, command.ConnectResult{
			ID: task.Target, OK: res.OK, Viewers: res.Viewers,
		}), true

	case console.TaskGenerateTitle:
		text := e.services.Text.Generate(ctx, services.TitlePrompt(task.Prompt))
		return command.New(command.OverlayUpdateContent, command.ContentUpdate{
			ID: task.Target, Content: map[string]any{"subtitle": text},
		}), true

	case console.TaskGenerateIdeas:
		text := e.services.Text.Generate(ctx, services.TitlePrompt(task.Prompt))
		return command.New(command.AIAddSuggestion, command.Suggestion{Text: text}), true
	}
	log.Warn("Unknown task")
	return command.Command{}, false
}

// sampleHealth jitters the current telemetry the way a live encoder drifts.
func (e *Engine) sampleHealth() command.Command {
	h := e.store.State().SystemHealth

	e.rngMu.Lock()
	bitrate := baseBitrate + e.rng.IntN(bitrateJitter)
	latency := baseLatency + e.rng.IntN(latencyJitter)
	dropped := e.rng.Float64() < dropProbability
	e.rngMu.Unlock()

	frames := h.DroppedFrames
	if dropped {
		frames++
	}
	return command.New(command.SystemHealthSample, command.Partial{
		"bitrate":       float64(bitrate),
		"droppedFrames": frames,
		"temperature":   math.Round((h.Temperature+temperatureDrift)*10) / 10,
		"latency":       float64(latency),
	})
}
