package console

import (
	"fmt"
	"time"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

func init() {
	bare(command.MasterGoLive, func(t *tx) error {
		if t.s.IsLive {
			t.goOffAir()
		} else {
			t.goLive()
		}
		return nil
	})
	bare(command.MasterToggleRecord, func(t *tx) error {
		t.s.IsRecording = !t.s.IsRecording
		if t.s.IsRecording {
			t.emit(t.counter(command.TimerRecording))
		} else {
			t.s.RecordingSeconds = 0
			t.emit(cancel(KeyRecordingTimer))
		}
		return nil
	})
	on(command.TimerTick, func(t *tx, p command.Tick) error {
		switch p.Timer {
		case command.TimerLive:
			if t.s.IsLive {
				t.s.LiveSeconds++
			}
		case command.TimerRecording:
			if t.s.IsRecording {
				t.s.RecordingSeconds++
			}
		}
		return nil
	})
	bare(command.SystemTriggerFailsafe, func(t *tx) error {
		pol := t.policy()
		t.s.ProgramID = pol.SafeSourceID
		t.s.Lighting.ActiveSceneID = models.StringPtr(pol.SafeLightingSceneID)
		t.s.Transition.IsActive, t.s.Transition.Progress = false, 0
		return nil
	})
	on(command.SystemSetHealth, func(t *tx, p command.Partial) error {
		return t.mergeHealth(command.SystemSetHealth, p)
	})
	// Samples from a health task that fired before going off air are dropped.
	on(command.SystemHealthSample, func(t *tx, p command.Partial) error {
		if !t.s.IsLive {
			return nil
		}
		return t.mergeHealth(command.SystemHealthSample, p)
	})
	on(command.OutputSetState, func(t *tx, p command.Partial) error {
		next := t.s.Output
		if err := mergeValues(&next, p); err != nil {
			return oaerrors.InvalidPayload(string(command.OutputSetState), err)
		}
		if !models.ValidResolution(next.Resolution) {
			return oaerrors.InvalidPayload(string(command.OutputSetState), fmt.Errorf("unsupported resolution %q", next.Resolution))
		}
		if !models.ValidFPS(next.FPS) {
			return oaerrors.InvalidPayload(string(command.OutputSetState), fmt.Errorf("unsupported frame rate %d", next.FPS))
		}
		t.s.Output = next
		return nil
	})

	on(command.ReplayTrigger, func(t *tx, p command.ReplayRequest) error {
		if t.s.Replay.IsActive {
			return nil
		}
		gen := t.s.Replay.Generation + 1
		t.s.Replay = models.Replay{IsActive: true, Generation: gen}
		delay := time.Duration(p.Duration * float64(time.Second))
		t.emit(after(KeyReplayReturn, delay,
			command.New(command.ReplayAutoReturn, command.ReplayReturn{Generation: gen})))
		return nil
	})
	bare(command.ReplayToggleSlowMo, func(t *tx) error {
		if t.s.Replay.IsActive {
			t.s.Replay.IsSlowMo = !t.s.Replay.IsSlowMo
		}
		return nil
	})
	bare(command.ReplayReturnLive, func(t *tx) error {
		if t.s.Replay.IsActive {
			t.s.Replay.IsActive = false
			t.emit(cancel(KeyReplayReturn))
		}
		return nil
	})
	on(command.ReplayAutoReturn, func(t *tx, p command.ReplayReturn) error {
		if t.s.Replay.IsActive && t.s.Replay.Generation == p.Generation {
			t.s.Replay.IsActive = false
		}
		return nil
	})

	on(command.UIToggleSingleModePane, func(t *tx, panel models.Panel) error {
		cs := &t.s.ControlSurface
		if cs.ActiveSingleModePanel == panel {
			cs.ActiveSingleModePanel = models.PanelNone
		} else {
			cs.ActiveSingleModePanel = panel
		}
		return nil
	})
	on(command.UISetTheme, func(t *tx, theme string) error {
		if theme == "" || theme == t.s.Prefs.Theme {
			return nil
		}
		t.s.Prefs.Theme = theme
		t.emit(Effect{Kind: EffectPersistPrefs})
		return nil
	})
	bare(command.SetupComplete, func(t *tx) error {
		if t.s.Prefs.SetupCompleted {
			return nil
		}
		t.s.Prefs.SetupCompleted = true
		t.emit(Effect{Kind: EffectPersistPrefs})
		return nil
	})
}

func (t *tx) goLive() {
	t.s.IsLive = true
	t.emit(t.counter(command.TimerLive))
	if !t.s.IsRecording {
		t.s.IsRecording = true
		t.emit(t.counter(command.TimerRecording))
	}
	t.emit(everyTask(KeyHealth, t.policy().HealthInterval, Task{Kind: TaskHealth}))
}

func (t *tx) goOffAir() {
	t.s.IsLive = false
	t.s.LiveSeconds = 0
	t.s.SystemHealth.Bitrate = 0
	t.s.SystemHealth.DroppedFrames = 0
	t.s.SystemHealth.Latency = 0
	t.emit(cancel(KeyLiveTimer), cancel(KeyHealth))
}

func (t *tx) counter(timer string) Effect {
	key := KeyLiveTimer
	if timer == command.TimerRecording {
		key = KeyRecordingTimer
	}
	return every(key, t.policy().TickInterval, command.New(command.TimerTick, command.Tick{Timer: timer}))
}

func (t *tx) mergeHealth(typ command.Type, p command.Partial) error {
	next := t.s.SystemHealth
	if err := mergeValues(&next, p); err != nil {
		return oaerrors.InvalidPayload(string(typ), err)
	}
	t.s.SystemHealth = next
	return nil
}
