package console

import (
	"fmt"
	"time"

	"github.com/grovetools/onair/command"
)

// EffectKind tells the engine what to do with an Effect.
type EffectKind int

const (
	// EffectAfter schedules a one-shot command or task.
	EffectAfter EffectKind = iota
	// EffectEvery schedules a repeating command or task.
	EffectEvery
	// EffectCancel drops a scheduled key.
	EffectCancel
	// EffectPersistPresets writes the saved configurations to storage.
	EffectPersistPresets
	// EffectPersistPrefs writes the boot flags.
	EffectPersistPrefs
)

func (k EffectKind) String() string {
	switch k {
	case EffectAfter:
		return "after"
	case EffectEvery:
		return "every"
	case EffectCancel:
		return "cancel"
	case EffectPersistPresets:
		return "persist-presets"
	case EffectPersistPrefs:
		return "persist-prefs"
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

// TaskKind names a producer the engine runs when a scheduled key fires.
type TaskKind string

const (
	TaskHealth        TaskKind = "health"
	TaskStreamConnect TaskKind = "stream-connect"
	TaskGenerateTitle TaskKind = "generate-title"
	// TaskGenerateIdeas yields an AI_ADD_SUGGESTION instead of an overlay update.
	TaskGenerateIdeas TaskKind = "generate-suggestions"
)

// Task is work done outside the dispatcher. A task yields at most one command.
type Task struct {
	Kind TaskKind
	// Target is the entity the task reports on (stream or overlay id).
	Target string
	Prompt string
}

// Effect is a side effect requested by a dispatch. The dispatcher never
// performs effects itself.
type Effect struct {
	Kind  EffectKind
	Key   string
	Delay time.Duration
	// Exactly one of Command and Task is set for After and Every.
	Command *command.Command
	Task    *Task
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectAfter, EffectEvery:
		return fmt.Sprintf("%s %s %s", e.Kind, e.Key, e.Delay)
	case EffectCancel:
		return fmt.Sprintf("%s %s", e.Kind, e.Key)
	}
	return e.Kind.String()
}

// Scheduler keys.
const (
	KeyLiveTimer       = "timer:live"
	KeyRecordingTimer  = "timer:recording"
	KeyHealth          = "health"
	KeyScoreboardClock = "scoreboard:clock"
	KeyReplayReturn    = "replay:return"
)

// OverlayExpireKey is the key of the removal timer of a comment overlay.
func OverlayExpireKey(id string) string { return "overlay-expire:" + id }

// StreamConnectKey is the key of the pending connect probe of a destination.
func StreamConnectKey(id string) string { return "stream-connect:" + id }

// GenerateTitleKey is the key of a pending text generation.
func GenerateTitleKey(overlayID string) string {
	if overlayID == "" {
		return "ai:suggestion"
	}
	return "ai:title:" + overlayID
}

func after(key string, d time.Duration, cmd command.Command) Effect {
	return Effect{Kind: EffectAfter, Key: key, Delay: d, Command: &cmd}
}

func every(key string, d time.Duration, cmd command.Command) Effect {
	return Effect{Kind: EffectEvery, Key: key, Delay: d, Command: &cmd}
}

func afterTask(key string, d time.Duration, task Task) Effect {
	return Effect{Kind: EffectAfter, Key: key, Delay: d, Task: &task}
}

func everyTask(key string, d time.Duration, task Task) Effect {
	return Effect{Kind: EffectEvery, Key: key, Delay: d, Task: &task}
}

func cancel(key string) Effect {
	return Effect{Kind: EffectCancel, Key: key}
}
