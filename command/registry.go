package command

import (
	"sort"

	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
)

// Spec describes one command type.
type Spec struct {
	Type Type
	// Payload is a zero value of the payload type, nil for bare commands.
	Payload any
	// Structural commands change the show configuration and are refused on air.
	Structural bool
	// Internal commands are issued by timers and producers rather than operators.
	Internal bool
}

// Partial is the payload of commands that merge a subset of fields.
type Partial map[string]any

var (
	str  = ""
	num  = 0.0
	ms   = 0
	spec = map[Type]Spec{}
)

func register(t Type, payload any, flags ...func(*Spec)) {
	s := Spec{Type: t, Payload: payload}
	for _, f := range flags {
		f(&s)
	}
	spec[t] = s
}

func structural(s *Spec) { s.Structural = true }
func internal(s *Spec)   { s.Internal = true }

func init() {
	register(SetPreview, str)
	register(SwitcherCut, nil)
	register(SwitcherAuto, nil)
	register(SwitcherSetTransitionType, models.TransitionType(""))
	register(SwitcherSetDuration, ms)
	register(SwitcherSetProgress, Progress{})

	register(AudioSetFaderLevel, FaderLevel{})
	register(AudioSetGainTrim, GainTrim{})
	register(AudioToggleMute, str)
	register(AudioToggleSolo, str)
	register(AudioSetEQ, EQSetting{})
	register(AudioSetCompressor, CompressorSetting{})
	register(AudioSetGate, GateSetting{})
	register(AudioSetPan, PanSetting{})
	register(AudioToggleHPF, str)
	register(AudioSetBusSend, BusSend{})
	register(AudioUpdateSource, Update{})
	register(AudioSetFXState, Partial{})
	register(AudioSetMixMinus, MixMinus{})
	register(AudioLinkSource, AudioLink{})
	register(AudioUnlinkSource, str)

	register(ConsoleToggleAFV, nil)
	register(ConsoleToggleMicLock, nil)
	register(UIToggleSingleModePane, models.Panel(""))
	register(UISetTheme, str)
	register(SetupComplete, nil)

	register(VJSetMode, models.VJMode(""))
	register(VJSetCrossfade, num)
	register(VJAssignDeck, DeckAssign{})
	register(VJClearDeck, DeckClear{})

	register(MasterGoLive, nil)
	register(MasterToggleRecord, nil)
	register(OutputSetState, Partial{})
	register(TimerTick, Tick{}, internal)
	register(SystemTriggerFailsafe, nil)
	register(SystemSetHealth, Partial{})
	register(SystemHealthSample, Partial{}, internal)
	register(SaveConfiguration, PresetName{}, structural)
	register(LoadConfiguration, ms, structural)
	register(SessionUpdateMetadata, Partial{}, structural)

	register(ScoreboardSetState, scoreboard.State{})
	register(ScoreboardLoadSport, str)
	register(ScoreboardAction, str)
	register(ScoreboardClockTick, nil, internal)
	register(OverlayAdd, models.Overlay{})
	register(OverlayRemove, str)
	register(OverlayToggle, str)
	register(OverlayUpdateContent, ContentUpdate{})
	register(CommentConfigUpdate, Partial{})
	register(LightingSetScene, str)
	register(LightingSetIntensity, num)
	register(LightingSetColorTemp, num)
	register(BrandingUpdate, Partial{})
	register(AISetSuggestions, []models.AISuggestion{})
	register(AIAddSuggestion, Suggestion{}, internal)
	register(AIGenerateTitle, TitleRequest{})
	register(ReplayTrigger, ReplayRequest{})
	register(ReplayToggleSlowMo, nil)
	register(ReplayReturnLive, nil)
	register(ReplayAutoReturn, ReplayReturn{}, internal)
	register(StreamUpdate, Update{})
	register(StreamToggle, str)
	register(StreamConnectResult, ConnectResult{}, internal)
	register(GuestAddSimulated, GuestInvite{})
	register(GuestUpdate, Update{})
	register(GuestRemove, str)

	register(SourceAdd, models.Source{}, structural)
	register(SourceBatchAdd, SourceBatch{}, structural)
	register(SourceUpdate, Update{})
	register(SourceRemove, str, structural)
	register(SourceAddGuest, GuestPromotion{})
	register(SceneAdd, SceneName{}, structural)
	register(SceneRemove, str, structural)
	register(SceneUpdate, Update{})
	register(SceneAddLayer, LayerAdd{})
	register(SceneRemoveLayer, LayerRef{})
	register(SceneUpdateLayer, LayerUpdate{})
}

// Lookup returns the spec of a command type.
func Lookup(t Type) (Spec, bool) {
	s, ok := spec[t]
	return s, ok
}

// Known reports whether t belongs to the vocabulary.
func Known(t Type) bool {
	_, ok := spec[t]
	return ok
}

// IsStructural reports whether t is refused while the show is live.
func IsStructural(t Type) bool {
	return spec[t].Structural
}

// All returns every spec ordered by type name.
func All() []Spec {
	out := make([]Spec, 0, len(spec))
	for _, s := range spec {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Types returns every known type name, sorted.
func Types() []string {
	all := All()
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = string(s.Type)
	}
	return out
}
