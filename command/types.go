package command

// Switcher
const (
	SetPreview                Type = "SET_PREVIEW"
	SwitcherCut               Type = "SWITCHER_CUT"
	SwitcherAuto              Type = "SWITCHER_AUTO"
	SwitcherSetTransitionType Type = "SWITCHER_SET_TRANSITION_TYPE"
	SwitcherSetDuration       Type = "SWITCHER_SET_TRANSITION_DURATION"
	SwitcherSetProgress       Type = "SWITCHER_SET_TRANSITION_PROGRESS"
)

// Audio console
const (
	AudioSetFaderLevel Type = "AUDIO_SET_FADER_LEVEL"
	AudioSetGainTrim   Type = "AUDIO_SET_GAIN_TRIM"
	AudioToggleMute    Type = "AUDIO_TOGGLE_MUTE"
	AudioToggleSolo    Type = "AUDIO_TOGGLE_SOLO"
	AudioSetEQ         Type = "AUDIO_SET_EQ"
	AudioSetCompressor Type = "AUDIO_SET_COMPRESSOR"
	AudioSetGate       Type = "AUDIO_SET_GATE"
	AudioSetPan        Type = "AUDIO_SET_PAN"
	AudioToggleHPF     Type = "AUDIO_TOGGLE_HPF"
	AudioSetBusSend    Type = "AUDIO_SET_BUS_SEND"
	AudioUpdateSource  Type = "AUDIO_UPDATE_SOURCE"
	AudioSetFXState    Type = "AUDIO_SET_FX_STATE"
	AudioSetMixMinus   Type = "AUDIO_SET_MIX_MINUS"
	AudioLinkSource    Type = "AUDIO_LINK_SOURCE"
	AudioUnlinkSource  Type = "AUDIO_UNLINK_SOURCE"
)

// Control surface
const (
	ConsoleToggleAFV       Type = "CONSOLE_TOGGLE_AFV"
	ConsoleToggleMicLock   Type = "CONSOLE_TOGGLE_MIC_LOCK"
	UIToggleSingleModePane Type = "UI_TOGGLE_SINGLE_MODE_PANEL"
	UISetTheme             Type = "UI_SET_THEME"
	SetupComplete          Type = "SETUP_COMPLETE"
)

// VJ mixer
const (
	VJSetMode      Type = "VJMixer_SET_MODE"
	VJSetCrossfade Type = "VJMixer_SET_CROSSFADE"
	VJAssignDeck   Type = "VJMixer_ASSIGN_DECK"
	VJClearDeck    Type = "VJMixer_CLEAR_DECK"
)

// Master output and system
const (
	MasterGoLive          Type = "MASTER_GO_LIVE"
	MasterToggleRecord    Type = "MASTER_TOGGLE_RECORD"
	OutputSetState        Type = "OUTPUT_SET_STATE"
	TimerTick             Type = "TIMER_TICK"
	SystemTriggerFailsafe Type = "SYSTEM_TRIGGER_FAILSAFE"
	SystemSetHealth       Type = "SYSTEM_SET_HEALTH"
	SystemHealthSample    Type = "SYSTEM_HEALTH_SAMPLE"
	SaveConfiguration     Type = "SAVE_CONFIGURATION"
	LoadConfiguration     Type = "LOAD_CONFIGURATION"
	SessionUpdateMetadata Type = "SESSION_UPDATE_METADATA"
)

// Scoreboard and overlays
const (
	ScoreboardSetState    Type = "SCOREBOARD_SET_STATE"
	ScoreboardLoadSport   Type = "SCOREBOARD_LOAD_SPORT"
	ScoreboardAction      Type = "SCOREBOARD_ACTION"
	ScoreboardClockTick   Type = "SCOREBOARD_CLOCK_TICK"
	OverlayAdd            Type = "OVERLAY_ADD"
	OverlayRemove         Type = "OVERLAY_REMOVE"
	OverlayToggle         Type = "OVERLAY_TOGGLE"
	OverlayUpdateContent  Type = "OVERLAY_UPDATE_CONTENT"
	CommentConfigUpdate   Type = "COMMENT_CONFIG_UPDATE"
	LightingSetScene      Type = "LIGHTING_SET_SCENE"
	LightingSetIntensity  Type = "LIGHTING_SET_MASTER_INTENSITY"
	LightingSetColorTemp  Type = "LIGHTING_SET_COLOR_TEMP"
	BrandingUpdate        Type = "BRANDING_UPDATE"
	AISetSuggestions      Type = "AI_SET_SUGGESTIONS"
	AIAddSuggestion       Type = "AI_ADD_SUGGESTION"
	AIGenerateTitle       Type = "AI_GENERATE_TITLE"
	ReplayTrigger         Type = "REPLAY_TRIGGER"
	ReplayToggleSlowMo    Type = "REPLAY_TOGGLE_SLOMO"
	ReplayReturnLive      Type = "REPLAY_RETURN_LIVE"
	ReplayAutoReturn      Type = "REPLAY_AUTO_RETURN"
	StreamUpdate          Type = "STREAM_UPDATE_DESTINATION"
	StreamToggle          Type = "STREAM_TOGGLE_DESTINATION"
	StreamConnectResult   Type = "STREAM_CONNECT_RESULT"
	GuestAddSimulated     Type = "GUEST_ADD_SIMULATED"
	GuestUpdate           Type = "GUEST_UPDATE"
	GuestRemove           Type = "GUEST_REMOVE"
)

// Sources and scenes
const (
	SourceAdd        Type = "SOURCE_ADD"
	SourceBatchAdd   Type = "SOURCE_BATCH_ADD"
	SourceUpdate     Type = "SOURCE_UPDATE"
	SourceRemove     Type = "SOURCE_REMOVE"
	SourceAddGuest   Type = "SOURCE_ADD_GUEST"
	SceneAdd         Type = "SCENE_ADD"
	SceneRemove      Type = "SCENE_REMOVE"
	SceneUpdate      Type = "SCENE_UPDATE"
	SceneAddLayer    Type = "SCENE_ADD_LAYER"
	SceneRemoveLayer Type = "SCENE_REMOVE_LAYER"
	SceneUpdateLayer Type = "SCENE_UPDATE_LAYER"
)
