package theme

import "os"

// Icons used by the CLI and the monitor. ONAIR_ICONS=ascii selects the
// plain set for terminals without the glyphs.
var (
	IconLive    = "●"
	IconRec     = "◉"
	IconMuted   = "✕"
	IconSolo    = "S"
	IconLock    = "🔒"
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconArrow   = "→"
)

func init() {
	if os.Getenv("ONAIR_ICONS") != "ascii" {
		return
	}
	IconLive = "*"
	IconRec = "(R)"
	IconMuted = "x"
	IconLock = "[L]"
	IconSuccess = "+"
	IconError = "!"
	IconWarning = "!"
	IconArrow = "->"
}
