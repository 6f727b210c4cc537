package scoreboard

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Special verbs handled outside the declarative action table.
const (
	StartStopClock   = "START_STOP_CLOCK"
	ResetMatch       = "RESET_MATCH"
	UndoEvent        = "UNDO_EVENT"
	ToggleScoreboard = "TOGGLE_SCOREBOARD"
	NextInningHalf   = "NEXT_INNING_HALF"
)

var specialVerbs = map[string]bool{
	StartStopClock:   true,
	ResetMatch:       true,
	UndoEvent:        true,
	ToggleScoreboard: true,
	NextInningHalf:   true,
}

// IsSpecial reports whether id is a hardcoded verb.
func IsSpecial(id string) bool {
	return specialVerbs[id]
}

// Team is one side of a match.
type Team struct {
	Name  string  `json:"name"`
	Short string  `json:"short"`
	Score float64 `json:"score"`
	Color string  `json:"color"`
	Logo  *string `json:"logo"`
}

// Clock is the main game clock.
type Clock struct {
	Running bool   `json:"running"`
	Seconds int    `json:"seconds"`
	Display string `json:"display"`
}

// Period is the current period/half/quarter.
type Period struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}

// UI lists the buttons a control surface shows.
type UI struct {
	PrimaryActions   []string `json:"primaryActions"`
	SecondaryActions []string `json:"secondaryActions"`
}

// Action is one entry of the declarative action table.
type Action struct {
	Delta   map[string]any `json:"delta,omitempty"`
	Toggle  string         `json:"toggle,omitempty"`
	Set     map[string]any `json:"set,omitempty"`
	Special string         `json:"special,omitempty"`
}

// Event is one entry of the audit log.
type Event struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Board is the typed view over the fields every sport shares.
type Board struct {
	SportID string            `json:"sportId"`
	MatchID string            `json:"matchId"`
	Status  string            `json:"status"`
	Home    Team              `json:"home"`
	Away    Team              `json:"away"`
	Clock   Clock             `json:"clock"`
	Period  Period            `json:"period"`
	Rules   map[string]any    `json:"rules"`
	Events  []Event           `json:"events"`
	UI      UI                `json:"ui"`
	Actions map[string]Action `json:"actions"`
}

// Board decodes the typed view of the tree.
func (s State) Board() (Board, error) {
	var b Board
	if err := decodeTree(map[string]any(s), &b); err != nil {
		return b, fmt.Errorf("decoding scoreboard %q: %w", s.SportID(), err)
	}
	return b, nil
}

func decodeTree(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Action looks up an entry of the action table.
func (s State) Action(id string) (Action, bool) {
	actions, ok := asMap(s["actions"])
	if !ok {
		return Action{}, false
	}
	raw, ok := asMap(actions[id])
	if !ok {
		return Action{}, false
	}
	var a Action
	if err := decodeTree(raw, &a); err != nil {
		return Action{}, false
	}
	return a, true
}

// ValidateDefinition checks that every button has an action or is a special verb.
func ValidateDefinition(s State) error {
	b, err := s.Board()
	if err != nil {
		return err
	}
	var missing []string
	for _, group := range [][]string{b.UI.PrimaryActions, b.UI.SecondaryActions} {
		for _, id := range group {
			if IsSpecial(id) {
				continue
			}
			a, ok := b.Actions[id]
			if !ok {
				missing = append(missing, id)
				continue
			}
			if a.Special != "" && !IsSpecial(a.Special) {
				missing = append(missing, id)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("sport %q: buttons without actions: %v", b.SportID, missing)
	}
	return nil
}
