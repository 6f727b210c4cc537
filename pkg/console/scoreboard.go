package console

import (
	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
)

func init() {
	on(command.ScoreboardSetState, func(t *tx, next scoreboard.State) error {
		was := clockRunning(t.s.Scoreboard)
		t.s.Scoreboard = next.Clone()
		t.syncClock(was, true)
		return nil
	})
	on(command.ScoreboardLoadSport, func(t *tx, sportID string) error {
		was := clockRunning(t.s.Scoreboard)
		t.s.Scoreboard = t.d.scoreboard.Load(sportID)
		t.s.ScoreboardHistory = nil
		t.syncClock(was, false)
		return nil
	})
	on(command.ScoreboardAction, func(t *tx, actionID string) error {
		was := clockRunning(t.s.Scoreboard)
		res, err := t.d.scoreboard.Apply(t.s.Scoreboard, t.s.ScoreboardHistory, actionID, t.d.now())
		if err != nil {
			return err
		}
		t.s.Scoreboard, t.s.ScoreboardHistory = res.State, res.History
		if res.Special == scoreboard.ToggleScoreboard {
			if i := t.s.OverlayIndex(models.ScoreboardOverlayID); i >= 0 {
				t.s.Overlays[i].Active = !t.s.Overlays[i].Active
			}
		}
		t.syncClock(was, false)
		return nil
	})
	bare(command.ScoreboardClockTick, func(t *tx) error {
		next, ok := t.d.scoreboard.Tick(t.s.Scoreboard)
		if !ok {
			t.emit(cancel(KeyScoreboardClock))
			return nil
		}
		t.s.Scoreboard = next
		if !clockRunning(next) {
			t.emit(cancel(KeyScoreboardClock))
		}
		return nil
	})
}

// syncClock starts or stops the scoreboard clock task when the running flag
// changed. force re-arms a running clock regardless.
func (t *tx) syncClock(was, force bool) {
	now := clockRunning(t.s.Scoreboard)
	switch {
	case now && (!was || force):
		t.emit(every(KeyScoreboardClock, t.policy().ClockTick, command.Bare(command.ScoreboardClockTick)))
	case !now && (was || force):
		t.emit(cancel(KeyScoreboardClock))
	}
}

func clockRunning(s scoreboard.State) bool {
	v, _ := s.Get("clock.running")
	running, _ := v.(bool)
	return running
}
