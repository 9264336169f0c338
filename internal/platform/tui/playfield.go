package tui

import (
	"fmt"
	"strings"

	"github.com/notefall/notefall/internal/core"
	"github.com/notefall/notefall/internal/engine"
)

// Playfield layout constants
const (
	laneWidth   = 4 // Columns per lane including the divider
	noteBody    = "◆◆"
	hitLineRune = '━'
)

// judgementColor maps a resolution to the color it flashes in.
func judgementColor(j engine.Judgement) core.Color {
	switch j {
	case engine.JudgementPerfect:
		return core.ColorBrightGreen
	case engine.JudgementGreat:
		return core.ColorBrightYellow
	default:
		return core.ColorGray
	}
}

// playfield draws the falling notes, hit line, and key labels for a
// run at the given audio time. Returns the field rect for the HUD to
// lay out around.
func playfield(s *core.Screen, run *engine.Run, now float64, laneKeys []rune) core.Rect {
	lanes := run.Chart().Lanes
	tun := run.Tuning()

	fieldW := lanes*laneWidth + 1
	fieldH := tun.ScrollRows + 4 // border, hit line slack, key row
	if fieldH > s.Height() {
		fieldH = s.Height()
	}
	x0 := core.Max(0, (s.Width()-fieldW)/2)
	field := core.NewRect(x0, 0, fieldW, fieldH)

	s.DrawBox(field, core.ColorGray)

	// Lane dividers
	for lane := 1; lane < lanes; lane++ {
		s.DrawVLine(x0+lane*laneWidth, 1, fieldH-2, core.Cell{Rune: '·', Color: core.ColorGray})
	}

	// Hit line sits above the key label row.
	hitRow := fieldH - 3
	s.DrawHLine(x0+1, hitRow, fieldW-2, core.Cell{Rune: hitLineRune, Color: core.ColorWhite})

	// Key labels under the hit line.
	for lane := 0; lane < lanes && lane < len(laneKeys); lane++ {
		cx := x0 + lane*laneWidth + laneWidth/2
		s.SetCell(cx, fieldH-2, core.Cell{Rune: laneKeys[lane], Color: core.LaneColor(lane)})
	}

	// Notes fall from the top edge toward the hit line.
	speed := tun.RowsPerSecond * tun.SpeedMultiplier
	for _, n := range run.Active() {
		rowF := float64(hitRow) - (n.Time-now)*speed
		row := int(rowF + 0.5)
		if row < 1 || row > fieldH-3 {
			continue
		}

		color := core.LaneColor(n.Lane)
		if n.Resolved {
			color = judgementColor(n.Result)
		}
		cx := x0 + n.Lane*laneWidth + 1
		for i, r := range noteBody {
			s.SetCell(cx+i, row, core.Cell{Rune: r, Color: color})
		}
	}

	return field
}

// hud draws score, combo, health, and the session best alongside the
// field.
func hud(s *core.Screen, run *engine.Run, best int, field core.Rect) {
	x := field.Right() + 2
	if x+18 > s.Width() {
		return // Terminal too narrow for the sidebar
	}

	s.DrawText(x, 1, fmt.Sprintf("Score  %d", run.Score()))
	s.DrawText(x, 2, fmt.Sprintf("Combo  %d", run.Combo()))
	s.DrawText(x, 3, fmt.Sprintf("Max    %d", run.MaxCombo()))
	if best > 0 {
		s.DrawText(x, 4, fmt.Sprintf("Best   %d", best))
	}

	// Health bar
	tun := run.Tuning()
	barW := 12
	filled := 0
	if tun.MaxHealth > 0 {
		filled = core.Clamp(run.Health()*barW/tun.MaxHealth, 0, barW)
	}
	color := core.ColorBrightGreen
	if run.Health() <= tun.MaxHealth/4 {
		color = core.ColorBrightRed
	} else if run.Health() <= tun.MaxHealth/2 {
		color = core.ColorBrightYellow
	}
	s.DrawText(x, 6, "HP")
	s.DrawHLine(x+3, 6, filled, core.Cell{Rune: '█', Color: color})
	s.DrawHLine(x+3+filled, 6, barW-filled, core.Cell{Rune: '░', Color: core.ColorGray})

	perfects, greats, misses := run.Counts()
	s.DrawTextColored(x, 8, fmt.Sprintf("Perfect %d", perfects), core.ColorBrightGreen)
	s.DrawTextColored(x, 9, fmt.Sprintf("Great   %d", greats), core.ColorBrightYellow)
	s.DrawTextColored(x, 10, fmt.Sprintf("Miss    %d", misses), core.ColorGray)
}

// judgementFlash shows the most recent judgement above the hit line.
func judgementFlash(s *core.Screen, ev engine.Event, field core.Rect) {
	label := strings.ToUpper(ev.Judgement.String())
	if ev.Judgement != engine.JudgementMiss {
		if ev.Offset < 0 {
			label += " -"
		} else if ev.Offset > 0 {
			label += " +"
		}
	}
	x := field.X + (field.W-len(label))/2
	s.DrawTextColored(x, field.Bottom()-5, label, judgementColor(ev.Judgement))
}

// pauseOverlay dims nothing but stamps the pause banner mid-field.
func pauseOverlay(s *core.Screen, field core.Rect) {
	lines := []string{"PAUSED", "p resume · r retry · esc quit"}
	y := field.H / 2
	for i, line := range lines {
		x := field.X + (field.W-len(line))/2
		s.DrawTextColored(core.Max(x, 0), y+i, line, core.ColorBrightWhite)
	}
}

// resultsOverlay draws the outcome card once a run finishes.
func resultsOverlay(s *core.Screen, out engine.Outcome, field core.Rect) {
	title := "TRACK CLEAR"
	titleColor := core.ColorBrightGreen
	if out.Failed {
		title = "TRACK FAILED"
		titleColor = core.ColorBrightRed
	}

	lines := []string{
		fmt.Sprintf("Rank %s   Score %d", out.Rank, out.Score),
		fmt.Sprintf("Perfect %d  Great %d  Miss %d", out.Perfects, out.Greats, out.Misses),
		fmt.Sprintf("Max combo %d", out.MaxCombo),
	}
	if out.NewRecord {
		lines = append(lines, "NEW RECORD!")
	}
	lines = append(lines, "", "r retry · esc back")

	y := field.H/2 - 2
	tx := field.X + (field.W-len(title))/2
	s.DrawTextColored(core.Max(tx, 0), y, title, titleColor)
	for i, line := range lines {
		x := field.X + (field.W-len(line))/2
		color := core.ColorDefault
		if line == "NEW RECORD!" {
			color = core.ColorBrightYellow
		}
		s.DrawTextColored(core.Max(x, 0), y+2+i, line, color)
	}
}
