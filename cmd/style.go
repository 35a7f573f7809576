package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/cardtris/domain/cascade"
	"github.com/luca-patrignani/cardtris/game"
	"github.com/luca-patrignani/cardtris/ledger"
)

const controls = "←/→ move   1-9 drop in column\n↓/space drop   enter lock\np pause   q quit"

func printState(s game.Snapshot, messages []string) string {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2).WithTopPadding(1).WithBottomPadding(1)
	board := pterm.Panel{Data: pbox.WithTitle(pterm.LightCyan("|CARDTRIS|")).WithTitleTopCenter().Sprint(printBoard(s))}
	side := pterm.Panel{Data: printInfo(s, messages)}
	out, _ := pterm.DefaultPanel.WithPanels([][]pterm.Panel{{board, side}}).Srender()
	return out
}

// printBoard draws the cells with the falling card on top, three columns
// per card.
func printBoard(s game.Snapshot) string {
	var b strings.Builder
	for y, row := range s.Cells {
		for x, c := range row {
			if s.Falling != nil && s.Falling.Position.X == x && s.Falling.Position.Y == y {
				c = s.Falling.Card
			}
			b.WriteString(cell(c.String(), c.IsZero()))
		}
		if y < len(s.Cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cell(face string, empty bool) string {
	width := len([]rune(pterm.RemoveColorFromString(face)))
	if empty {
		face = pterm.Gray(face)
	}
	return face + strings.Repeat(" ", max(3-width, 1))
}

func printInfo(s game.Snapshot, messages []string) string {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	status := pterm.LightGreen("Playing")
	switch {
	case s.Over:
		status = pterm.LightRed("Game over")
	case s.Paused:
		status = pterm.LightYellow("Paused")
	}
	info := fmt.Sprintf("Score: %d\nLevel: %d\nNext:  %s\n%s", s.Score, s.Level, s.Next, status)
	if len(messages) > 0 {
		info += "\n\n" + strings.Join(messages, "\n")
	}
	info += "\n\n" + pterm.Gray(controls)
	return pbox.WithTitle(pterm.LightYellow("|INFO|")).WithTitleTopLeft().Sprint(info)
}

// handMessages lists what a cascade scored, with a total when more than
// one hand counted.
func handMessages(r cascade.Report) []string {
	hands := r.Hands()
	out := make([]string, 0, len(hands)+1)
	for _, h := range hands {
		out = append(out, pterm.LightGreen(h.Message()))
	}
	if len(hands) > 1 {
		out = append(out, pterm.LightGreen(fmt.Sprintf("Total: %d points!", r.Score())))
	}
	return out
}

func printHighScores(entries []ledger.Entry) string {
	if len(entries) == 0 {
		return pterm.Info.Sprint("No high scores yet!")
	}
	data := [][]string{{"#", "Initials", "Score", "Date"}}
	for i, e := range entries {
		data = append(data, []string{
			fmt.Sprint(i + 1),
			e.Initials,
			fmt.Sprint(e.Score),
			e.Date.Local().Format("2006-01-02"),
		})
	}
	out, _ := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	return out
}
