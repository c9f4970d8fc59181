// Package report renders a printable PDF recap of a battle: the result,
// both teams with HP bars and status, and the full battle log.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Ragnr99/portfolio-hub/internal/battle"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	colGap    = 20
	cardH     = 46.0
	barH      = 7.0
	fontSize  = 9
	titleSize = 18
	logLineH  = 12.0
)

// Generate returns PDF bytes for st.
func Generate(st battle.State) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin + 8)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 22, "Battle Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", fontSize+1)
	r, g, b := outcomeColor(st.Outcome)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(0, 14, tr(Headline(st)), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	colW := (float64(pageW) - 2*margin - colGap) / 2
	top := pdf.GetY()
	yl := drawTeam(pdf, tr, "Your team", st.Player, margin, top, colW)
	yr := drawTeam(pdf, tr, "Opponent", st.Enemy, margin+colW+colGap, top, colW)
	pdf.SetY(max(yl, yr) + 12)

	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(margin, pdf.GetY(), pageW-margin, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", fontSize+3)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 16, "Battle log", "", 1, "L", false, 0, "")
	pdf.SetFont("Courier", "", fontSize)
	for i, line := range st.Log {
		pdf.SetTextColor(lineColor(line))
		pdf.MultiCell(0, logLineH, tr(fmt.Sprintf("%3d  %s", i+1, line)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Headline is the one-line summary under the title.
func Headline(st battle.State) string {
	switch st.Outcome {
	case battle.OutcomeWin:
		return fmt.Sprintf("Victory after %d turns", st.Turn-1)
	case battle.OutcomeLoss:
		return fmt.Sprintf("Defeat after %d turns", st.Turn-1)
	default:
		return fmt.Sprintf("In progress, turn %d", st.Turn)
	}
}

func outcomeColor(o battle.Outcome) (int, int, int) {
	switch o {
	case battle.OutcomeWin:
		return 30, 130, 50
	case battle.OutcomeLoss:
		return 170, 30, 30
	}
	return 80, 80, 80
}

// lineColor highlights faints and results in the log.
func lineColor(line string) (int, int, int) {
	switch {
	case line == "You win!":
		return 30, 130, 50
	case line == "You lost!", strings.HasSuffix(line, " fainted!"):
		return 170, 30, 30
	case strings.HasPrefix(line, "Dealt "):
		return 90, 90, 90
	}
	return 30, 30, 30
}

// drawTeam draws one card per member starting at (x, y) and returns the
// y position below the last card.
func drawTeam(pdf *gofpdf.Fpdf, tr func(string) string, heading string, t battle.Team, x, y, w float64) float64 {
	pdf.SetFont("Helvetica", "B", fontSize+3)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 16, heading, "", 0, "L", false, 0, "")
	y += 20

	for i, c := range t.Members {
		drawCard(pdf, tr, c, i == t.Active, x, y, w)
		y += cardH + 6
	}
	return y
}

func drawCard(pdf *gofpdf.Fpdf, tr func(string) string, c battle.Combatant, active bool, x, y, w float64) {
	if active {
		pdf.SetDrawColor(60, 100, 200)
		pdf.SetLineWidth(1.5)
	} else {
		pdf.SetDrawColor(190, 190, 190)
		pdf.SetLineWidth(0.5)
	}
	pdf.SetFillColor(250, 250, 250)
	pdf.Rect(x, y, w, cardH, "FD")
	pdf.SetLineWidth(1)

	pdf.SetFont("Helvetica", "B", fontSize+1)
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(x+6, y+4)
	name := c.Name
	if active {
		name += "  (active)"
	}
	pdf.CellFormat(w-12, 12, tr(name), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", fontSize-1)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(x+6, y+4)
	pdf.CellFormat(w-12, 12, tr(fmt.Sprintf("Lv %d  %s", c.Level, typeLabel(c.Types))), "", 0, "R", false, 0, "")

	bx, by, bw := x+6, y+20, w-12
	pdf.SetFillColor(225, 225, 225)
	pdf.Rect(bx, by, bw, barH, "F")
	ratio := HPRatio(c)
	if ratio > 0 {
		r, g, b := hpColor(ratio)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(bx, by, bw*ratio, barH, "F")
	}

	pdf.SetXY(x+6, y+30)
	pdf.SetFont("Helvetica", "", fontSize-1)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(bw/2, 10, fmt.Sprintf("HP %d/%d", c.HP, c.MaxHP()), "", 0, "L", false, 0, "")
	label, r, g, b := statusLabel(c)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(bw/2, 10, label, "", 0, "R", false, 0, "")
}

// HPRatio is the fraction of max HP remaining, in [0, 1].
func HPRatio(c battle.Combatant) float64 {
	if c.MaxHP() <= 0 || c.HP <= 0 {
		return 0
	}
	r := float64(c.HP) / float64(c.MaxHP())
	if r > 1 {
		return 1
	}
	return r
}

func hpColor(ratio float64) (int, int, int) {
	switch {
	case ratio > 0.5:
		return 60, 170, 80
	case ratio > 0.2:
		return 230, 180, 40
	}
	return 210, 60, 50
}

func statusLabel(c battle.Combatant) (string, int, int, int) {
	if c.Fainted() {
		return "FAINTED", 170, 30, 30
	}
	switch c.Status {
	case battle.StatusBurn:
		return "BRN", 220, 100, 40
	case battle.StatusParalyze:
		return "PAR", 200, 170, 30
	case battle.StatusSleep:
		return "SLP", 120, 120, 150
	case battle.StatusPoison:
		return "PSN", 140, 60, 160
	case battle.StatusFreeze:
		return "FRZ", 70, 160, 210
	}
	return "", 0, 0, 0
}

func typeLabel(types []battle.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = strings.ToUpper(string(t))
	}
	return strings.Join(parts, "/")
}
