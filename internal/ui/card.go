package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/abelbrown/pawdeck/internal/session"
)

// catFace is the placeholder art on every card; terminals don't get
// the actual pixels, the bytes stay in the cache.
const catFace = ` /\_/\
( o.o )
 > ^ <`

// renderCard draws the current item as a card displaced horizontally
// by offset cells, fading out as opacity drops. Rotation can't be
// drawn in a cell grid, so it is reported as a tilt readout instead.
func renderCard(item session.Item, position, total int, offset, rotation, opacity float64, size int64, width int) string {
	style := CardStyle
	switch {
	case opacity < 0.34:
		style = CardFaintStyle
	case opacity < 0.67:
		style = CardDimStyle
	}

	title := CardTitle.Render(fmt.Sprintf("Cat %d of %d", position+1, total))
	if item.Source == session.SourceFallback {
		title += " " + FallbackBadge.Render("[fallback]")
	}

	meta := fmt.Sprintf("%s\ntilt %+.1f°", shortRef(item.ImageRef), rotation)
	if size > 0 {
		meta = fmt.Sprintf("%s · %s\ntilt %+.1f°", shortRef(item.ImageRef), humanize.Bytes(uint64(size)), rotation)
	}

	card := style.Render(title + "\n\n" + catFace + "\n\n" + meta)

	// Edge hints light up once the drag passes the visual midpoint.
	left, right := " ", " "
	if offset < -10 {
		left = DismissHint.Render("NOPE ◀")
	}
	if offset > 10 {
		right = LikeHint.Render("▶ LIKE")
	}

	// Displace the card by the gesture offset, clamped to the window.
	indent := width/2 - lipgloss.Width(card)/2 + int(offset)
	if indent < 0 {
		indent = 0
	}
	maxIndent := width - lipgloss.Width(card)
	if maxIndent > 0 && indent > maxIndent {
		indent = maxIndent
	}

	var b strings.Builder
	b.WriteString(left + "\n")
	for _, line := range strings.Split(card, "\n") {
		b.WriteString(strings.Repeat(" ", indent) + line + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(right))
	return b.String()
}

// shortRef trims the cache-busting query off a reference for display.
func shortRef(ref string) string {
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		return ref[:i]
	}
	return ref
}
