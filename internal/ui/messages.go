// Package ui provides the Bubble Tea TUI for pawdeck.
package ui

import "github.com/abelbrown/pawdeck/internal/session"

// BatchReady is sent when a batch fetch completes. Gen identifies the
// session load that requested it; the app drops results whose
// generation no longer matches.
type BatchReady struct {
	Gen   uint64
	Items session.Batch
}

// snapTickMsg drives the spring animation that returns the card to
// center after an inconclusive gesture.
type snapTickMsg struct{}
