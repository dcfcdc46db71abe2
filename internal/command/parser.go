// Package command maps raw WhatsApp message text to canonical attendance
// event kinds.
package command

import (
	"strings"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// Parse normalizes raw message text and maps it to an event kind. The second
// return value is false when the text matches no known command. Matching is
// exact after trimming and lowercasing; there is no fuzzy matching.
func Parse(raw string) (domain.EventKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "entrada":
		return domain.EventClockIn, true
	case "saida", "saída":
		return domain.EventClockOut, true
	case "pausa":
		return domain.EventBreakStart, true
	case "volta":
		return domain.EventBreakEnd, true
	}
	return "", false
}

// Known lists the accepted command tokens, used to build help replies.
func Known() []string {
	return []string{"entrada", "saida", "pausa", "volta"}
}
