package command_test

import (
	"testing"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/command"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

func TestParseRecognizedTokens(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.EventKind
	}{
		{"entrada", domain.EventClockIn},
		{"saida", domain.EventClockOut},
		{"saída", domain.EventClockOut},
		{"pausa", domain.EventBreakStart},
		{"volta", domain.EventBreakEnd},
		{"ENTRADA", domain.EventClockIn},
		{"SAÍDA", domain.EventClockOut},
		{"  entrada  ", domain.EventClockIn},
		{"\tVolta\n", domain.EventBreakEnd},
	}
	for _, tc := range cases {
		got, ok := command.Parse(tc.raw)
		if !ok {
			t.Errorf("Parse(%q): unrecognized, want %s", tc.raw, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestParseUnrecognized(t *testing.T) {
	for _, raw := range []string{"", "   ", "xyz123", "entrada agora", "entrar", "saidaa", "bom dia"} {
		if kind, ok := command.Parse(raw); ok {
			t.Errorf("Parse(%q) = %s, want unrecognized", raw, kind)
		}
	}
}

func TestKnownCoversAllKinds(t *testing.T) {
	seen := map[domain.EventKind]bool{}
	for _, token := range command.Known() {
		kind, ok := command.Parse(token)
		if !ok {
			t.Fatalf("Known token %q does not parse", token)
		}
		seen[kind] = true
	}
	for _, kind := range []domain.EventKind{domain.EventClockIn, domain.EventClockOut, domain.EventBreakStart, domain.EventBreakEnd} {
		if !seen[kind] {
			t.Errorf("no known token maps to %s", kind)
		}
	}
}
