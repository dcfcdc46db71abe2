package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/command"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// Reply texts mirror the vocabulary employees type, so confirmations echo
// the command back in Portuguese.

const replyClockLayout = "15:04"

var kindLabels = map[domain.EventKind]string{
	domain.EventClockIn:    "entrada",
	domain.EventClockOut:   "saída",
	domain.EventBreakStart: "pausa",
	domain.EventBreakEnd:   "volta",
}

var statusLabels = map[domain.Status]string{
	domain.StatusWorking: "a trabalhar",
	domain.StatusOnBreak: "em pausa",
	domain.StatusOffDuty: "fora de serviço",
	domain.StatusAbsent:  "ausente",
}

func confirmationReply(name string, kind domain.EventKind, at time.Time) string {
	clock := at.Format(replyClockLayout)
	switch kind {
	case domain.EventClockIn:
		return fmt.Sprintf("✅ %s, entrada registada às %s. Bom trabalho!", name, clock)
	case domain.EventClockOut:
		return fmt.Sprintf("✅ %s, saída registada às %s. Até amanhã!", name, clock)
	case domain.EventBreakStart:
		return fmt.Sprintf("☕ %s, pausa iniciada às %s.", name, clock)
	default:
		return fmt.Sprintf("✅ %s, volta registada às %s. Bom trabalho!", name, clock)
	}
}

func unknownSenderReply() string {
	return "❌ Número não registado. Contacte o administrador para ativar o seu acesso."
}

func helpReply() string {
	return "❓ Comando não reconhecido. Comandos disponíveis: " + strings.Join(command.Known(), ", ") + "."
}

func invalidTransitionReply(kind domain.EventKind, current domain.Status) string {
	return fmt.Sprintf("⚠️ Não é possível registar %s agora (estado atual: %s).", kindLabels[kind], statusLabels[current])
}
