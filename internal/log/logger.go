package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for recording economy events.
type EventLogger interface {
	Log(event EconomyEvent)
	Events() []EconomyEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []EconomyEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event EconomyEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []EconomyEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EconomyEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []EconomyEvent {
	var result []EconomyEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() EconomyEvent {
	events := l.Events()
	if len(events) == 0 {
		return EconomyEvent{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event EconomyEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Discard: drops everything, for callers that opt out ---

type discardLogger struct{}

func (discardLogger) Log(EconomyEvent)       {}
func (discardLogger) Events() []EconomyEvent { return nil }

// Discard is an EventLogger that records nothing.
var Discard EventLogger = discardLogger{}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e EconomyEvent) string {
	typ := e.Type.String()
	for len(typ) < 16 {
		typ += " "
	}
	return fmt.Sprintf("acct %-6d %s| %s", e.Account, typ, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []EconomyEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewAccountCreatedEvent(account int64, name string) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventAccountCreated,
		Details: fmt.Sprintf("account created (%s)", name),
	}
}

func NewCardDrawnEvent(account int64, pack, card, rarity string) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventCardDrawn,
		Card:    card,
		Details: fmt.Sprintf("drew %s (%s) from %s pack", card, rarity, pack),
	}
}

func NewFusionEvent(account int64, card, newCard string, reward int64) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventFusion,
		Card:    newCard,
		Amount:  reward,
		Details: fmt.Sprintf("fused 5x %s into %s (+%d coins)", card, newCard, reward),
	}
}

func NewCreditEvent(account int64, currency string, amount int64) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventCredit,
		Amount:  amount,
		Details: fmt.Sprintf("+%d %s", amount, currency),
	}
}

func NewDebitEvent(account int64, currency string, amount int64) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventDebit,
		Amount:  amount,
		Details: fmt.Sprintf("-%d %s", amount, currency),
	}
}

func NewRefillEvent(account int64, packs int) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventRefill,
		Amount:  int64(packs),
		Details: fmt.Sprintf("free packs refilled to %d", packs),
	}
}

func NewQueuedEvent(account int64, power int) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventQueued,
		Details: fmt.Sprintf("queued for battle (power %d)", power),
	}
}

func NewPairedEvent(account, opponent int64) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventPaired,
		Details: fmt.Sprintf("paired with account %d", opponent),
	}
}

func NewCancelledEvent(account int64) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventCancelled,
		Details: "left the battle queue",
	}
}

func NewBattleResolvedEvent(winner, loser int64, winnerPower, loserPower int) EconomyEvent {
	return EconomyEvent{
		Account: winner,
		Type:    EventBattleResolved,
		Details: fmt.Sprintf("account %d (power %d) defeats account %d (power %d)", winner, winnerPower, loser, loserPower),
	}
}

func NewDiceRolledEvent(account int64, roll int, won bool) EconomyEvent {
	outcome := "lost"
	if won {
		outcome = "won"
	}
	return EconomyEvent{
		Account: account,
		Type:    EventDiceRolled,
		Amount:  int64(roll),
		Details: fmt.Sprintf("rolled %d and %s", roll, outcome),
	}
}

func NewResetEvent(account int64) EconomyEvent {
	return EconomyEvent{
		Account: account,
		Type:    EventReset,
		Details: "account reset to defaults",
	}
}
