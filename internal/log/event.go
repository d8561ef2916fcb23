package log

// EventType enumerates all observable economy events.
type EventType int

const (
	EventAccountCreated EventType = iota
	EventCardDrawn
	EventFusion
	EventCredit
	EventDebit
	EventRefill
	EventQueued
	EventPaired
	EventCancelled
	EventBattleResolved
	EventDiceRolled
	EventReset
)

func (e EventType) String() string {
	switch e {
	case EventAccountCreated:
		return "AccountCreated"
	case EventCardDrawn:
		return "CardDrawn"
	case EventFusion:
		return "Fusion"
	case EventCredit:
		return "Credit"
	case EventDebit:
		return "Debit"
	case EventRefill:
		return "Refill"
	case EventQueued:
		return "Queued"
	case EventPaired:
		return "Paired"
	case EventCancelled:
		return "Cancelled"
	case EventBattleResolved:
		return "BattleResolved"
	case EventDiceRolled:
		return "DiceRolled"
	case EventReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// EconomyEvent represents a single observable event in the economy core.
type EconomyEvent struct {
	Seq     int       // monotonic sequence number
	Account int64     // acting account id
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Amount  int64     // currency amount (if applicable)
	Details string    // human-readable detail string
}
