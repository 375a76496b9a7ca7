package anchor

// Ledger is the set of payloads already anchored
// It only grows; there is no removal
type Ledger struct {
	placed map[string]struct{}
	order  []string
}

func NewLedger() *Ledger {
	return &Ledger{placed: make(map[string]struct{})}
}

func (l *Ledger) Has(payload string) bool {
	_, ok := l.placed[payload]
	return ok
}

// Add records payload, false if it was already present
func (l *Ledger) Add(payload string) bool {
	if l.Has(payload) {
		return false
	}
	l.placed[payload] = struct{}{}
	l.order = append(l.order, payload)
	return true
}

func (l *Ledger) Len() int {
	return len(l.placed)
}

// Payloads returns anchored payloads in placement order
func (l *Ledger) Payloads() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}
