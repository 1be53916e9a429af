package enrich

import "sync"

// Tracker serializa refreshes concorrentes da mesma mensagem: cada chamada ao
// oráculo recebe um ticket crescente por record e só o ticket mais recente
// pode aplicar o resultado. Quem chegou depois vence pela ordem de emissão,
// não pela ordem de término, então uma resposta atrasada nunca regride a
// classificação.
type Tracker struct {
	mu     sync.Mutex
	issued map[string]uint64
}

func NewTracker() *Tracker {
	return &Tracker{issued: make(map[string]uint64)}
}

// Begin issues the next ticket for the given record id.
func (t *Tracker) Begin(recordID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued[recordID]++
	return t.issued[recordID]
}

// Latest reports whether the ticket is still the most recently issued one for
// the record. A superseded caller must discard its result.
func (t *Tracker) Latest(recordID string, ticket uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.issued[recordID] == ticket
}
