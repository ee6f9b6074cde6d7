package frontend

import "sync"

// MemoryDocument is a Document that keeps the painted state in memory.
type MemoryDocument struct {
	mu      sync.Mutex
	visible View
	content map[View]string
}

func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{visible: ViewHome, content: make(map[View]string)}
}

func (d *MemoryDocument) ShowView(v View) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible = v
}

func (d *MemoryDocument) SetContent(v View, html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content[v] = html
}

func (d *MemoryDocument) Visible() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible
}

func (d *MemoryDocument) Content(v View) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.content[v]
}

// History is the browser location as seen by the router.
type History interface {
	Hash() string
	// PushHash navigates and adds a history entry.
	PushHash(hash string)
	// ReplaceHash rewrites the current entry without navigating.
	ReplaceHash(hash string)
}

// MemoryHistory records entries like the browser's session history.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
}

func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}}
}

func (h *MemoryHistory) Hash() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *MemoryHistory) PushHash(hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, hash)
}

func (h *MemoryHistory) ReplaceHash(hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = hash
}

// Entries returns a copy of the history stack, oldest first.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
