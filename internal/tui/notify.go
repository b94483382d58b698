package tui

import tea "github.com/charmbracelet/bubbletea"

// toastMsg carries a success or failure notification into the update loop.
type toastMsg struct {
	text string
	ok   bool
}

// collectionChangedMsg is sent whenever a service collection swaps its
// contents, including the optimistic intermediate states.
type collectionChangedMsg struct{}

// Notifier bridges service notifications into Bubble Tea messages. It
// implements optimistic.Notifier; mutations run inside tea.Cmd
// goroutines, so delivery goes through a channel the model listens on.
type Notifier struct {
	events chan tea.Msg
}

// NewNotifier creates a notifier with room for a burst of events.
func NewNotifier() *Notifier {
	return &Notifier{events: make(chan tea.Msg, 32)}
}

// Success implements optimistic.Notifier.
func (n *Notifier) Success(msg string) { n.send(toastMsg{text: msg, ok: true}) }

// Failure implements optimistic.Notifier.
func (n *Notifier) Failure(msg string) { n.send(toastMsg{text: msg, ok: false}) }

// CollectionChanged queues a redraw. Wired to Collection.OnChange.
func (n *Notifier) CollectionChanged() { n.send(collectionChangedMsg{}) }

func (n *Notifier) send(msg tea.Msg) {
	// Blocking here would deadlock the update loop; drop instead.
	select {
	case n.events <- msg:
	default:
	}
}

// listen returns a command that waits for the next notifier event.
func (n *Notifier) listen() tea.Cmd {
	return func() tea.Msg {
		return <-n.events
	}
}
