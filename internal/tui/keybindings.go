package tui

import (
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/key"

	"github.com/traindesk/traindesk/internal/core/config"
)

// ActionType identifies the kind of action a keybinding triggers.
type ActionType int

const (
	ActionTypeNone ActionType = iota
	ActionTypeDelete
	ActionTypeReload
	ActionTypeNew
)

// Action represents a resolved keybinding action ready for execution.
type Action struct {
	Type     ActionType
	Key      string
	Help     string
	Confirm  string // Non-empty if confirmation required
	RecordID string // For delete actions, the selected record
}

// NeedsConfirm returns true if the action requires user confirmation.
func (a Action) NeedsConfirm() bool {
	return a.Confirm != ""
}

// KeybindingHandler resolves keybindings to actions.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
}

// NewKeybindingHandler creates a new handler with the given config.
func NewKeybindingHandler(keybindings map[string]config.Keybinding) *KeybindingHandler {
	return &KeybindingHandler{keybindings: keybindings}
}

// Resolve attempts to resolve a key press to an action against the
// currently selected record.
func (h *KeybindingHandler) Resolve(key, recordID string) (Action, bool) {
	kb, exists := h.keybindings[key]
	if !exists || kb.Action == "" {
		return Action{}, false
	}

	action := Action{
		Key:      key,
		Help:     kb.Help,
		Confirm:  kb.Confirm,
		RecordID: recordID,
	}

	switch kb.Action {
	case config.ActionDelete:
		action.Type = ActionTypeDelete
		if action.Help == "" {
			action.Help = "delete"
		}
	case config.ActionReload:
		action.Type = ActionTypeReload
		if action.Help == "" {
			action.Help = "reload"
		}
	case config.ActionNew:
		action.Type = ActionTypeNew
		if action.Help == "" {
			action.Help = "new"
		}
	default:
		return Action{}, false
	}

	return action, true
}

// KeyBindings returns the configured bindings as key.Binding values for
// the help bar, sorted by key.
func (h *KeybindingHandler) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))
	bindings := make([]key.Binding, 0, len(keys))

	for _, k := range keys {
		kb := h.keybindings[k]
		help := kb.Help
		if help == "" {
			help = kb.Action
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, help),
		))
	}

	return bindings
}
