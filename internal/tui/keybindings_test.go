package tui

import (
	"testing"

	"github.com/traindesk/traindesk/internal/core/config"
)

func TestKeybindingHandler_Resolve(t *testing.T) {
	keybindings := map[string]config.Keybinding{
		"d": {Action: config.ActionDelete, Help: "delete", Confirm: "Delete this entry?"},
		"r": {Action: config.ActionReload},
		"n": {Action: config.ActionNew, Help: "new"},
		"x": {Action: "unknown"},
	}

	handler := NewKeybindingHandler(keybindings)

	tests := []struct {
		name        string
		key         string
		recordID    string
		wantOK      bool
		wantTyp     ActionType
		wantConfirm bool
	}{
		{
			name:        "delete resolves with confirmation",
			key:         "d",
			recordID:    "abc123",
			wantOK:      true,
			wantTyp:     ActionTypeDelete,
			wantConfirm: true,
		},
		{
			name:    "reload resolves without confirmation",
			key:     "r",
			wantOK:  true,
			wantTyp: ActionTypeReload,
		},
		{
			name:    "new resolves",
			key:     "n",
			wantOK:  true,
			wantTyp: ActionTypeNew,
		},
		{
			name:   "unknown action does not resolve",
			key:    "x",
			wantOK: false,
		},
		{
			name:   "unbound key does not resolve",
			key:    "z",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := handler.Resolve(tt.key, tt.recordID)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if action.Type != tt.wantTyp {
				t.Errorf("Resolve(%q) type = %v, want %v", tt.key, action.Type, tt.wantTyp)
			}
			if action.NeedsConfirm() != tt.wantConfirm {
				t.Errorf("Resolve(%q) NeedsConfirm() = %v, want %v", tt.key, action.NeedsConfirm(), tt.wantConfirm)
			}
			if action.RecordID != tt.recordID {
				t.Errorf("Resolve(%q) record = %q, want %q", tt.key, action.RecordID, tt.recordID)
			}
		})
	}
}

func TestKeybindingHandler_ResolveFillsDefaultHelp(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"r": {Action: config.ActionReload},
	})

	action, ok := handler.Resolve("r", "")
	if !ok {
		t.Fatal("expected key to resolve")
	}
	if action.Help != "reload" {
		t.Errorf("help = %q, want %q", action.Help, "reload")
	}
}

func TestKeybindingHandler_KeyBindingsSorted(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"r": {Action: config.ActionReload, Help: "reload"},
		"d": {Action: config.ActionDelete, Help: "delete"},
		"n": {Action: config.ActionNew},
	})

	bindings := handler.KeyBindings()
	want := []struct {
		key  string
		desc string
	}{
		{"d", "delete"},
		{"n", "new"}, // falls back to the action name
		{"r", "reload"},
	}
	if len(bindings) != len(want) {
		t.Fatalf("got %d bindings, want %d", len(bindings), len(want))
	}
	for i, w := range want {
		h := bindings[i].Help()
		if h.Key != w.key || h.Desc != w.desc {
			t.Errorf("bindings[%d] = [%s] %s, want [%s] %s", i, h.Key, h.Desc, w.key, w.desc)
		}
	}
}
