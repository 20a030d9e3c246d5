package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// KeyBindingsConfig holds modifier customization and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"` // Optional overrides for specific actions
}

type ModifierConfig struct {
	Primary   string `toml:"primary"`   // e.g., "alt", "ctrl", "meta", "super"
	Secondary string `toml:"secondary"` // e.g., "alt+shift", "ctrl+shift"
}

// scope is where an action is handled. Two actions may share a key only when
// their scopes never see the same key press.
type scope int

const (
	scopeGlobal scope = iota // before any view, including modal toggles
	scopeViews               // chat, simplify and publications alike
	scopeChat
	scopeSimplify
	scopePublications
	scopePicker
)

func (s scope) overlaps(o scope) bool {
	switch {
	case s == o, s == scopeGlobal, o == scopeGlobal:
		return true
	case s == scopePicker || o == scopePicker:
		return false
	case s == scopeViews || o == scopeViews:
		return true
	}
	return false
}

// actionDef defines the default modifier and key for an action
type actionDef struct {
	modifier string // "primary", "secondary", or "none"
	key      string
	scope    scope
}

// actionRegistry maps action names to their default keybindings
// Users can override any of these in the [actions] section of keybindings.toml
var actionRegistry = map[string]actionDef{
	"help":              {"primary", "h", scopeGlobal},
	"quit":              {"primary", "q", scopeGlobal},
	"about":             {"secondary", "a", scopeGlobal},
	"view_chat":         {"primary", "1", scopeGlobal},
	"view_simplify":     {"primary", "2", scopeGlobal},
	"view_publications": {"primary", "3", scopeGlobal},

	// Scrolling (chat transcript, simplify result, publications list)
	"half_page_down":   {"primary", "j", scopeGlobal},
	"half_page_up":     {"primary", "k", scopeGlobal},
	"scroll_to_top":    {"primary", "g", scopeGlobal},
	"scroll_to_bottom": {"secondary", "g", scopeGlobal},

	"clear_conversation":  {"primary", "n", scopeChat},
	"suggestions":         {"primary", "s", scopeChat},
	"select_prev_message": {"primary", "[", scopeChat},
	"select_next_message": {"primary", "]", scopeChat},
	"export_conversation": {"secondary", "e", scopeChat},
	"yank_conversation":   {"primary", "c", scopeChat},

	"speak":              {"primary", "o", scopeViews},
	"yank_last_response": {"primary", "y", scopeViews},
	"cycle_option":       {"primary", "l", scopeViews},
	"clear_input":        {"primary", "u", scopeViews},

	"simplify_examples": {"primary", "e", scopeSimplify},

	"project_down":       {"none", "down", scopePublications},
	"project_up":         {"none", "up", scopePublications},
	"toggle_details":     {"none", "enter", scopePublications},
	"search_legislation": {"primary", "b", scopePublications},
	"cycle_status":       {"secondary", "l", scopePublications},

	// Pickers have no text input, so no modifier needed
	"picker_down": {"none", "j", scopePicker},
	"picker_up":   {"none", "k", scopePicker},
}

// reservedKeys are handled by the inputs and modals themselves and cannot be
// given to an action in the listed scopes.
var reservedKeys = map[string]struct {
	use    string
	scopes []scope
}{
	"enter":     {"sends the question or text", []scope{scopeGlobal, scopeViews, scopeChat, scopeSimplify, scopePicker}},
	"alt+enter": {"inserts a newline", []scope{scopeGlobal, scopeViews, scopeChat, scopeSimplify}},
	"ctrl+c":    {"quits", []scope{scopeGlobal, scopeViews, scopeChat, scopeSimplify, scopePublications, scopePicker}},
	"esc":       {"closes modals and leaves search results", []scope{scopeGlobal, scopeViews, scopeChat, scopeSimplify, scopePublications, scopePicker}},
}

var knownModifiers = []string{"alt", "ctrl", "meta", "super", "shift"}

// DefaultKeybindings returns default configuration
func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary:   "alt",
			Secondary: "alt+shift",
		},
	}
}

// LoadKeybindings loads <dataDir>/keybindings.toml, creating it on first run
func LoadKeybindings(dataDir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	if err := loadOrCreate(dataDir, "keybindings.toml", GenerateKeybindingsTemplate(), cfg); err != nil {
		return nil, err
	}

	// An empty modifier in the file means the default
	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "alt"
	}
	if cfg.Modifiers.Secondary == "" {
		cfg.Modifiers.Secondary = "alt+shift"
	}
	return cfg, nil
}

func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

func (kb *KeyBindingsConfig) Secondary() string {
	if kb.Modifiers.Secondary == "" {
		return "alt+shift"
	}
	return kb.Modifiers.Secondary
}

// resolve builds the key string bubbletea reports for def.
// A shifted letter arrives as its uppercase rune, so "alt+shift" + "e"
// resolves to "alt+E" while "alt+shift" + "f1" stays "alt+shift+f1".
func (kb *KeyBindingsConfig) resolve(def actionDef) string {
	switch def.modifier {
	case "none":
		return def.key
	case "primary":
		return kb.Primary() + "+" + def.key
	}

	mods := strings.Split(kb.Secondary(), "+")
	if len(def.key) != 1 || def.key[0] < 'a' || def.key[0] > 'z' || !slices.ContainsFunc(mods, isShift) {
		return kb.Secondary() + "+" + def.key
	}
	mods = slices.DeleteFunc(mods, isShift)
	return strings.Join(append(mods, strings.ToUpper(def.key)), "+")
}

func isShift(mod string) bool {
	return strings.EqualFold(mod, "shift")
}

// GetActionKey returns the override for action, else its registry default,
// else "" for an unknown action.
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override := kb.Actions[action]; override != "" {
		return override
	}
	if def, ok := actionRegistry[action]; ok {
		return kb.resolve(def)
	}
	return ""
}

// DisplayActionKey renders an action's key for help text and the status bar.
// "alt+E" becomes "Alt+Shift+E", "enter" becomes "Enter".
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "+")
	shifted := slices.ContainsFunc(parts, isShift)

	out := make([]string, 0, len(parts)+1)
	for i, part := range parts {
		if part == "" {
			continue
		}
		r := []rune(part)
		if i > 0 && i == len(parts)-1 && len(r) == 1 && unicode.IsUpper(r[0]) && !shifted {
			out = append(out, "Shift")
		}
		out = append(out, strings.ToUpper(string(r[0]))+string(r[1:]))
	}
	return strings.Join(out, "+")
}

// Is reports whether a pressed key (tea.KeyMsg.String()) triggers an action
func (kb *KeyBindingsConfig) Is(action, pressed string) bool {
	key := kb.GetActionKey(action)
	return key != "" && key == pressed
}

// Validate checks modifiers and overrides.
// It returns false when an action could take over a key the inputs need
// (Enter submits, Alt+Enter inserts a newline, Ctrl+C and Esc). Duplicates and
// unknown override names only produce a warning.
func (kb *KeyBindingsConfig) Validate() (bool, string) {
	var problems, warnings []string

	for _, mod := range []string{kb.Primary(), kb.Secondary()} {
		parts := strings.Split(strings.ToLower(mod), "+")
		for _, part := range parts {
			if !slices.Contains(knownModifiers, part) {
				problems = append(problems, fmt.Sprintf("unknown modifier %q in %q", part, mod))
			}
		}
		if len(parts) == 1 && parts[0] == "shift" {
			problems = append(problems, "Shift alone conflicts with typing")
		}
	}
	if strings.Contains(kb.Primary(), "ctrl") || strings.Contains(kb.Secondary(), "ctrl") {
		warnings = append(warnings, "Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)")
	}

	for _, action := range slices.Sorted(maps.Keys(kb.Actions)) {
		if _, ok := actionRegistry[action]; !ok {
			warnings = append(warnings, fmt.Sprintf("unknown action %q in [actions]", action))
		}
	}

	// Shipped bindings such as toggle_details on Enter are allowed
	shipped := DefaultKeybindings()
	actions := slices.Sorted(maps.Keys(actionRegistry))
	for _, action := range actions {
		def := actionRegistry[action]
		key := kb.GetActionKey(action)
		if key == shipped.resolve(def) {
			continue
		}
		if reserved, ok := reservedKeys[strings.ToLower(key)]; ok && slices.Contains(reserved.scopes, def.scope) {
			problems = append(problems, fmt.Sprintf("%s cannot use %s, which %s", action, key, reserved.use))
		}
	}

	for i, a := range actions {
		for _, b := range actions[i+1:] {
			if kb.GetActionKey(a) != kb.GetActionKey(b) {
				continue
			}
			if actionRegistry[a].scope.overlaps(actionRegistry[b].scope) {
				warnings = append(warnings, fmt.Sprintf("%s and %s are both bound to %s", a, b, kb.GetActionKey(a)))
			}
		}
	}

	switch {
	case len(problems) > 0:
		return false, strings.Join(append(problems, warnings...), "; ")
	case len(warnings) > 0:
		return true, "Warning: " + strings.Join(warnings, "; ")
	}
	return true, ""
}
