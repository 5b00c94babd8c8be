// Package role resolves the acting party's authorization level from host
// signals. Resolution is a pure function over an explicit Signals value; the
// package never reads ambient state.
package role

import "strings"

// Role is the acting party's authorization level.
type Role string

const (
	// Keyholder may mutate the task config and completion state.
	Keyholder Role = "keyholder"
	// Sub may mutate completion state only.
	Sub Role = "sub"
	// Viewer is read-only.
	Viewer Role = "viewer"
)

// CanEditConfig reports whether the role may mutate the task config.
func (r Role) CanEditConfig() bool { return r == Keyholder }

// CanToggle reports whether the role may mutate completion state.
func (r Role) CanToggle() bool { return r == Keyholder || r == Sub }

// Signals carries every host input that participates in role resolution and
// editor visibility, gathered once by the config layer.
type Signals struct {
	// ModeText is the host's free-form mode indicator. May contain
	// unrelated content.
	ModeText string
	// Hint is the statically configured role hint.
	Hint string
	// Param is the per-invocation role parameter.
	Param string
	// Override is the global role override.
	Override string

	// ForceEdit is the per-invocation force-edit parameter.
	ForceEdit bool
	// AlwaysEdit is the configured always-show-editor hint.
	AlwaysEdit bool
	// GlobalForceEdit is the global force-edit flag.
	GlobalForceEdit bool
}

// Resolve determines the acting role. Sources are checked in precedence
// order, first match wins: mode text, configured hint, invocation parameter,
// global override, then Viewer.
//
// The sources are deliberately asymmetric: an unrecognized mode text or hint
// falls through to the next source (the mode text is free-form prose), while
// a non-empty unrecognized parameter or override is a deliberate input and
// resolves to Viewer.
func Resolve(s Signals) Role {
	if mode := strings.ToLower(strings.TrimSpace(s.ModeText)); mode != "" {
		if strings.Contains(mode, "keyholder") {
			return Keyholder
		}
		if strings.Contains(mode, "locked pet") || mode == "sub" {
			return Sub
		}
	}
	if r, ok := match(s.Hint); ok {
		return r
	}
	if v := strings.TrimSpace(s.Param); v != "" {
		if r, ok := match(v); ok {
			return r
		}
		return Viewer
	}
	if v := strings.TrimSpace(s.Override); v != "" {
		if r, ok := match(v); ok {
			return r
		}
		return Viewer
	}
	return Viewer
}

// CanShowEditor reports whether edit affordances may be rendered. Visibility
// only: a mutation is authorized solely by Resolve, so a forced-visible
// editor for a non-keyholder is shown read-only.
func CanShowEditor(s Signals) bool {
	if s.ForceEdit || s.AlwaysEdit || s.GlobalForceEdit {
		return true
	}
	return Resolve(s) == Keyholder
}

func match(v string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "keyholder", "kh", "owner":
		return Keyholder, true
	case "sub", "pet":
		return Sub, true
	case "viewer", "view":
		return Viewer, true
	}
	return "", false
}
