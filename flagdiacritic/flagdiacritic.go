// Package flagdiacritic evaluates flag diacritic constraints against a
// feature environment, per spec.md §4.3. It is a pure-function package:
// Eval takes an environment and returns whether the constraint holds and
// the (possibly unchanged) environment to use along that branch,
// grounded on the teacher's style of small table-driven pure helpers
// (nfa/pattern_analysis.go).
package flagdiacritic

import (
	"sort"

	"github.com/eddieantonio/fst-lookup/symbol"
)

// Setting is a feature's value in an Environment: either unset (the zero
// value), positively set to Value, or negatively set (Value holds the
// excluded value, Negative is true — the semantics of the N operator).
type Setting struct {
	set      bool
	Value    string
	Negative bool
}

// IsSet reports whether the feature has any setting, positive or negative.
func (s Setting) IsSet() bool {
	return s.set
}

// Environment is an immutable-by-convention mapping from feature name to
// Setting. Eval never mutates its input; it returns a new Environment
// when a branch changes feature state, so that distinct search branches
// never alias one another's environment (spec.md §3, PathFrame).
type Environment map[string]Setting

// Get returns the setting for feature, or the zero Setting (unset) if
// the feature has never been touched.
func (e Environment) Get(feature string) Setting {
	return e[feature]
}

// with returns a copy of e with feature set to setting.
func (e Environment) with(feature string, setting Setting) Environment {
	next := make(Environment, len(e)+1)
	for k, v := range e {
		next[k] = v
	}
	next[feature] = setting
	return next
}

// Eval evaluates a flag diacritic symbol against env and returns whether
// the traversal may proceed, plus the environment to carry forward along
// that branch (env itself when unchanged). sym.Kind must be
// symbol.KindFlag; Eval panics otherwise, since the search engine only
// ever calls Eval on arcs it has already identified as flag arcs.
func Eval(sym symbol.Symbol, env Environment) (ok bool, next Environment) {
	if sym.Kind != symbol.KindFlag {
		panic("flagdiacritic: Eval called on a non-flag symbol")
	}

	feature := sym.Feature
	current := env.Get(feature)

	switch sym.Op {
	case symbol.FlagP: // set feature := value
		return true, env.with(feature, Setting{set: true, Value: sym.Value})

	case symbol.FlagN: // set feature := negated value
		return true, env.with(feature, Setting{set: true, Value: sym.Value, Negative: true})

	case symbol.FlagR: // require feature set (to any value, or to a specific value)
		if sym.Value == "" {
			return current.IsSet(), env
		}
		return current.IsSet() && !current.Negative && current.Value == sym.Value, env

	case symbol.FlagD: // require feature unset (or unset/different-from-value)
		if sym.Value == "" {
			return !current.IsSet(), env
		}
		return !current.IsSet() || current.Negative || current.Value != sym.Value, env

	case symbol.FlagC: // clear feature
		return true, env.with(feature, Setting{})

	case symbol.FlagU: // unify: unset, equal to value, or negatively set to another value -> set to value
		if !current.IsSet() ||
			(!current.Negative && current.Value == sym.Value) ||
			(current.Negative && current.Value != sym.Value) {
			return true, env.with(feature, Setting{set: true, Value: sym.Value})
		}
		return false, env

	default:
		// The format parser rejects unrecognized operator letters at load
		// time (spec.md §9 open question), so a flag symbol reaching Eval
		// always carries one of the six ops above.
		panic("flagdiacritic: unknown flag operator")
	}
}

// Fingerprint returns a canonical string representation of env suitable
// for use as part of the search engine's cycle-guard key (spec.md §9:
// "fingerprint the feature environment as a sorted sequence of
// (feature, value) pairs"). Two environments with the same settings,
// regardless of insertion order, produce the same fingerprint.
func Fingerprint(env Environment) string {
	if len(env) == 0 {
		return ""
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := make([]byte, 0, 16*len(keys))
	for _, k := range keys {
		v := env[k]
		if !v.IsSet() {
			continue
		}
		buf = append(buf, k...)
		buf = append(buf, '=')
		if v.Negative {
			buf = append(buf, '!')
		}
		buf = append(buf, v.Value...)
		buf = append(buf, ';')
	}
	return string(buf)
}
