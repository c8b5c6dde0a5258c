// Package platform implements spec.md section 4.2: an ordered map from a
// platform predicate to one or more PackageBackend names, with first-match
// wins dispatch. Grounded on golang-dep's per-OS source-file split
// (cmd_windows.go, import_mode_go15.go/go16.go) generalized into an
// explicit registry, since the teacher's own platform dispatch is ad hoc
// per-file rather than a runtime-checked table — and spec.md section 9's
// "rootdata.go's iterate-in-order, first-match-wins shape" is the pattern
// actually reused here.
package platform

import "runtime"

// Platform is a predicate over the running host.
type Platform int

const (
	ANY Platform = iota
	LINUX
	MACOS
	WINDOWS
)

func (p Platform) String() string {
	switch p {
	case ANY:
		return "any"
	case LINUX:
		return "linux"
	case MACOS:
		return "macos"
	case WINDOWS:
		return "windows"
	default:
		return "unknown"
	}
}

// Matches reports whether p matches the currently running host.
func (p Platform) Matches() bool {
	switch p {
	case ANY:
		return true
	case LINUX:
		return runtime.GOOS == "linux"
	case MACOS:
		return runtime.GOOS == "darwin"
	case WINDOWS:
		return runtime.GOOS == "windows"
	default:
		return false
	}
}

// Entry is one row of an ordered platform -> backend(s) table.
type Entry struct {
	Platform Platform
	Backends []string // backend names, e.g. []string{"apt"} or []string{"brew", "curl-sh"}
}

// Table is the ordered mapping a PackageRequirement carries, per spec.md
// section 4.2.
type Table []Entry

// FirstMatch returns the backend name list of the first Entry whose
// Platform matches the running host, and whether any entry matched.
func (t Table) FirstMatch() ([]string, bool) {
	for _, e := range t {
		if e.Platform.Matches() {
			return e.Backends, true
		}
	}
	return nil, false
}

// DeclaredPlatforms lists every platform named in the table, for error
// messages when no platform matches.
func (t Table) DeclaredPlatforms() []Platform {
	out := make([]Platform, 0, len(t))
	for _, e := range t {
		out = append(out, e.Platform)
	}
	return out
}
