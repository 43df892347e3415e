// Package fixture binds classes with one-time setup to companion fixture
// classes and synthesizes those companions.
package fixture

import (
	"fmt"
	"sync"
)

// Scope is the lifetime of the companion-name slot.
type Scope uint8

const (
	// ScopeRun keeps the first name for the whole run: every later class
	// with one-time setup binds to it, whatever its own name.
	ScopeRun Scope = iota
	// ScopeFile forgets the name at the start of each file.
	ScopeFile
	// ScopeClass derives the name from each class.
	ScopeClass
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFile:
		return "file"
	case ScopeClass:
		return "class"
	default:
		return fmt.Sprintf("Scope(%d)", uint8(s))
	}
}

// ParseScope parses "run", "file" or "class".
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "run":
		return ScopeRun, nil
	case "file":
		return ScopeFile, nil
	case "class":
		return ScopeClass, nil
	}
	return ScopeRun, fmt.Errorf("unknown fixture scope %q (want run, file or class)", s)
}

// Suffix is appended to a class name to form its companion's name.
const Suffix = "Fixture"

// Binder hands out companion names. It is safe for concurrent use.
type Binder struct {
	scope Scope
	mu    sync.Mutex
	slot  string
}

func NewBinder(scope Scope) *Binder {
	return &Binder{scope: scope}
}

func (b *Binder) Scope() Scope { return b.scope }

// BeginFile marks the start of a new file.
func (b *Binder) BeginFile() {
	if b.scope != ScopeFile {
		return
	}
	b.mu.Lock()
	b.slot = ""
	b.mu.Unlock()
}

// Checkpoint is a saved slot, taken before a file is rewritten.
type Checkpoint struct{ slot string }

func (b *Binder) Checkpoint() Checkpoint {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Checkpoint{slot: b.slot}
}

// Rollback forgets names claimed since c. A file that is not written
// back must not leave later classes bound to a companion it never emitted.
func (b *Binder) Rollback(c Checkpoint) {
	b.mu.Lock()
	b.slot = c.slot
	b.mu.Unlock()
}

// Resolve returns the companion name for className. reused is true when
// the name was claimed earlier by a different class.
func (b *Binder) Resolve(className string) (name string, reused bool) {
	own := className + Suffix
	if b.scope == ScopeClass {
		return own, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.slot == "" {
		b.slot = own
	}
	return b.slot, b.slot != own
}
