package merge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLoad is matched by every ancestor load failure
	ErrLoad = errors.New("failed to load ancestor declarations")
	// ErrCyclicHierarchy is returned when a class reappears on its own ancestor path
	ErrCyclicHierarchy = errors.New("cyclic class hierarchy")
	// ErrMaxDepthExceeded is returned when the ancestor walk goes deeper than allowed
	ErrMaxDepthExceeded = errors.New("class hierarchy too deep")
	// ErrUnresolved is returned for unresolvable ancestors when truncation is disabled
	ErrUnresolved = errors.New("unresolved ancestor")
)

// Load stages
const (
	StageLocate  = "locate"
	StageRead    = "read"
	StageParse   = "parse"
	StageOverlay = "overlay"
)

// LoadError describes an ancestor whose header could not be located, read or parsed
type LoadError struct {
	Class  string // Ancestor being resolved
	Header string // Header name from the hierarchy index
	Path   string // Located path, empty when not found
	Stage  string
	Err    error
}

func (e *LoadError) Error() string {
	switch e.Stage {
	case StageLocate:
		return fmt.Sprintf("couldn't locate header file %s for class %s: %v", e.Header, e.Class, e.Err)
	case StageRead:
		return fmt.Sprintf("couldn't open header file %s for class %s: %v", e.Path, e.Class, e.Err)
	case StageOverlay:
		return fmt.Sprintf("couldn't apply hints to header file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("couldn't parse header file %s for class %s: %v", e.Path, e.Class, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports ErrLoad identity
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// CycleError carries the active ancestor path that closed a cycle
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicHierarchy, strings.Join(e.Path, " -> "))
}

// Is reports ErrCyclicHierarchy identity
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicHierarchy
}
