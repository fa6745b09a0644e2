package app

// State is the lifecycle state of the application.
type State int

const (
	// StateUninitialized is the state before construction completes.
	StateUninitialized State = iota
	// StateRunning is entered once actions are registered.
	StateRunning
	// StateTerminating is entered on quit or when the event loop shuts down.
	// It is never left.
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// Flags are the startup flags of the application.
type Flags uint

// FlagsNone is the empty flag set.
const FlagsNone Flags = 0

const (
	// FlagNonUnique runs without claiming the application ID, so every
	// launch is its own primary instance.
	FlagNonUnique Flags = 1 << iota
	// FlagIsService keeps the event loop alive with no windows open.
	FlagIsService
)

// Has reports whether all bits of f are set.
func (fs Flags) Has(f Flags) bool {
	return fs&f == f
}
