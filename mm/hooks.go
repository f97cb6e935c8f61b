package mm

// ErrorKind classifies conditions reported through Hooks.ReportError.
// OutOfMemory is currently the only recoverable condition this
// allocator produces (spec §7); the type exists so callers can switch
// on it without string-matching a message.
type ErrorKind int

const (
	// OutOfMemory is reported when every region declines a request and
	// pressure relief could not free enough space to satisfy it.
	OutOfMemory ErrorKind = iota
)

// Hooks are the external collaborators this allocator consumes. Only
// Fatal is required; ReportError and the two pressure-relief callbacks
// default to no-ops when left nil.
type Hooks struct {
	// Fatal reports an unrecoverable invariant violation (bad magic, an
	// unaligned or out-of-range pointer) and must never return. Implementations that do return leave
	// the allocator to continue operating on state it has already
	// declared broken — callers embedding this in a real bootloader
	// should make Fatal halt or reset the machine.
	Fatal func(format string, args ...any)

	// ReportError reports a recoverable condition. Unlike Fatal, the
	// allocator's state is guaranteed consistent when this is called.
	ReportError func(kind ErrorKind, message string)

	// InvalidateDiskCaches and UnloadUnneededModules are pressure-relief
	// callbacks invoked, in that order, when every region has declined
	// an allocation. Both are idempotent and safe to call with no
	// effect; either may be nil, which this allocator treats the same
	// as a callback that freed nothing.
	InvalidateDiskCaches  func()
	UnloadUnneededModules func()
}

func (h Hooks) fatal(format string, args ...any) {
	if h.Fatal == nil {
		panic("mm: fatal callback not installed")
	}
	h.Fatal(format, args...)
	// Hooks.Fatal must not return; panic if a misbehaving implementation
	// does, so corruption is never silently continued past.
	panic("mm: Hooks.Fatal returned")
}

func (h Hooks) reportError(kind ErrorKind, message string) {
	if h.ReportError != nil {
		h.ReportError(kind, message)
	}
}

func (h Hooks) invalidateDiskCaches() {
	if h.InvalidateDiskCaches != nil {
		h.InvalidateDiskCaches()
	}
}

func (h Hooks) unloadUnneededModules() {
	if h.UnloadUnneededModules != nil {
		h.UnloadUnneededModules()
	}
}
