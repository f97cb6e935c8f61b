package mm

// Strategy selects where an intra-region scan starts and which
// direction it walks the free ring.
type Strategy uint8

const (
	// StrategyFirst begins at the ring head and walks forward, stopping
	// after the element just before the head. It is the simplest
	// strategy and biases allocation toward the lowest address in a
	// region.
	StrategyFirst Strategy = iota

	// StrategySecond begins one past the ring head and walks forward,
	// stopping at the head itself. This is the default strategy: never
	// starting at the lowest address reduces the worst-case
	// fragmentation that a pure first-fit scan produces.
	StrategySecond

	// StrategyLast begins at the element just before the head and walks
	// backward, stopping at the head. Allocations under this strategy
	// are packed toward the highest address in a block that fits.
	StrategyLast

	// StrategySkip declines to serve a policy from this region; the
	// region-list allocator moves on to the next region.
	StrategySkip
)

// PolicyID names an allocation-policy slot. Every region maps each
// PolicyID to a Strategy (or StrategySkip) independently, because
// different physical regions have different affinities — a region
// backed by low, firmware-visible memory should only be consumed when a
// caller explicitly asks for it.
type PolicyID uint8

const (
	// PolicyDefault is used by Allocate, AllocateAligned, and
	// AllocateZeroed.
	PolicyDefault PolicyID = iota

	// PolicyLowMemory is used when an allocation must land in a
	// low-address region, for example to satisfy a firmware-visible
	// buffer.
	PolicyLowMemory

	// NumPolicies is the compile-time number of policy slots every
	// region's strategy table carries.
	NumPolicies
)
