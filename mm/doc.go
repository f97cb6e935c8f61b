// Package mm implements the heap allocator for a standalone bootloader:
// a multi-region, variable-alignment dynamic memory manager that runs
// without any operating-system services and without an underlying
// allocator to delegate to.
//
// # Overview
//
// The allocator owns a set of disjoint memory regions contributed by the
// caller at initialization time (see RegisterRegion) and services
// general-purpose allocation, aligned allocation, zeroed allocation,
// resizing, and release through a classic free-store interface.
//
// # Regions and cells
//
// Every region is carved into cells: the atomic allocation granularity,
// sized to hold one block header exactly. Cells are addressed as byte
// offsets within a region's backing slice; the header of an allocated or
// free block always occupies the cell immediately before the block's
// payload.
//
// # Free rings
//
// Free space within a region forms a circular doubly-linked ring of
// block headers, kept in address order. Allocation splices blocks out of
// the ring (splitting off any excess); release splices them back in,
// coalescing with address-adjacent neighbors.
//
// # Strategies and policies
//
// Each region maps a caller-selected PolicyID to a Strategy (First,
// Second, Last, or Skip) describing where a scan starts and which
// direction it walks. Second is the default: it never biases allocation
// toward the lowest address in a region, which reduces fragmentation
// relative to always taking the head of the ring.
//
// # Multi-region fallback
//
// (*Heap).AllocateAlignedPolicy walks all registered regions in
// ascending-length order (small regions are exhausted first, keeping
// fragmentation out of the large ones). If every region declines, it
// invokes the caller's pressure-relief callbacks in a fixed sequence and
// retries, finally reporting an out-of-memory condition through the
// Hooks.ReportError channel.
//
// # Error handling
//
// Two channels are strictly separated. Invariant violations — a bad
// magic word on the header behind a pointer passed to Resize or Release
// or on any header a debug dump visits, an unaligned or out-of-range
// pointer — are fatal: they abort through Hooks.Fatal and never return.
// Free-ring links are byte offsets; the allocation scan and the ring
// surgery follow them without validating them or the magic words of the
// headers they reach.
// Running out of memory after pressure relief is recoverable: it is
// reported through Hooks.ReportError and surfaces to the caller as a nil
// pointer. There is no third outcome.
//
// # Concurrency
//
// The allocator assumes a single-threaded, non-preemptible caller, as a
// boot-time environment provides. No locking is performed.
//
// # Related packages
//
//   - github.com/zfsonlinux/grub/mm/rawmem: acquires real OS-backed
//     memory ranges to hand to RegisterRegion, standing in for the
//     physical memory-map discovery this package deliberately does not
//     perform.
package mm
