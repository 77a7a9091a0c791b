// Package viewmodel projects document decorations into view space for a
// rendering pass.
//
// The Decorations component answers one question once per frame: given the
// visible view range, which decorations are in it, where do they land after
// wrapping and folding, and which per-character inline decorations does each
// view line carry. Two caches keep the hot path cheap: a per-decoration-id
// cache of computed view ranges and a single-slot cache of the most recent
// viewport result. Both are invalidated wholesale on any model decoration or
// line mapping change; there is no partial invalidation.
//
// Everything here is a pure synchronous computation over in-memory state.
// Inputs are assumed well-formed; the hot path does not re-validate them.
package viewmodel
