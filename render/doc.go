// Package render computes what a menu screen looks like for one frame.
//
// The renderer does no incremental patching: every call walks the compiled
// tree against a fresh state snapshot and produces a complete Frame. That
// makes it idempotent (same state, same frame) and order-independent, and
// it sidesteps observer-graph lifetime problems entirely. Evaluation
// failures degrade: a failing conditional excludes its subtree, a failing
// interpolation renders empty text, and neither ever aborts the frame.
package render
