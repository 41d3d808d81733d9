// Package pipeline provides a framework for executing mining stages in
// sequence.
//
// A thread run moves through multiple stages: fetching page snapshots,
// extracting message records, optionally persisting them, and
// summarizing compliance per author. Each stage is implemented as a
// Step that receives the accumulated report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running runs
package pipeline
