// Package tui implements the interactive terminal interface for Nutriplan.
//
// The interface is built with Bubble Tea and is organized as a small set of
// screens owned by a top-level coordinator (AppModel):
//
//   - Form: the three-section intake form with live previews (projected
//     weight change, estimated BMR), two-tier validation and the submission
//     state machine.
//   - Result: the plan document returned by the backend (calorie target,
//     macro breakdown, meal plan, recipes).
//   - Failure: a short error with a troubleshooting hint; the form values
//     stay intact for retry or editing.
//
// Two timers drive the form's behavior and neither is ever cancelled:
// a 500ms auto-advance timer scheduled when an input completes a section
// (it re-checks the live state when it fires), and a 20s recovery timer
// armed at submission that re-enables the submit action if no response has
// arrived (the in-flight request keeps running and a late response still
// lands).
//
// All screens render through RenderApplicationContainer for a consistent
// full-screen layout with header and context-sensitive footer.
package tui
