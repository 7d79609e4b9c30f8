// Package form models the planner intake form: the typed field registry, the
// section layout, raw user-entered values, and the two validation tiers.
//
// # Field Registry
//
// Fields are declared once in DefaultRegistry. Each Spec carries the field's
// kind (number or choice), whether it is required, its numeric bounds, and
// its options. FieldID values double as the form-encoded keys posted to the
// backend, so the registry is also the wire contract.
//
// Lookups report absence instead of failing: a feature that depends on a
// field missing from the registry (a preview, the goal check) degrades to a
// no-op rather than breaking the form.
//
// # Validation Tiers
//
// CheckConstraints is the first tier: per-field declared constraints
// (required, numeric, option membership). A failure here blocks submission
// before any custom rule runs.
//
// Validate is the second tier, run only on values that passed the first:
// goal consistency between current weight, target weight, and goal, then the
// declared min/max ranges. All checks run without short-circuiting and
// accumulate across fields, but each field keeps at most one message - the
// last check to fail a field wins. The returned Errors map is freshly built
// on every call, so rendering it replaces all prior annotations.
package form
