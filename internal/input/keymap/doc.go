// Package keymap compiles keyboard layout descriptions into the
// immutable tables the resolution pipeline reads.
//
// A layout description is a JSON document naming the layout's
// modifier table, its key types (which modifier combinations select
// which shift level, and which of those modifiers stay unconsumed),
// and the per-keycode symbol tables. Descriptions are validated
// against an embedded JSON Schema before compilation, so a rejected
// document carries a precise reason instead of a decode panic.
//
// # Compilation
//
//	compiler := keymap.NewCompiler()
//	layout, err := compiler.CompileFile("de.json")
//	if err != nil {
//	    var ce *keymap.CompileError
//	    if errors.As(err, &ce) {
//	        // ce.Source, ce.Detail locate the problem
//	    }
//	}
//
// A successful compile produces a *Layout carrying everything
// resolution needs: keycode -> group -> level symbol tables, per-key
// repeat eligibility, consumed-modifier masks, and the ModifierMap
// that projects the layout's raw modifier bits onto the portable
// six-modifier vocabulary. Layouts are immutable; a layout change
// compiles a brand-new Layout under a fresh generation and the old
// one is Released once nothing is bound to it. Lookups against a
// released layout return nothing.
//
// # Fallback layout
//
// CompileFallback builds the always-available fallback layout used
// when the active layout cannot explain a keycode. It prefers a
// configured description file and falls back to the embedded US
// layout, so it cannot fail into absence.
//
// # Live reload
//
// Watcher reports description-file changes (debounced) so the owner
// can recompile. Compile failures during reload are non-fatal: the
// previous layout keeps serving.
package keymap
