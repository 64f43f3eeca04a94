// Package noyastate is the document state and reducer engine of the Noya
// design editor.
//
// # Overview
//
// An [ApplicationState] holds a Sketch document (package sketch) together
// with the editor's selection and interaction state. The only way to change
// it is [ApplicationReducer], a pure function from a state and an [Action] to
// a new state:
//
//	state, err := noyastate.CreateInitialState(file)
//	if err != nil {
//	    return err
//	}
//	ctx := noyastate.RenderContext{FontManager: paragraph.NewFontManager()}
//	state = noyastate.ApplicationReducer(state, noyastate.AddPage{Name: "Icons"}, ctx)
//
// # Copy-on-write
//
// Reducers never modify their input. Every call returns a new root that
// shares all unchanged subtrees with the previous one, so both states stay
// valid snapshots. An action that changes nothing returns the input pointer.
//
// # Actions
//
// Actions are a closed set of struct types. Over the wire they are tagged
// tuples such as ["moveLayer", "A", "B", "inside"]; see [DecodeAction] and
// [DecodeScript].
//
// # Selectors
//
// Read-only views of a state (GetCurrentPage, GetBoundingRect,
// GetLayerAtPoint and friends) never modify it and are safe to call
// concurrently on the same state.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] to see reducer
// diagnostics.
package noyastate
