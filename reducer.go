package noyastate

// subReducer handles one domain of actions. handled is false for actions
// outside its domain, in which case the state is returned unchanged.
type subReducer func(s *ApplicationState, action Action, ctx RenderContext) (next *ApplicationState, handled bool)

var subReducers = []subReducer{
	pageReducer,
	layerReducer,
	layerPropertyReducer,
	styleReducer,
	symbolsReducer,
	pointReducer,
	textEditorReducer,
	textStyleReducer,
	themeReducer,
	alignmentReducer,
	exportReducer,
	bitmapReducer,
	canvasReducer,
}

// ApplicationReducer applies action to s and returns the new state. s is
// never modified. Actions that match nothing, or whose targets do not exist,
// return s itself.
func ApplicationReducer(s *ApplicationState, action Action, ctx RenderContext) *ApplicationState {
	if s == nil || action == nil {
		return s
	}
	if b, ok := action.(Batch); ok {
		for _, a := range b.Actions {
			s = ApplicationReducer(s, a, ctx)
		}
		return s
	}
	for _, reduce := range subReducers {
		if next, handled := reduce(s, action, ctx); handled {
			return next
		}
	}
	return s
}
