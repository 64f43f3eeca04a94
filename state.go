package noyastate

import (
	"maps"
	"slices"

	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
)

// KeyModifiers are the modifier keys currently held.
type KeyModifiers struct {
	Shift   bool `json:"shiftKey"`
	Alt     bool `json:"altKey"`
	Control bool `json:"ctrlKey"`
	Meta    bool `json:"metaKey"`
}

// InteractionState is the canvas interaction in progress.
type InteractionState struct {
	Type InteractionType `json:"type"`
}

// ControlPointRef addresses one handle of one point of a path layer.
type ControlPointRef struct {
	LayerID          string           `json:"layerId"`
	PointIndex       int              `json:"pointIndex"`
	ControlPointType ControlPointType `json:"controlPointType"`
}

// TextSelection is the caret or range inside a text layer being edited.
type TextSelection struct {
	LayerID string         `json:"layerId"`
	Range   textedit.Range `json:"range"`
}

// GradientRef addresses one gradient stop being edited.
type GradientRef struct {
	LayerID   string    `json:"layerId"`
	FillIndex int       `json:"fillIndex"`
	StopIndex int       `json:"stopIndex"`
	StyleType StyleType `json:"styleType"`
}

// ApplicationState is the whole editor state. Treat it as immutable: the
// only producer of new states is ApplicationReducer.
type ApplicationState struct {
	CurrentTab       Tab              `json:"currentTab"`
	InteractionState InteractionState `json:"interactionState"`
	KeyModifiers     KeyModifiers     `json:"keyModifiers"`

	SelectedPage     string   `json:"selectedPage"`
	SelectedLayerIDs []string `json:"selectedLayerIds"`

	// SelectedPointLists maps a path layer's ID to its selected point indices.
	SelectedPointLists   map[string][]int `json:"selectedPointLists"`
	SelectedControlPoint *ControlPointRef `json:"selectedControlPoint,omitempty"`
	SelectedText         *TextSelection   `json:"selectedText,omitempty"`
	SelectedGradient     *GradientRef     `json:"selectedGradient,omitempty"`

	SelectedThemeTab      ThemeTab `json:"selectedThemeTab"`
	SelectedSwatchIDs     []string `json:"selectedSwatchIds"`
	SelectedLayerStyleIDs []string `json:"selectedLayerStyleIds"`
	SelectedTextStyleIDs  []string `json:"selectedTextStyleIds"`
	SelectedSymbolIDs     []string `json:"selectedSymbolIds"`

	IsolatedLayerID string `json:"isolatedLayerId,omitempty"`

	Sketch *sketch.File `json:"sketch"`
}

// CreateInitialState returns the state of a freshly opened document with
// its first page selected.
func CreateInitialState(file *sketch.File) (*ApplicationState, error) {
	if file == nil || len(file.Pages) == 0 {
		return nil, ErrNoPages
	}
	Logger().Info("noyastate: initial state created", "pages", len(file.Pages))
	return &ApplicationState{
		CurrentTab:            TabCanvas,
		SelectedPage:          file.Pages[0].ObjectID,
		SelectedLayerIDs:      []string{},
		SelectedPointLists:    map[string][]int{},
		SelectedSwatchIDs:     []string{},
		SelectedLayerStyleIDs: []string{},
		SelectedTextStyleIDs:  []string{},
		SelectedSymbolIDs:     []string{},
		Sketch:                file,
	}, nil
}

// clone copies the state's selection collections. The document is shared.
func (s *ApplicationState) clone() *ApplicationState {
	out := *s
	out.SelectedLayerIDs = slices.Clone(s.SelectedLayerIDs)
	out.SelectedPointLists = make(map[string][]int, len(s.SelectedPointLists))
	for id, points := range s.SelectedPointLists {
		out.SelectedPointLists[id] = slices.Clone(points)
	}
	out.SelectedSwatchIDs = slices.Clone(s.SelectedSwatchIDs)
	out.SelectedLayerStyleIDs = slices.Clone(s.SelectedLayerStyleIDs)
	out.SelectedTextStyleIDs = slices.Clone(s.SelectedTextStyleIDs)
	out.SelectedSymbolIDs = slices.Clone(s.SelectedSymbolIDs)
	return &out
}

// clearPageSelection resets everything that refers into the current page.
func (s *ApplicationState) clearPageSelection() {
	s.SelectedLayerIDs = []string{}
	s.SelectedPointLists = map[string][]int{}
	s.SelectedControlPoint = nil
	s.SelectedText = nil
	s.SelectedGradient = nil
	s.IsolatedLayerID = ""
}

// pruneSelection drops references to layers that no longer exist on the
// current page.
func (s *ApplicationState) pruneSelection() {
	page := GetCurrentPage(s)
	if page == nil {
		s.clearPageSelection()
		return
	}
	exists := make(map[string]bool)
	sketch.Visit(page, visitAll(func(l *sketch.Layer) { exists[l.ObjectID] = true }))

	s.SelectedLayerIDs = slices.DeleteFunc(s.SelectedLayerIDs, func(id string) bool { return !exists[id] })
	maps.DeleteFunc(s.SelectedPointLists, func(id string, _ []int) bool { return !exists[id] })
	if s.SelectedControlPoint != nil && !exists[s.SelectedControlPoint.LayerID] {
		s.SelectedControlPoint = nil
	}
	if s.SelectedText != nil && !exists[s.SelectedText.LayerID] {
		s.SelectedText = nil
	}
	if s.SelectedGradient != nil && !exists[s.SelectedGradient.LayerID] {
		s.SelectedGradient = nil
	}
	if s.IsolatedLayerID != "" && !exists[s.IsolatedLayerID] {
		s.IsolatedLayerID = ""
	}
}
