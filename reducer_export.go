package noyastate

import (
	"math"
	"slices"

	"github.com/noya-app/noyastate/sketch"
)

// ExportFileFormats are the formats an export setting may use.
var ExportFileFormats = []string{"png", "jpg", "webp", "pdf", "svg"}

func exportReducer(s *ApplicationState, action Action, _ RenderContext) (*ApplicationState, bool) {
	switch a := action.(type) {
	case AddExportFormat:
		return updateLayers(s, targetPaths(s, a.LayerIDs), func(l *sketch.Layer) bool {
			l.ExportOptions.ExportFormats = append(l.ExportOptions.ExportFormats, sketch.ExportFormat{
				ObjectID:   sketch.NewObjectID(),
				FileFormat: "png",
				Scale:      1,
			})
			return true
		}), true
	case RemoveExportFormat:
		return editExportFormats(s, func(formats *[]sketch.ExportFormat) bool {
			return deleteAt(formats, a.Index)
		}), true
	case SetExportScale:
		if a.Scale <= 0 || math.IsNaN(a.Scale) {
			return s, true
		}
		return editExportFormat(s, a.Index, func(f *sketch.ExportFormat) bool {
			return set(&f.Scale, a.Scale)
		}), true
	case SetExportName:
		return editExportFormat(s, a.Index, func(f *sketch.ExportFormat) bool {
			return set(&f.Name, a.Name)
		}), true
	case SetExportFileFormat:
		if !slices.Contains(ExportFileFormats, a.Format) {
			Logger().Debug("noyastate: unsupported export format", "action", ActionType(a), "format", a.Format)
			return s, true
		}
		return editExportFormat(s, a.Index, func(f *sketch.ExportFormat) bool {
			return set(&f.FileFormat, a.Format)
		}), true
	}
	return s, false
}

func editExportFormats(s *ApplicationState, fn func(formats *[]sketch.ExportFormat) bool) *ApplicationState {
	return updateLayers(s, GetSelectedLayerIndexPaths(s), func(l *sketch.Layer) bool {
		return fn(&l.ExportOptions.ExportFormats)
	})
}

func editExportFormat(s *ApplicationState, i int, fn func(f *sketch.ExportFormat) bool) *ApplicationState {
	return editExportFormats(s, func(formats *[]sketch.ExportFormat) bool {
		return i >= 0 && i < len(*formats) && fn(&(*formats)[i])
	})
}
