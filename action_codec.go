package noyastate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/sketch"
)

var actionTypes = registerActions(
	Batch{},
	AddPage{}, DeletePage{}, SetPageName{}, DuplicatePage{}, SelectPage{}, MovePage{},
	AddDrawnLayer{}, DeleteLayer{}, DuplicateLayer{}, GroupLayers{}, UngroupLayers{}, MoveLayer{},
	SelectLayer{}, SelectAllLayers{}, DeselectAllLayers{}, SetLayerVisible{}, SetLayerIsLocked{},
	SetLayerName{}, SetExpandedInLayerList{}, SetIsolatedLayer{}, BringToFront{}, SendToBack{},
	SetLayerX{}, SetLayerY{}, SetLayerWidth{}, SetLayerHeight{}, SetLayerRotation{}, SetFixedRadius{},
	SetLayerOpacity{}, SetConstrainProportions{}, SetIsFlippedHorizontal{}, SetIsFlippedVertical{},
	SetBlockContent{},
	AddNewFill{}, AddNewBorder{}, AddNewShadow{}, DeleteFill{}, DeleteBorder{}, DeleteShadow{},
	MoveFill{}, MoveBorder{}, MoveShadow{}, SetFillEnabled{}, SetBorderEnabled{}, SetShadowEnabled{},
	SetFillColor{}, SetBorderColor{}, SetShadowColor{}, SetFillType{}, SetBorderWidth{},
	SetBorderPosition{}, SetShadowX{}, SetShadowY{}, SetShadowBlur{}, SetShadowSpread{},
	SetGradientType{}, AddGradientStop{}, DeleteGradientStop{}, SetGradientStopColor{},
	SetGradientStopPosition{}, SetSelectedGradient{},
	CreateSymbol{}, DetachSymbol{}, SetOverrideValue{}, SetSymbolInstanceSource{}, DuplicateSymbol{},
	SetSymbolName{},
	SelectPoint{}, SelectAllPoints{}, DeletePoint{}, SetPointX{}, SetPointY{}, SetPointCurveMode{},
	SetPointCornerRadius{}, InsertPointInPath{}, SetIsClosed{}, SelectControlPoint{},
	SetTextSelection{}, MoveCursor{}, MoveTextSelection{}, InsertText{}, DeleteText{}, SelectAllText{},
	SelectContainingText{},
	SetTextColor{}, SetTextFontName{}, SetTextFontSize{}, SetTextLetterSpacing{}, SetTextLineSpacing{},
	SetTextAlignment{}, SetTextVerticalAlignment{}, SetTextBehaviour{}, SetTextDecoration{},
	SetTextTransform{},
	SetThemeTab{}, SelectThemeItems{}, AddSwatch{}, SetSwatchName{}, SetSwatchColor{}, RemoveSwatches{},
	DuplicateSwatches{}, AddLayerStyle{}, SetLayerStyleName{}, UpdateLayerStyle{}, RemoveLayerStyles{},
	SetLayerSharedStyle{}, AddTextStyle{}, SetTextStyleName{}, RemoveTextStyles{}, SetTextSharedStyle{},
	GroupThemeItems{},
	AlignLayers{}, DistributeLayers{},
	AddExportFormat{}, RemoveExportFormat{}, SetExportScale{}, SetExportName{}, SetExportFileFormat{},
	FloodFillBitmap{}, DrawBitmapRectangle{}, DrawBitmapPencil{}, InsertBitmap{},
	SetTab{}, SetKeyModifier{}, SetInteractionType{}, SetZoom{}, ZoomToFit{}, Pan{},
)

func registerActions(actions ...Action) map[string]reflect.Type {
	m := make(map[string]reflect.Type, len(actions))
	for _, a := range actions {
		m[a.actionType()] = reflect.TypeOf(a)
	}
	return m
}

// ActionTypes returns every action tag.
func ActionTypes() []string {
	out := make([]string, 0, len(actionTypes))
	for tag := range actionTypes {
		out = append(out, tag)
	}
	return out
}

// sketchEnums gives the document's integer enums their wire names.
var sketchEnums = map[reflect.Type]map[string]int64{
	reflect.TypeFor[sketch.FillType]():          {"color": 0, "gradient": 1, "pattern": 4},
	reflect.TypeFor[sketch.BorderPosition]():    {"center": 0, "inside": 1, "outside": 2},
	reflect.TypeFor[sketch.GradientType]():      {"linear": 0, "radial": 1, "angular": 2},
	reflect.TypeFor[sketch.TextAlignment]():     {"left": 0, "right": 1, "center": 2, "justified": 3},
	reflect.TypeFor[sketch.VerticalAlignment](): {"top": 0, "middle": 1, "bottom": 2},
	reflect.TypeFor[sketch.TextBehaviour]():     {"autoWidth": 0, "autoHeight": 1, "fixed": 2},
	reflect.TypeFor[sketch.TextTransform]():     {"none": 0, "uppercase": 1, "lowercase": 2},
	reflect.TypeFor[sketch.CurveMode]():         {"none": 0, "straight": 1, "mirrored": 2, "asymmetric": 3, "disconnected": 4},
}

var (
	colorType  = reflect.TypeFor[sketch.Color]()
	pointType  = reflect.TypeFor[geometry.Point]()
	pointsType = reflect.TypeFor[[]geometry.Point]()
)

// DecodeAction parses one JSON tuple such as ["setPageName", "id", "Cover"].
func DecodeAction(data []byte) (Action, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ActionDecodeError{Index: -1, Err: fmt.Errorf("%w: %w", ErrMalformedAction, err)}
	}
	a, tag, err := decodeTuple(raw)
	if err != nil {
		return nil, &ActionDecodeError{Index: -1, Tag: tag, Err: err}
	}
	return a, nil
}

// DecodeScript reads a YAML (or JSON) list of action tuples.
func DecodeScript(r io.Reader) ([]Action, error) {
	var script []any
	if err := yaml.NewDecoder(r).Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("noyastate: decode script: %w", err)
	}
	actions := make([]Action, 0, len(script))
	for i, item := range script {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, &ActionDecodeError{Index: i, Err: fmt.Errorf("%w: %w", ErrMalformedAction, err)}
		}
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &ActionDecodeError{Index: i, Err: fmt.Errorf("%w: not a tuple", ErrMalformedAction)}
		}
		a, tag, err := decodeTuple(raw)
		if err != nil {
			return nil, &ActionDecodeError{Index: i, Tag: tag, Err: err}
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func decodeTuple(raw []json.RawMessage) (Action, string, error) {
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("%w: empty tuple", ErrMalformedAction)
	}
	var tag string
	if err := json.Unmarshal(raw[0], &tag); err != nil {
		return nil, "", fmt.Errorf("%w: tag is not a string", ErrMalformedAction)
	}
	t, ok := actionTypes[tag]
	if !ok {
		return nil, tag, ErrUnknownAction
	}
	args := raw[1:]

	if tag == "batch" {
		var b Batch
		if len(args) == 0 || isNull(args[0]) {
			return b, tag, nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(args[0], &items); err != nil {
			return nil, tag, fmt.Errorf("%w: batch wants a list of actions", ErrMalformedAction)
		}
		for i, item := range items {
			var sub []json.RawMessage
			if err := json.Unmarshal(item, &sub); err != nil {
				return nil, tag, fmt.Errorf("%w: batch item %d is not a tuple", ErrMalformedAction, i)
			}
			a, subTag, err := decodeTuple(sub)
			if err != nil {
				return nil, tag, fmt.Errorf("batch item %d (%q): %w", i, subTag, err)
			}
			b.Actions = append(b.Actions, a)
		}
		return b, tag, nil
	}

	if len(args) > t.NumField() {
		return nil, tag, fmt.Errorf("%w: %d arguments, want at most %d", ErrMalformedAction, len(args), t.NumField())
	}
	v := reflect.New(t).Elem()
	for i, arg := range args {
		if err := decodeField(v.Field(i), arg); err != nil {
			return nil, tag, fmt.Errorf("%w: %s: %w", ErrMalformedAction, t.Field(i).Name, err)
		}
	}
	return v.Interface().(Action), tag, nil
}

func decodeField(f reflect.Value, raw json.RawMessage) error {
	if isNull(raw) {
		return nil
	}
	switch f.Type() {
	case colorType:
		var hex string
		if json.Unmarshal(raw, &hex) == nil {
			c, err := sketch.ParseHex(hex)
			if err != nil {
				return err
			}
			f.Set(reflect.ValueOf(c))
			return nil
		}
	case pointType:
		var xy []float64
		if json.Unmarshal(raw, &xy) == nil {
			if len(xy) != 2 {
				return fmt.Errorf("point wants 2 coordinates, got %d", len(xy))
			}
			f.Set(reflect.ValueOf(geometry.Pt(xy[0], xy[1])))
			return nil
		}
	case pointsType:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		points := make([]geometry.Point, len(items))
		for i, item := range items {
			if err := decodeField(reflect.ValueOf(&points[i]).Elem(), item); err != nil {
				return err
			}
		}
		f.Set(reflect.ValueOf(points))
		return nil
	}
	if names, ok := sketchEnums[f.Type()]; ok {
		var name string
		if json.Unmarshal(raw, &name) == nil {
			n, ok := names[name]
			if !ok {
				return fmt.Errorf("unknown %s %q", f.Type().Name(), name)
			}
			f.SetInt(n)
			return nil
		}
	}
	return json.Unmarshal(raw, f.Addr().Interface())
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// EncodeAction writes a as a JSON tuple that DecodeAction reads back.
func EncodeAction(a Action) ([]byte, error) {
	return json.Marshal(encodeTuple(a))
}

func encodeTuple(a Action) []any {
	out := []any{a.actionType()}
	if b, ok := a.(Batch); ok {
		items := make([]any, 0, len(b.Actions))
		for _, sub := range b.Actions {
			items = append(items, encodeTuple(sub))
		}
		return append(out, items)
	}
	v := reflect.ValueOf(a)
	for i := range v.NumField() {
		f := v.Field(i)
		if names, ok := sketchEnums[f.Type()]; ok {
			out = append(out, enumName(names, f.Int()))
			continue
		}
		out = append(out, f.Interface())
	}
	return out
}

func enumName(names map[string]int64, v int64) any {
	for name, n := range names {
		if n == v {
			return name
		}
	}
	return v
}
