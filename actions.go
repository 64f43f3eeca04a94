package noyastate

import (
	"encoding/json"
	"fmt"

	"github.com/noya-app/noyastate/bitmap"
	"github.com/noya-app/noyastate/geometry"
	"github.com/noya-app/noyastate/selection"
	"github.com/noya-app/noyastate/sketch"
	"github.com/noya-app/noyastate/textedit"
)

// Action is one edit. The set of actions is closed: every implementation
// lives in this package.
//
// Field order is the order of the tuple elements after the tag, so
// SetLayerWidth{LayerIDs, Value, Mode} is ["setLayerWidth", ids, value, mode].
// Trailing elements may be omitted and take their zero value.
type Action interface {
	actionType() string
}

// ActionType returns the wire tag of a.
func ActionType(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionType()
}

// IDList is a list of layer or asset IDs. On the wire it may be a single
// ID, a list or null. An empty list means "the current selection" for
// actions that target layers.
type IDList []string

// UnmarshalJSON accepts a string, an array of strings or null.
func (l *IDList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = selection.One(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("%w: id list: %w", ErrMalformedAction, err)
	}
	*l = many
	return nil
}

// Batch applies Actions in order, each to the result of the previous one.
// There is no rollback: a no-op in the middle does not undo earlier actions.
type Batch struct{ Actions []Action }

// Pages.
type (
	AddPage       struct{ Name string }
	DeletePage    struct{ PageID string }
	SetPageName   struct{ PageID, Name string }
	DuplicatePage struct{ PageID string }
	SelectPage    struct{ PageID string }
	MovePage      struct{ SourceIndex, DestinationIndex int }
)

// Layer structure and selection.
type (
	// AddDrawnLayer adds a shape, text, artboard or slice drawn at Rect in
	// page coordinates. It lands inside the topmost artboard containing Rect.
	AddDrawnLayer struct {
		Kind sketch.Kind
		Rect geometry.Rect
	}
	DeleteLayer    struct{ LayerIDs IDList }
	DuplicateLayer struct{ LayerIDs IDList }
	GroupLayers    struct {
		LayerIDs IDList
		Name     string
	}
	UngroupLayers struct{ LayerIDs IDList }
	MoveLayer     struct {
		LayerIDs      IDList
		DestinationID string
		Position      MovePosition
	}
	SelectLayer struct {
		LayerIDs IDList
		Mode     selection.Mode
	}
	SelectAllLayers   struct{}
	DeselectAllLayers struct{}
	SetLayerVisible   struct {
		LayerIDs IDList
		Visible  bool
	}
	SetLayerIsLocked struct {
		LayerIDs IDList
		Locked   bool
	}
	SetLayerName           struct{ LayerID, Name string }
	SetExpandedInLayerList struct {
		LayerID  string
		Expanded bool
	}
	// SetIsolatedLayer restricts editing to one layer; an empty ID clears it.
	SetIsolatedLayer struct{ LayerID string }
	BringToFront     struct{ LayerIDs IDList }
	SendToBack       struct{ LayerIDs IDList }
)

// Layer properties. Empty LayerIDs target the selection.
type (
	SetLayerX struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	SetLayerY struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	SetLayerWidth struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	SetLayerHeight struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	// SetLayerRotation sets the rotation in degrees, counter-clockwise.
	SetLayerRotation struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	SetFixedRadius struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	SetLayerOpacity struct {
		LayerIDs IDList
		Value    float64
		Mode     SetMode
	}
	SetConstrainProportions struct {
		LayerIDs IDList
		Value    bool
	}
	SetIsFlippedHorizontal struct {
		LayerIDs IDList
		Value    bool
	}
	SetIsFlippedVertical struct {
		LayerIDs IDList
		Value    bool
	}
	SetBlockContent struct{ LayerID, Content string }
)

// Styles of the selected layers.
type (
	AddNewFill   struct{}
	AddNewBorder struct{}
	AddNewShadow struct{}
	DeleteFill   struct{ Index int }
	DeleteBorder struct{ Index int }
	DeleteShadow struct{ Index int }
	MoveFill     struct{ From, To int }
	MoveBorder   struct{ From, To int }
	MoveShadow   struct{ From, To int }

	SetFillEnabled struct {
		Index   int
		Enabled bool
	}
	SetBorderEnabled struct {
		Index   int
		Enabled bool
	}
	SetShadowEnabled struct {
		Index   int
		Enabled bool
	}
	SetFillColor struct {
		Index int
		Color sketch.Color
	}
	SetBorderColor struct {
		Index int
		Color sketch.Color
	}
	SetShadowColor struct {
		Index int
		Color sketch.Color
	}
	SetFillType struct {
		Index int
		Type  sketch.FillType
	}
	SetBorderWidth struct {
		Index int
		Value float64
		Mode  SetMode
	}
	SetBorderPosition struct {
		Index    int
		Position sketch.BorderPosition
	}
	SetShadowX struct {
		Index int
		Value float64
		Mode  SetMode
	}
	SetShadowY struct {
		Index int
		Value float64
		Mode  SetMode
	}
	SetShadowBlur struct {
		Index int
		Value float64
		Mode  SetMode
	}
	SetShadowSpread struct {
		Index int
		Value float64
		Mode  SetMode
	}

	// SetGradientType changes the gradient of the fill at Index.
	SetGradientType struct {
		Index int
		Type  sketch.GradientType
	}
	// AddGradientStop adds a stop to the gradient of the fill at Index.
	AddGradientStop struct {
		Index    int
		Color    sketch.Color
		Position float64
	}
	// DeleteGradientStop removes the stop addressed by SelectedGradient.
	DeleteGradientStop      struct{}
	SetGradientStopColor    struct{ Color sketch.Color }
	SetGradientStopPosition struct{ Value float64 }
	// SetSelectedGradient starts or, with a nil Ref, ends gradient editing.
	SetSelectedGradient struct{ Ref *GradientRef }
)

// Symbols.
type (
	CreateSymbol struct {
		LayerIDs IDList
		Name     string
	}
	DetachSymbol struct{ LayerIDs IDList }
	// SetOverrideValue sets an instance override; a nil Value removes it.
	SetOverrideValue struct {
		LayerIDs     IDList
		OverrideName string
		Value        *string
	}
	SetSymbolInstanceSource struct{ SymbolID string }
	DuplicateSymbol         struct{ SymbolIDs IDList }
	SetSymbolName           struct{ SymbolID, Name string }
)

// Points of path layers, addressed by SelectedPointLists.
type (
	SelectPoint struct {
		LayerID string
		Index   int
		Mode    selection.Mode
	}
	SelectAllPoints struct{}
	DeletePoint     struct{}
	SetPointX       struct {
		Value float64
		Mode  SetMode
	}
	SetPointY struct {
		Value float64
		Mode  SetMode
	}
	SetPointCurveMode    struct{ CurveMode sketch.CurveMode }
	SetPointCornerRadius struct {
		Value float64
		Mode  SetMode
	}
	// InsertPointInPath splits segment SegmentIndex (from point i to i+1)
	// at parameter T in [0, 1].
	InsertPointInPath struct {
		LayerID      string
		SegmentIndex int
		T            float64
	}
	SetIsClosed struct {
		LayerID string
		Closed  bool
	}
	SelectControlPoint struct {
		LayerID          string
		PointIndex       int
		ControlPointType ControlPointType
	}
)

// Text editing of the layer in SelectedText.
type (
	// SetTextSelection sets the range; LayerID defaults to the layer being edited.
	SetTextSelection struct {
		Range   textedit.Range
		LayerID string
	}
	MoveCursor struct {
		Direction textedit.Direction
		Unit      textedit.Unit
	}
	MoveTextSelection struct {
		Direction textedit.Direction
		Unit      textedit.Unit
	}
	InsertText struct{ Text string }
	DeleteText struct {
		Direction textedit.Direction
		Unit      textedit.Unit
	}
	SelectAllText        struct{}
	SelectContainingText struct {
		LayerID string
		Offset  int
		Unit    textedit.Unit
	}
)

// Text styles of the text selection, or of the selected text layers.
type (
	SetTextColor    struct{ Color sketch.Color }
	SetTextFontName struct{ Name string }
	SetTextFontSize struct {
		Value float64
		Mode  SetMode
	}
	SetTextLetterSpacing struct {
		Value float64
		Mode  SetMode
	}
	SetTextLineSpacing struct {
		Value float64
		Mode  SetMode
	}
	SetTextAlignment         struct{ Alignment sketch.TextAlignment }
	SetTextVerticalAlignment struct{ Alignment sketch.VerticalAlignment }
	SetTextBehaviour         struct{ Behaviour sketch.TextBehaviour }
	SetTextDecoration        struct{ Decoration TextDecoration }
	SetTextTransform         struct{ Transform sketch.TextTransform }
)

// Theme assets.
type (
	SetThemeTab      struct{ Tab ThemeTab }
	SelectThemeItems struct {
		Tab  ThemeTab
		IDs  IDList
		Mode selection.Mode
	}
	AddSwatch struct {
		Name  string
		Color sketch.Color
	}
	SetSwatchName  struct{ ID, Name string }
	SetSwatchColor struct {
		ID    string
		Color sketch.Color
	}
	RemoveSwatches    struct{ IDs IDList }
	DuplicateSwatches struct{ IDs IDList }

	// AddLayerStyle creates a shared style from the first selected layer.
	AddLayerStyle     struct{ Name string }
	SetLayerStyleName struct{ ID, Name string }
	// UpdateLayerStyle copies the first selected layer's style into the
	// shared style and every layer using it.
	UpdateLayerStyle    struct{ ID string }
	RemoveLayerStyles   struct{ IDs IDList }
	SetLayerSharedStyle struct {
		LayerIDs      IDList
		SharedStyleID string
	}
	AddTextStyle       struct{ Name string }
	SetTextStyleName   struct{ ID, Name string }
	RemoveTextStyles   struct{ IDs IDList }
	SetTextSharedStyle struct {
		LayerIDs      IDList
		SharedStyleID string
	}
	// GroupThemeItems prefixes the names of the items with GroupName and a slash.
	GroupThemeItems struct {
		Tab       ThemeTab
		IDs       IDList
		GroupName string
	}
)

// Alignment of the selected layers.
type (
	AlignLayers      struct{ Type AlignmentType }
	DistributeLayers struct{ Axis Axis }
)

// Export settings of the selected layers.
type (
	AddExportFormat    struct{ LayerIDs IDList }
	RemoveExportFormat struct{ Index int }
	SetExportScale     struct {
		Index int
		Scale float64
	}
	SetExportName struct {
		Index int
		Name  string
	}
	SetExportFileFormat struct {
		Index  int
		Format string
	}
)

// Bitmap editing. Points are in the layer's own coordinates.
type (
	FloodFillBitmap struct {
		LayerID string
		Point   geometry.Point
		Color   sketch.Color
	}
	DrawBitmapRectangle struct {
		LayerID         string
		Origin, Current geometry.Point
		Color           sketch.Color
		Modifiers       bitmap.Modifiers
	}
	DrawBitmapPencil struct {
		LayerID   string
		Points    []geometry.Point
		Color     sketch.Color
		LineWidth float64
	}
	// InsertBitmap adds an encoded image, centred in the visible canvas.
	InsertBitmap struct {
		Name string
		Data []byte
	}
)

// Canvas and UI state.
type (
	SetTab         struct{ Tab Tab }
	SetKeyModifier struct {
		Modifier KeyModifier
		Value    bool
	}
	SetInteractionType struct{ Type InteractionType }
	SetZoom            struct {
		Value float64
		Mode  SetMode
	}
	ZoomToFit struct{ Target ZoomTarget }
	Pan       struct{ DX, DY float64 }
)

func (Batch) actionType() string { return "batch" }

func (AddPage) actionType() string       { return "addPage" }
func (DeletePage) actionType() string    { return "deletePage" }
func (SetPageName) actionType() string   { return "setPageName" }
func (DuplicatePage) actionType() string { return "duplicatePage" }
func (SelectPage) actionType() string    { return "selectPage" }
func (MovePage) actionType() string      { return "movePage" }

func (AddDrawnLayer) actionType() string          { return "addDrawnLayer" }
func (DeleteLayer) actionType() string            { return "deleteLayer" }
func (DuplicateLayer) actionType() string         { return "duplicateLayer" }
func (GroupLayers) actionType() string            { return "groupLayers" }
func (UngroupLayers) actionType() string          { return "ungroupLayers" }
func (MoveLayer) actionType() string              { return "moveLayer" }
func (SelectLayer) actionType() string            { return "selectLayer" }
func (SelectAllLayers) actionType() string        { return "selectAllLayers" }
func (DeselectAllLayers) actionType() string      { return "deselectAllLayers" }
func (SetLayerVisible) actionType() string        { return "setLayerVisible" }
func (SetLayerIsLocked) actionType() string       { return "setLayerIsLocked" }
func (SetLayerName) actionType() string           { return "setLayerName" }
func (SetExpandedInLayerList) actionType() string { return "setExpandedInLayerList" }
func (SetIsolatedLayer) actionType() string       { return "setIsolatedLayer" }
func (BringToFront) actionType() string           { return "bringToFront" }
func (SendToBack) actionType() string             { return "sendToBack" }

func (SetLayerX) actionType() string               { return "setLayerX" }
func (SetLayerY) actionType() string               { return "setLayerY" }
func (SetLayerWidth) actionType() string           { return "setLayerWidth" }
func (SetLayerHeight) actionType() string          { return "setLayerHeight" }
func (SetLayerRotation) actionType() string        { return "setLayerRotation" }
func (SetFixedRadius) actionType() string          { return "setFixedRadius" }
func (SetLayerOpacity) actionType() string         { return "setLayerOpacity" }
func (SetConstrainProportions) actionType() string { return "setConstrainProportions" }
func (SetIsFlippedHorizontal) actionType() string  { return "setIsFlippedHorizontal" }
func (SetIsFlippedVertical) actionType() string    { return "setIsFlippedVertical" }
func (SetBlockContent) actionType() string         { return "setBlockContent" }

func (AddNewFill) actionType() string              { return "addNewFill" }
func (AddNewBorder) actionType() string            { return "addNewBorder" }
func (AddNewShadow) actionType() string            { return "addNewShadow" }
func (DeleteFill) actionType() string              { return "deleteFill" }
func (DeleteBorder) actionType() string            { return "deleteBorder" }
func (DeleteShadow) actionType() string            { return "deleteShadow" }
func (MoveFill) actionType() string                { return "moveFill" }
func (MoveBorder) actionType() string              { return "moveBorder" }
func (MoveShadow) actionType() string              { return "moveShadow" }
func (SetFillEnabled) actionType() string          { return "setFillEnabled" }
func (SetBorderEnabled) actionType() string        { return "setBorderEnabled" }
func (SetShadowEnabled) actionType() string        { return "setShadowEnabled" }
func (SetFillColor) actionType() string            { return "setFillColor" }
func (SetBorderColor) actionType() string          { return "setBorderColor" }
func (SetShadowColor) actionType() string          { return "setShadowColor" }
func (SetFillType) actionType() string             { return "setFillType" }
func (SetBorderWidth) actionType() string          { return "setBorderWidth" }
func (SetBorderPosition) actionType() string       { return "setBorderPosition" }
func (SetShadowX) actionType() string              { return "setShadowX" }
func (SetShadowY) actionType() string              { return "setShadowY" }
func (SetShadowBlur) actionType() string           { return "setShadowBlur" }
func (SetShadowSpread) actionType() string         { return "setShadowSpread" }
func (SetGradientType) actionType() string         { return "setGradientType" }
func (AddGradientStop) actionType() string         { return "addGradientStop" }
func (DeleteGradientStop) actionType() string      { return "deleteGradientStop" }
func (SetGradientStopColor) actionType() string    { return "setGradientStopColor" }
func (SetGradientStopPosition) actionType() string { return "setGradientStopPosition" }
func (SetSelectedGradient) actionType() string     { return "setSelectedGradient" }

func (CreateSymbol) actionType() string            { return "createSymbol" }
func (DetachSymbol) actionType() string            { return "detachSymbol" }
func (SetOverrideValue) actionType() string        { return "setOverrideValue" }
func (SetSymbolInstanceSource) actionType() string { return "setSymbolInstanceSource" }
func (DuplicateSymbol) actionType() string         { return "duplicateSymbol" }
func (SetSymbolName) actionType() string           { return "setSymbolName" }

func (SelectPoint) actionType() string          { return "selectPoint" }
func (SelectAllPoints) actionType() string      { return "selectAllPoints" }
func (DeletePoint) actionType() string          { return "deletePoint" }
func (SetPointX) actionType() string            { return "setPointX" }
func (SetPointY) actionType() string            { return "setPointY" }
func (SetPointCurveMode) actionType() string    { return "setPointCurveMode" }
func (SetPointCornerRadius) actionType() string { return "setPointCornerRadius" }
func (InsertPointInPath) actionType() string    { return "insertPointInPath" }
func (SetIsClosed) actionType() string          { return "setIsClosed" }
func (SelectControlPoint) actionType() string   { return "selectControlPoint" }

func (SetTextSelection) actionType() string     { return "setTextSelection" }
func (MoveCursor) actionType() string           { return "moveCursor" }
func (MoveTextSelection) actionType() string    { return "moveTextSelection" }
func (InsertText) actionType() string           { return "insertText" }
func (DeleteText) actionType() string           { return "deleteText" }
func (SelectAllText) actionType() string        { return "selectAllText" }
func (SelectContainingText) actionType() string { return "selectContainingText" }

func (SetTextColor) actionType() string             { return "setTextColor" }
func (SetTextFontName) actionType() string          { return "setTextFontName" }
func (SetTextFontSize) actionType() string          { return "setTextFontSize" }
func (SetTextLetterSpacing) actionType() string     { return "setTextLetterSpacing" }
func (SetTextLineSpacing) actionType() string       { return "setTextLineSpacing" }
func (SetTextAlignment) actionType() string         { return "setTextAlignment" }
func (SetTextVerticalAlignment) actionType() string { return "setTextVerticalAlignment" }
func (SetTextBehaviour) actionType() string         { return "setTextBehaviour" }
func (SetTextDecoration) actionType() string        { return "setTextDecoration" }
func (SetTextTransform) actionType() string         { return "setTextTransform" }

func (SetThemeTab) actionType() string         { return "setThemeTab" }
func (SelectThemeItems) actionType() string    { return "selectThemeItems" }
func (AddSwatch) actionType() string           { return "addSwatch" }
func (SetSwatchName) actionType() string       { return "setSwatchName" }
func (SetSwatchColor) actionType() string      { return "setSwatchColor" }
func (RemoveSwatches) actionType() string      { return "removeSwatches" }
func (DuplicateSwatches) actionType() string   { return "duplicateSwatches" }
func (AddLayerStyle) actionType() string       { return "addLayerStyle" }
func (SetLayerStyleName) actionType() string   { return "setLayerStyleName" }
func (UpdateLayerStyle) actionType() string    { return "updateLayerStyle" }
func (RemoveLayerStyles) actionType() string   { return "removeLayerStyles" }
func (SetLayerSharedStyle) actionType() string { return "setLayerSharedStyle" }
func (AddTextStyle) actionType() string        { return "addTextStyle" }
func (SetTextStyleName) actionType() string    { return "setTextStyleName" }
func (RemoveTextStyles) actionType() string    { return "removeTextStyles" }
func (SetTextSharedStyle) actionType() string  { return "setTextSharedStyle" }
func (GroupThemeItems) actionType() string     { return "groupThemeItems" }

func (AlignLayers) actionType() string      { return "alignLayers" }
func (DistributeLayers) actionType() string { return "distributeLayers" }

func (AddExportFormat) actionType() string     { return "addExportFormat" }
func (RemoveExportFormat) actionType() string  { return "removeExportFormat" }
func (SetExportScale) actionType() string      { return "setExportScale" }
func (SetExportName) actionType() string       { return "setExportName" }
func (SetExportFileFormat) actionType() string { return "setExportFileFormat" }

func (FloodFillBitmap) actionType() string     { return "floodFillBitmap" }
func (DrawBitmapRectangle) actionType() string { return "drawBitmapRectangle" }
func (DrawBitmapPencil) actionType() string    { return "drawBitmapPencil" }
func (InsertBitmap) actionType() string        { return "insertBitmap" }

func (SetTab) actionType() string             { return "setTab" }
func (SetKeyModifier) actionType() string     { return "setKeyModifier" }
func (SetInteractionType) actionType() string { return "setInteractionType" }
func (SetZoom) actionType() string            { return "setZoom" }
func (ZoomToFit) actionType() string          { return "zoomToFit" }
func (Pan) actionType() string                { return "pan" }
