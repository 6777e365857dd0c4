package input

// KeyKind classifies non-rune keys
type KeyKind uint8

const (
	KeyRune KeyKind = iota
	KeyEscape
	KeyCtrlC
	KeyDelete
	KeyBackspace
)

// Key is a terminal-independent key press
type Key struct {
	Kind KeyKind
	Rune rune
}

// KeyTable maps keys to intents
type KeyTable struct {
	SpecialKeys map[KeyKind]Intent
	Runes       map[rune]Intent
}

// toolKeys pairs each tool with its left-button binding and right-button binding
var toolKeys = []struct {
	tool        Tool
	left, right rune
}{
	{ToolMove, '1', '!'},
	{ToolDrag, '2', '@'},
	{ToolRotate, '3', '#'},
	{ToolBox, '4', '$'},
	{ToolCircle, '5', '%'},
	{ToolSpring, '6', '^'},
	{ToolThruster, '7', '&'},
	{ToolFix, '8', '*'},
	{ToolHinge, '9', '('},
	{ToolLaser, '0', ')'},
	{ToolTracer, 't', 'T'},
	{ToolPan, 'p', 'P'},
	{ToolZoom, 'z', 'Z'},
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	kt := &KeyTable{
		SpecialKeys: map[KeyKind]Intent{
			KeyEscape:    {Type: IntentEscape},
			KeyCtrlC:     {Type: IntentQuit},
			KeyDelete:    {Type: IntentDelete},
			KeyBackspace: {Type: IntentDelete},
		},
		Runes: map[rune]Intent{
			'q': {Type: IntentQuit},
			'r': {Type: IntentReset},
			'x': {Type: IntentDelete},
			' ': {Type: IntentPause},
		},
	}
	for _, k := range toolKeys {
		kt.Runes[k.left] = Intent{Type: IntentTool, Tool: k.tool, Button: ButtonLeft}
		kt.Runes[k.right] = Intent{Type: IntentRightTool, Tool: k.tool, Button: ButtonRight}
	}
	return kt
}

// Lookup parses a key press, returning false for unbound keys
func (kt *KeyTable) Lookup(k Key) (Intent, bool) {
	if k.Kind != KeyRune {
		in, ok := kt.SpecialKeys[k.Kind]
		return in, ok
	}
	in, ok := kt.Runes[k.Rune]
	return in, ok
}
