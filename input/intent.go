package input

// IntentType discriminates keyboard actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Ctrl+C
	IntentReset  // r
	IntentEscape // ESC, closes the context menu and clears selection

	// Scene editing
	IntentTool      // Digit or letter tool binding
	IntentDelete    // Delete, Backspace, x
	IntentPause     // Space
	IntentRightTool // Shifted tool binding, rebinds the right button
)

// Intent is a parsed key press
type Intent struct {
	Type   IntentType
	Tool   Tool
	Button Button
}
