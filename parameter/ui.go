package parameter

// Camera
const (
	// CameraScale is world units per screen unit at startup
	CameraScale float32 = 0.25

	// TerminalCellAspect compensates for terminal cells being twice as tall as wide
	TerminalCellAspect float32 = 2
)

// Status Line
const (
	// NoticeCapacity is the number of recent notices kept for the status line
	NoticeCapacity = 4
)
