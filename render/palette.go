package render

import (
	"github.com/lixenwraith/prism/core"
)

var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38}    // Tokyo Night background
	RgbBodyFill   = core.RGB{R: 120, G: 130, B: 150} // Bodies without optical data
	RgbMirror     = core.RGB{R: 200, G: 200, B: 210}
	RgbSelection  = core.RGB{R: 255, G: 165, B: 0}   // Orange, as the cursor
	RgbJoint      = core.RGB{R: 230, G: 230, B: 240}
	RgbSensor     = core.RGB{R: 144, G: 238, B: 144} // Light grass green
	RgbLaser      = core.RGB{R: 255, G: 80, B: 80}
	RgbStatusFg   = core.RGB{R: 255, G: 255, B: 255}
	RgbStatusBg   = core.RGB{R: 60, G: 60, B: 80}
)

// bodyFillAlpha keeps faint glass visible on the dark background
const bodyFillAlpha = 0.35
