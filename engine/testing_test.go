package engine

import (
	"time"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/physics"
)

func newTestContext(w physics.Scene) *Context {
	return NewContext(w, config.Default(), NewMockTimeProvider(time.Unix(0, 0)), nil)
}
