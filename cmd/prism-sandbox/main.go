package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/sandbox"
	"github.com/lixenwraith/prism/terminal"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	presetFlag = flag.String("preset", "", "Scene to load on start: prism, mirror-box, glass-stack")
	logFlag    = flag.String("log", "", "Log file, overrides log_file")
	debugFlag  = flag.Bool("debug", false, "Debug logging and solver assertions")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "prism-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *logFlag != "" {
		cfg.LogFile = *logFlag
	}
	if *debugFlag {
		cfg.LogLevel = "debug"
		cfg.DebugAssertions = true
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync()

	sb := sandbox.New(cfg, nil, log)
	if *presetFlag != "" {
		p, ok := sandbox.PresetByName(*presetFlag)
		if !ok {
			return errors.Errorf("unknown preset %q", *presetFlag)
		}
		p.Build(sb)
	}

	scr, err := terminal.Open()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	core.SetCrashCleanup(scr.Fini)
	defer scr.Fini()

	log.Info("terminal ready", zap.Int("frame_rate", cfg.FrameRate))
	loop(sb, scr, cfg.FrameInterval())
	log.Info("sandbox stopped")
	return nil
}

// loop interleaves input events with fixed-interval frames until quit
func loop(sb *sandbox.Sandbox, scr *terminal.Screen, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-scr.Events():
			if scr.Handle(sb, ev) {
				return
			}
		case <-ticker.C:
			scr.Draw(sb.Frame(scr.Pointer(sb)))
		}
	}
}
