package debug

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/devops"

	"github.com/quantfold/marketagent/internal/config"
)

// Debugger exposes the eino visual-debug server for inspecting agent runs.
type Debugger struct {
	config *config.Config
	ctx    context.Context
}

func NewDebugger(cfg *config.Config) *Debugger {
	return &Debugger{
		config: cfg,
		ctx:    context.Background(),
	}
}

func (d *Debugger) Initialize() error {
	if !d.config.DebugEnabled {
		return nil
	}

	if d.config.Debug {
		log.Printf("[debug] initializing eino visual debug plugin on port %d", d.config.DebugPort)
	}

	if err := devops.Init(d.ctx); err != nil {
		return fmt.Errorf("failed to initialize eino debug plugin: %w", err)
	}

	if d.config.Debug {
		log.Printf("[debug] debug server available at http://localhost:%d", d.config.DebugPort)
	}

	return nil
}

func (d *Debugger) IsEnabled() bool {
	return d.config.DebugEnabled
}

func (d *Debugger) DebugURL() string {
	if !d.config.DebugEnabled {
		return ""
	}
	return fmt.Sprintf("http://localhost:%d", d.config.DebugPort)
}
