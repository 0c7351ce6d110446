package engine

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/vkquad/engine/assets"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/platform"
	"github.com/spaghettifunk/vkquad/engine/renderer"
	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageBooting:
		return "booting"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// metricsLogInterval is how often, in seconds, the frame rate is logged.
const metricsLogInterval = 5.0

type Engine struct {
	currentStage Stage
	appConfig    *ApplicationConfig
	isRunning    atomic.Bool
	platform     *platform.Platform
	assetManager *assets.AssetManager
	renderer     *renderer.Renderer
	clock        *core.Clock
	metrics      *core.FrameMetrics
	lastTime     float64
}

func New(appConfig *ApplicationConfig) (*Engine, error) {
	core.SetLogLevel(appConfig.LogLevel)

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	p := platform.New()
	return &Engine{
		currentStage: EngineStageUninitialized,
		appConfig:    appConfig,
		platform:     p,
		assetManager: am,
		renderer:     renderer.New(p),
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
	}, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Initialize loads the shaders, opens the window and runs the renderer setup.
// Whatever was started before a failure is stopped again by Shutdown.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("engine cannot initialize from stage %s", e.currentStage)
	}
	e.currentStage = EngineStageBooting
	cfg := e.appConfig

	if err := e.assetManager.Initialize(cfg.AssetsRoot); err != nil {
		return err
	}
	vert, err := e.assetManager.LoadShader(cfg.VertexShader, metadata.ShaderStageVertex)
	if err != nil {
		return err
	}
	frag, err := e.assetManager.LoadShader(cfg.FragmentShader, metadata.ShaderStageFragment)
	if err != nil {
		return err
	}

	if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight); err != nil {
		return err
	}

	if err := e.renderer.Initialize(cfg.Renderer, []*metadata.Shader{vert, frag}, metadata.NewQuad()); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("Engine initialized.")
	return nil
}

// Run pumps window messages and draws until the window closes, Stop is
// called or a frame fails.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run from stage %s", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()
	lastReport := e.lastTime

	for e.isRunning.Load() {
		e.platform.PumpMessages()
		if e.platform.ShouldClose() {
			core.LogInfo("Window closed, shutting down.")
			break
		}

		if err := e.renderer.DrawFrame(); err != nil {
			e.isRunning.Store(false)
			return err
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		e.metrics.Update(currentTime - e.lastTime)
		e.lastTime = currentTime

		if currentTime-lastReport >= metricsLogInterval {
			core.LogDebug("FPS: %.0f, frame time: %.3fms", e.metrics.FPS(), e.metrics.FrameTime())
			lastReport = currentTime
		}
	}
	e.isRunning.Store(false)
	return nil
}

// Stop asks the run loop to exit after the current frame. Safe to call from
// any goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// Shutdown releases the renderer before the window it presents to.
func (e *Engine) Shutdown() error {
	switch e.currentStage {
	case EngineStageShuttingDown:
		return nil
	case EngineStageUninitialized:
		return e.assetManager.Shutdown()
	}
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if err := e.renderer.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := e.platform.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	if err := e.assetManager.Shutdown(); err != nil {
		errs = append(errs, err)
	}
	e.currentStage = EngineStageUninitialized
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("engine shutdown: %w", err)
	}
	core.LogInfo("Engine shut down.")
	return nil
}
