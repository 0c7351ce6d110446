/*
Opens a window and draws a single coloured quad with Vulkan until the window
is closed or the process is interrupted.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/vkquad/engine"
	"github.com/spaghettifunk/vkquad/engine/config"
	"github.com/spaghettifunk/vkquad/engine/core"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file, defaults are used when empty")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("%s", err)
	}

	appConfig, err := engine.NewApplicationConfig(cfg)
	if err != nil {
		core.LogFatal("%s", err)
	}

	e, err := engine.New(appConfig)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogError("Engine failed to initialize: %s", err)
		_ = e.Shutdown()
		os.Exit(1)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		// capture sigterm and other system call here
		sig := <-sigCh
		core.LogInfo("Received %s, stopping.", sig)
		e.Stop()
	}()

	// The run loop stays on the main thread, glfw requires it.
	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
	if runErr != nil {
		core.LogError("Engine stopped: %s", runErr)
		os.Exit(1)
	}
}
