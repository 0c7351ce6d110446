package engine

import (
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/vkquad/engine/config"
	"github.com/spaghettifunk/vkquad/engine/core"
	"github.com/spaghettifunk/vkquad/engine/renderer/vulkan"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel

	// AssetsRoot is watched by the asset manager, shader paths are relative to it.
	AssetsRoot     string
	VertexShader   string
	FragmentShader string

	Renderer vulkan.AppDescriptor
}

// NewApplicationConfig flattens a validated configuration file.
func NewApplicationConfig(cfg *config.Config) (*ApplicationConfig, error) {
	major, minor, patch, err := cfg.APIVersion()
	if err != nil {
		return nil, err
	}
	var layers []string
	if cfg.Debug.Enabled {
		layers = append(layers, cfg.Debug.ValidationLayers...)
	}
	return &ApplicationConfig{
		StartPosX:      cfg.Window.X,
		StartPosY:      cfg.Window.Y,
		StartWidth:     cfg.Window.Width,
		StartHeight:    cfg.Window.Height,
		Name:           cfg.Application.Name,
		LogLevel:       cfg.LogLevel(),
		AssetsRoot:     cfg.Assets.Root,
		VertexShader:   cfg.Assets.VertexShader,
		FragmentShader: cfg.Assets.FragmentShader,
		Renderer: vulkan.AppDescriptor{
			Name:             cfg.Application.Name,
			APIVersion:       vk.MakeVersion(int(major), int(minor), int(patch)),
			Debug:            cfg.Debug.Enabled,
			ValidationLayers: layers,
			ScanAllDevices:   cfg.Device.ScanAll,
		},
	}, nil
}
