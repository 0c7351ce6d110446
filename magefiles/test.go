//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests that open a window and talk to the Vulkan driver.
func (Test) Integration() error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("test", "-tags", "integration", "./engine/renderer/vulkan/..."), withStream())
	return err
}
