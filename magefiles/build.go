//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var shaderDir = filepath.Join("assets", "shaders")

// Compiles every GLSL stage under assets/shaders to SPIR-V with glslc.
func (Build) Shaders() error {
	for _, ext := range []string{"vert", "frag"} {
		sources, err := filepath.Glob(filepath.Join(shaderDir, "*."+ext))
		if err != nil {
			return err
		}
		for _, src := range sources {
			// shader.vert becomes vert.spv
			out := filepath.Join(shaderDir, strings.TrimPrefix(filepath.Ext(src), ".")+".spv")
			if _, err := executeCmd("glslc", withArgs(src, "-o", out), withStream()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Builds the vkquad binary into bin/.
func (Build) Binary() error {
	mg.Deps(Build.Shaders)
	fmt.Println("Building vkquad...")
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "vkquad"), "."), withStream())
	return err
}
