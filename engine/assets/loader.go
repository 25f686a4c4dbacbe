// Package assets reads shader sources from disk and watches them for edits.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const ShaderDir = "shaders"

// Loader resolves asset names relative to Root.
type Loader struct {
	Root string
}

func NewLoader(root string) *Loader {
	if root == "" {
		root = "assets"
	}
	return &Loader{Root: root}
}

func (l *Loader) ShaderPath(name string) string {
	return filepath.Join(l.Root, ShaderDir, name)
}

// LoadShader reads a GLSL file into a null-terminated string for OpenGL.
func (l *Loader) LoadShader(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("load shader %q: not a bare file name", name)
	}
	b, err := os.ReadFile(l.ShaderPath(name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// gl.Strs needs the trailing NUL
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
