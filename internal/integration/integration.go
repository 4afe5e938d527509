// Package integration provides embedded shell integration snippets.
package integration

import (
	"bytes"
	_ "embed"
	"os/exec"
	"path/filepath"
	"text/template"
)

// ZshFzf contains the zsh shell integration script with fzf support.
//
//go:embed zsh-fzf.sh
var ZshFzf string

// Render renders the integration script with the local zsh path.
// When zsh is not on PATH the shebang falls back to a plain "zsh" lookup via env.
func Render() (string, error) {
	zsh, err := exec.LookPath("zsh")
	if err != nil {
		zsh = "/usr/bin/env zsh"
	}

	tmpl, err := template.New("zsh-fzf").Parse(ZshFzf)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"ZSH": filepath.ToSlash(zsh),
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
