// Package shell installs the profilemgr shell wrapper and detects
// existing LLM API keys in the user's rc files for first-run import.
package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// FunctionMarker guards against installing the wrapper twice.
const FunctionMarker = "# profilemgr shell function"

const shellFunctionTemplate = `
{{.Marker}}
profilemgr() {
    command profilemgr "$@"
    local env_file="{{.EnvScriptPath}}"
    if [ -f "$env_file" ]; then
        source "$env_file"
    fi
}
`

// Installer writes the shell wrapper function into an rc file. The
// wrapper sources the env script after every invocation so switches
// take effect in the calling shell.
type Installer struct {
	EnvScriptPath string
	Marker        string
}

// NewInstaller creates an Installer for the given env script location.
func NewInstaller(envScriptPath string) *Installer {
	return &Installer{
		EnvScriptPath: envScriptPath,
		Marker:        FunctionMarker,
	}
}

// FunctionBlock renders the wrapper function block.
func (in *Installer) FunctionBlock() (string, error) {
	tmpl, err := template.New("shell").Parse(shellFunctionTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Install appends the wrapper to rcPath unless the marker is already
// present. Returns true when the file was modified. A missing rc file
// is skipped rather than created: the shell owns that file.
func (in *Installer) Install(rcPath string) (bool, error) {
	data, err := os.ReadFile(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", rcPath, err)
	}
	if strings.Contains(string(data), in.Marker) {
		return false, nil
	}

	block, err := in.FunctionBlock()
	if err != nil {
		return false, err
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", rcPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", rcPath, err)
	}
	return true, nil
}

// DetectRC returns the current shell's rc file path, ~/.zshrc for zsh
// and ~/.bashrc otherwise.
func DetectRC() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(os.Getenv("SHELL"), "/zsh") {
		return filepath.Join(home, ".zshrc"), nil
	}
	return filepath.Join(home, ".bashrc"), nil
}
