// Package doctor provides environment preflight checks for voice-auth-engine.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// ModelCheck names one model artifact to verify is present under a
// models directory. A directory entry (the SenseVoice bundle) is
// checked non-empty rather than a single file.
type ModelCheck struct {
	Label string
	Path  string // relative to Config.ModelsDir
	IsDir bool
}

// Config holds injectable dependencies for each doctor check.
type Config struct {
	ModelsDir  string
	ModelFiles []ModelCheck
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	for _, check := range cfg.ModelFiles {
		path := filepath.Join(cfg.ModelsDir, filepath.FromSlash(check.Path))
		ok, detail := checkPresence(path, check.IsDir)
		if ok {
			fmt.Fprintf(w, "%s %s: %s\n", PassMark, check.Label, path)
			continue
		}
		res.fail(fmt.Sprintf("%s: %s", check.Label, detail))
		fmt.Fprintf(w, "%s %s: %s (%s)\n", FailMark, check.Label, path, detail)
	}

	return res
}

func checkPresence(path string, isDir bool) (bool, string) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, "not found"
	}
	if isDir {
		if !fi.IsDir() {
			return false, "expected a directory"
		}
		entries, err := os.ReadDir(path)
		if err != nil || len(entries) == 0 {
			return false, "directory is empty"
		}
	}
	return true, ""
}
