package model

import (
	"os"
	"path/filepath"
)

const envModelsDir = "VOICE_AUTH_ENGINE_MODELS_DIR"

// ResolveModelsDir resolves the models directory in priority order:
// the VOICE_AUTH_ENGINE_MODELS_DIR environment variable, a non-empty
// project-local "models/" directory (development convenience, kept for
// parity with the original implementation), or the OS user cache
// directory.
func ResolveModelsDir() (string, error) {
	if dir := os.Getenv(envModelsDir); dir != "" {
		return dir, nil
	}

	if entries, err := os.ReadDir("models"); err == nil && len(entries) > 0 {
		abs, err := filepath.Abs("models")
		if err == nil {
			return abs, nil
		}
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "voice-auth-engine", "models"), nil
}
