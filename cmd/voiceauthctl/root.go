// Command voiceauthctl is an operator-facing CLI around the model
// lifecycle of voice-auth-engine: downloading the pinned VAD/ASR/speaker
// models and verifying a local install is healthy. The enroll/verify
// pipeline itself is a library — see the root voiceauth package — this
// binary never calls it directly.
package main

import (
	"log/slog"
	"os"

	"github.com/example/voice-auth-engine/internal/config"
	"github.com/example/voice-auth-engine/internal/model"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func newRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "voiceauthctl",
		Short: "voice-auth-engine model and environment tooling",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newDownloadModelsCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

// resolveModelsDir honors an explicit --paths-models-dir override; absent
// that, it falls back to the same env var / project-local / OS-cache
// priority order spec.md §6 documents.
func resolveModelsDir() (string, error) {
	if activeCfg.Paths.ModelsDir != "" {
		return activeCfg.Paths.ModelsDir, nil
	}
	return model.ResolveModelsDir()
}
