package main

import (
	"fmt"
	"os"

	"github.com/example/voice-auth-engine/internal/model"
	"github.com/spf13/cobra"
)

// newDownloadModelsCmd implements the single CLI verb spec.md §6 names:
// download-models, no arguments, exit 0 on success.
func newDownloadModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download-models",
		Short: "Download the pinned VAD, ASR, and speaker-embedding models",
		RunE: func(_ *cobra.Command, _ []string) error {
			modelsDir, err := resolveModelsDir()
			if err != nil {
				return fmt.Errorf("resolve models dir: %w", err)
			}

			fmt.Fprintf(os.Stdout, "models dir: %s\n", modelsDir)

			return model.Download(model.DownloadOptions{
				ModelsDir: modelsDir,
				Stdout:    os.Stdout,
			})
		},
	}

	return cmd
}
