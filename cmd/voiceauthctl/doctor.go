package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/voice-auth-engine/internal/doctor"
	"github.com/example/voice-auth-engine/internal/model"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the three pinned models are present under the models directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			modelsDir, err := resolveModelsDir()
			if err != nil {
				return fmt.Errorf("resolve models dir: %w", err)
			}
			fmt.Fprintf(os.Stdout, "models dir: %s\n", modelsDir)

			result := doctor.Run(doctor.Config{
				ModelsDir: modelsDir,
				ModelFiles: []doctor.ModelCheck{
					{Label: "Silero VAD", Path: model.VADModelFile()},
					{Label: "SenseVoice", Path: model.ASRModelDir(), IsDir: true},
					{Label: "CAM++ (3D-Speaker)", Path: model.EmbedderModelFile()},
				},
			}, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}
				return errors.New("doctor checks failed")
			}

			fmt.Fprintln(os.Stdout, "doctor checks passed")
			return nil
		},
	}

	return cmd
}
