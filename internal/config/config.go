// Package config loads layered configuration (flags > env > config file >
// defaults) for voice-auth-engine, mirroring the teacher's viper/pflag setup.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig   `mapstructure:"paths"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	Policy   PolicyConfig  `mapstructure:"policy"`
	LogLevel string        `mapstructure:"log_level"`
}

type PathsConfig struct {
	ModelsDir string `mapstructure:"models_dir"`
}

type RuntimeConfig struct {
	Threads int `mapstructure:"threads"`
}

// PolicyConfig mirrors voiceauth.PolicyConfig but with nullable fields
// expressed for viper/mapstructure (pointers survive unmarshalling of an
// absent key as nil, matching the "disabled" semantics of the min-unique
// and phoneme-threshold checks).
type PolicyConfig struct {
	CosineThreshold   float64  `mapstructure:"cosine_threshold"`
	MinSpeechSeconds  float64  `mapstructure:"min_speech_seconds"`
	MinUniquePhonemes *int     `mapstructure:"min_unique_phonemes"`
	PhonemeThreshold  *float64 `mapstructure:"phoneme_threshold"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	minUnique := 5
	return Config{
		Paths: PathsConfig{
			ModelsDir: "",
		},
		Runtime: RuntimeConfig{
			Threads: 1,
		},
		Policy: PolicyConfig{
			CosineThreshold:   0.5,
			MinSpeechSeconds:  3.0,
			MinUniquePhonemes: &minUnique,
			PhonemeThreshold:  nil,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-models-dir", defaults.Paths.ModelsDir, "Path to the models directory (empty = resolve automatically)")
	fs.Int("runtime-threads", defaults.Runtime.Threads, "Inference thread count for VAD/ASR/embedder models")
	fs.Float64("policy-cosine-threshold", defaults.Policy.CosineThreshold, "Minimum cosine similarity to accept a verification")
	fs.Float64("policy-min-speech-seconds", defaults.Policy.MinSpeechSeconds, "Minimum speech duration required after VAD")
	fs.Int("policy-min-unique-phonemes", derefInt(defaults.Policy.MinUniquePhonemes), "Minimum unique phonemes required (0 disables the check)")
	fs.Float64("policy-phoneme-threshold", derefFloat(defaults.Policy.PhonemeThreshold), "Maximum normalized edit distance for phoneme consistency (negative disables the check)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("VOICE_AUTH_ENGINE")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("voice-auth-engine")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	normalizePolicy(&cfg.Policy, opts.Defaults.Policy)
	return cfg, nil
}

// normalizePolicy restores the pointer-as-disabled semantics viper's flat
// int/float64 unmarshalling can't express directly: the CLI surface uses
// sentinel values (0 for min-unique, negative for phoneme threshold) to
// mean "disabled", since pflag has no notion of a nullable flag.
func normalizePolicy(p *PolicyConfig, defaults PolicyConfig) {
	if p.MinUniquePhonemes != nil && *p.MinUniquePhonemes <= 0 {
		p.MinUniquePhonemes = nil
	}
	if p.PhonemeThreshold != nil && *p.PhonemeThreshold < 0 {
		p.PhonemeThreshold = nil
	}
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.models_dir", c.Paths.ModelsDir)
	v.SetDefault("runtime.threads", c.Runtime.Threads)
	v.SetDefault("policy.cosine_threshold", c.Policy.CosineThreshold)
	v.SetDefault("policy.min_speech_seconds", c.Policy.MinSpeechSeconds)
	v.SetDefault("policy.min_unique_phonemes", derefInt(c.Policy.MinUniquePhonemes))
	v.SetDefault("policy.phoneme_threshold", derefFloat(c.Policy.PhonemeThreshold))
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.models_dir", "paths-models-dir")
	v.RegisterAlias("runtime.threads", "runtime-threads")
	v.RegisterAlias("policy.cosine_threshold", "policy-cosine-threshold")
	v.RegisterAlias("policy.min_speech_seconds", "policy-min-speech-seconds")
	v.RegisterAlias("policy.min_unique_phonemes", "policy-min-unique-phonemes")
	v.RegisterAlias("policy.phoneme_threshold", "policy-phoneme-threshold")
	v.RegisterAlias("log_level", "log-level")
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefFloat(p *float64) float64 {
	if p == nil {
		return -1
	}
	return *p
}
