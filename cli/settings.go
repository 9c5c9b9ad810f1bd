package cli

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// SettingsPrefix is the prefix of the environment variables that provide defaults for the
// command line flags
const SettingsPrefix = `CONFIGBYENV_`

// Settings are the flags of the command that can also be given as environment variables. A flag
// given on the command line takes precedence over the environment variable.
type Settings struct {
	// LogLevel is the hclog level name. Env: CONFIGBYENV_LOGLEVEL
	LogLevel string `env:"LOGLEVEL" validate:"omitempty,oneof=trace debug info warn error off"`

	// RenderAs is the output format. Env: CONFIGBYENV_RENDER_AS
	RenderAs string `env:"RENDER_AS" validate:"omitempty,oneof=s json yaml"`

	// Merge is the merge strategy name. Env: CONFIGBYENV_MERGE
	Merge string `env:"MERGE" validate:"omitempty,oneof=deep shallow overwrite last"`
}

// DefaultSettings are used for settings that are given neither as flags nor as environment variables
var DefaultSettings = Settings{LogLevel: `error`, RenderAs: `yaml`, Merge: `deep`}

// ResolveSettings fills in the settings that are not set in flagSettings, first from the environment
// and then from DefaultSettings, and validates the result. The environ map is used instead of the
// process environment when it is not nil.
func ResolveSettings(flagSettings Settings, environ map[string]string) (Settings, error) {
	envSettings := Settings{}
	if err := env.ParseWithOptions(&envSettings, env.Options{Prefix: SettingsPrefix, Environment: environ}); err != nil {
		return Settings{}, fmt.Errorf(`error getting env settings: %w`, err)
	}

	s := flagSettings
	for _, src := range []Settings{envSettings, DefaultSettings} {
		if err := mergo.Merge(&s, src); err != nil {
			return Settings{}, fmt.Errorf(`error merging settings: %w`, err)
		}
	}

	if err := validator.New().Struct(s); err != nil {
		return Settings{}, fmt.Errorf(`invalid settings: %w`, err)
	}
	return s, nil
}
