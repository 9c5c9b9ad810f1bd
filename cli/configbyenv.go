// Package cli contains the configbyenv command
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/configbyenv"
	"github.com/lyraproj/configbyenv/explain"
	"github.com/lyraproj/configbyenv/merge"
	"github.com/lyraproj/configbyenv/provider"
	"github.com/lyraproj/configbyenv/util"
	"github.com/spf13/cobra"
)

var helpTemplate = `Description:
  {{rpad .Long 10}}

Usage:{{if .Runnable}}{{if .HasAvailableFlags}}
  {{appendIfNotPresent .UseLine "[flags]"}}{{else}}{{.UseLine}}{{end}}{{end}}{{if .HasExample }}

Examples:
  {{ .Example }}{{end}}{{ if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimRightSpace}}{{end}}
`

// OptString is a string option that can differentiate between an empty string and no value
type OptString struct {
	value *string
}

// Type of option
func (s *OptString) Type() string {
	return "stringpointer"
}

// String value
func (s *OptString) String() string {
	if s == nil || s.value == nil {
		return ``
	}
	return *s.value
}

// Set sets the string value
func (s *OptString) Set(v string) error {
	s.value = &v
	return nil
}

// StringPointer returns the interal value pointer
func (s *OptString) StringPointer() *string {
	return s.value
}

// ErrNoInput is returned when the command is given neither bundle files nor fragment files
var ErrNoInput = errors.New(`no bundle or fragment files given`)

var (
	settings    Settings
	envSelector OptString
	fragments   []string
	skipCommon  bool
	explainSel  bool

	// environment replaces the process environment when it is not nil
	environment map[string]string
)

// NewCommand creates the configbyenv Command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configbyenv [<bundle file> ...]",
		Short: `ConfigByEnv - Combine the configuration of the active environments`,
		Long: `ConfigByEnv - Combine the common configuration with the configuration of the active environments.
    The environments are named by the ` + configbyenv.OverrideVariable + ` or ` + configbyenv.FallbackVariable + ` variables
    (comma separated) and default to "` + configbyenv.DefaultEnvironment + `".`,
		Example: `configbyenv config.yaml
  configbyenv --fragments 'config/*.yaml' --env production,eu --render-as json`,
		Version:       Version(),
		RunE:          cmdSelect,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true}

	flags := cmd.Flags()
	flags.StringVar(&settings.LogLevel, `loglevel`, ``,
		`trace/debug/info/warn/error/off (default "`+DefaultSettings.LogLevel+`", env `+SettingsPrefix+`LOGLEVEL)`)
	flags.StringVar(&settings.Merge, `merge`, ``,
		strings.Join(merge.StrategyNames(), `/`)+` (default "`+DefaultSettings.Merge+`", env `+SettingsPrefix+`MERGE)`)
	flags.StringVar(&settings.RenderAs, `render-as`, ``,
		`s/json/yaml: Specify the output format of the result; s means plain text (default "`+DefaultSettings.RenderAs+`", env `+SettingsPrefix+`RENDER_AS)`)
	flags.Var(&envSelector, `env`,
		`comma separated environment names. Overrides `+configbyenv.OverrideVariable+` and `+configbyenv.FallbackVariable)
	flags.StringArrayVar(&fragments, `fragments`, nil,
		`path or glob of files that each contain the fragment of the environment named by the file`)
	flags.BoolVar(&skipCommon, `skip-common`, false,
		`do not include the "`+api.CommonKey+`" fragment`)
	flags.BoolVar(&explainSel, `explain`, false,
		`Explain the details of how the selection was performed instead of rendering the result`)

	cmd.SetHelpTemplate(helpTemplate)
	return cmd
}

func cmdSelect(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	s, err := ResolveSettings(settings, environment)
	if err != nil {
		return err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   `configbyenv`,
		Level:  hclog.LevelFromString(s.LogLevel),
		Output: cmd.ErrOrStderr(),
	})

	policy, err := merge.GetStrategy(s.Merge)
	if err != nil {
		return err
	}

	bundle, err := loadBundle(args, fragments, policy, logger)
	if err != nil {
		return err
	}

	opts := configbyenv.Options{Policy: policy, SkipCommon: skipCommon, Logger: logger}
	if environment != nil {
		opts.Lookup = provider.MapLookup(environment)
	}
	if explainSel {
		opts.Explainer = explain.NewExplainer()
	}

	var result *api.Fragment
	if sel := envSelector.StringPointer(); sel != nil {
		logger.Debug(`environment selector`, `source`, `--env`, `selector`, *sel)
		if opts.Explainer != nil {
			opts.Explainer.AcceptSelector(`--env`, *sel)
		}
		result = configbyenv.Select(bundle, configbyenv.EnvironmentNames(*sel), opts)
	} else {
		result = configbyenv.ByEnv(bundle, opts)
	}

	if opts.Explainer != nil {
		_, err = io.WriteString(cmd.OutOrStdout(), opts.Explainer.String())
		return err
	}
	return configbyenv.Render(configbyenv.RenderName(s.RenderAs), result, cmd.OutOrStdout())
}

func loadBundle(bundlePatterns, fragmentPatterns []string, policy api.Policy, logger hclog.Logger) (api.Bundle, error) {
	if len(bundlePatterns) == 0 && len(fragmentPatterns) == 0 {
		return nil, ErrNoInput
	}
	bundleFiles, err := util.Glob(bundlePatterns...)
	if err != nil {
		return nil, err
	}
	fragmentFiles, err := util.Glob(fragmentPatterns...)
	if err != nil {
		return nil, err
	}
	logger.Debug(`loading bundle`, `bundle_files`, bundleFiles, `fragment_files`, fragmentFiles)
	bundle, err := provider.LoadBundle(bundleFiles, fragmentFiles, policy)
	if err != nil {
		return nil, fmt.Errorf(`error loading bundle: %w`, err)
	}
	logger.Debug(`bundle loaded`, `environments`, bundle.Names())
	return bundle, nil
}
