package cli

import (
	"bytes"
)

// ExecuteSelect runs the command with the given arguments and returns what it wrote to its
// standard output. The env map replaces the process environment, both for the environment
// selector and for the settings. It's primarily intended for testing purposes.
func ExecuteSelect(env map[string]string, args ...string) (output []byte, err error) {
	settings = Settings{}
	envSelector = OptString{}
	fragments = nil
	skipCommon = false
	explainSel = false
	if env == nil {
		env = map[string]string{}
	}
	environment = env
	defer func() { environment = nil }()

	cmd := NewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err = cmd.Execute()

	return buf.Bytes(), err
}
