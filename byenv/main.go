// Command configbyenv prints the configuration of the active environments
package main

import (
	"fmt"
	"os"

	"github.com/lyraproj/configbyenv/cli"
)

func main() {
	cmd := cli.NewCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
