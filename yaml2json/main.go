// Utility program to convert yaml on stdin to json on stdout. The order of the keys is retained.
package main

import (
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/lyraproj/configbyenv/configbyenv"
	"github.com/lyraproj/configbyenv/provider"
)

func main() {
	data, err := ioutil.ReadAll(os.Stdin)
	if err == nil {
		if err = convert(data, os.Stdout); err == nil {
			return
		}
	}
	log.Fatal(err.Error())
}

func convert(data []byte, out io.Writer) error {
	body, err := provider.ParseYaml(data, `<stdin>`)
	if err != nil {
		return err
	}
	return configbyenv.Render(configbyenv.JSON, body, out)
}
