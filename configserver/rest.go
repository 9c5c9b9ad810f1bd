// Command configserver starts a REST server that responds with the configuration of environments
package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo"
	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/configbyenv"
	"github.com/lyraproj/configbyenv/merge"
	"github.com/lyraproj/configbyenv/provider"
	"github.com/lyraproj/configbyenv/util"
	"github.com/spf13/cobra"
)

func main() {
	cmd := newCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

var (
	logLevel  string
	mergeName string
	fragments []string
	addr      string
	port      int
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configserver [<bundle file> ...]",
		Short: `Server - Start a configbyenv REST server`,
		Long: `Server - Start a REST server that responds with the combined configuration of environments.
  Responds to GET requests under the /config endpoint and to POST requests on the /merge endpoint`,
		PreRun:        initialize,
		RunE:          startServer,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true}

	flags := cmd.Flags()
	flags.StringVar(&logLevel, `loglevel`, `error`,
		`trace/debug/info/warn/error/off`)
	flags.StringVar(&mergeName, `merge`, merge.Deep,
		`default merge strategy, one of deep/last/overwrite/shallow`)
	flags.StringArrayVar(&fragments, `fragments`, nil,
		`path or glob of files that each contain the fragment of the environment named by the file`)
	flags.StringVar(&addr, `addr`, ``, `ip address to listen on`)
	flags.IntVar(&port, `port`, 8080, `port number to listen to`)
	return cmd
}

func initialize(_ *cobra.Command, _ []string) {
	hclog.DefaultOptions = &hclog.LoggerOptions{
		Name:  `configserver`,
		Level: hclog.LevelFromString(logLevel),
	}
}

func startServer(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	policy, err := merge.GetStrategy(mergeName)
	if err != nil {
		return err
	}
	bundleFiles, err := util.Glob(args...)
	if err != nil {
		return err
	}
	fragmentFiles, err := util.Glob(fragments...)
	if err != nil {
		return err
	}
	bundle, err := provider.LoadBundle(bundleFiles, fragmentFiles, policy)
	if err != nil {
		return err
	}

	logger := hclog.Default()
	logger.Info(`bundle loaded`, `environments`, bundle.Names())

	e := CreateRouter(bundle, policy, provider.OSLookup, logger)
	e.Logger.SetOutput(cmd.OutOrStdout())
	return e.Start(addr + `:` + strconv.Itoa(port))
}

// CreateRouter creates the echo instance for the configbyenv RESTful service. The bundle is
// shared by all requests and is never modified.
//
// GET /config selects the environments named by the "env" query parameter or, when it is
// absent, by the environment read using the given lookup.
//
// GET /config/:env selects the environments named by the path parameter.
//
// Both accept the query parameters "merge" (a strategy name) and "skipCommon" (a boolean).
//
// POST /merge merges the "extension" object of the request body into its "base" object using
// the policy given in the "policy" object, or the given policy when absent.
func CreateRouter(bundle api.Bundle, policy api.Policy, lookup provider.Lookup, logger hclog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	doSelect := func(c echo.Context, selector *string) error {
		opts, err := requestOptions(c, policy)
		if err != nil {
			return badRequest(c, err)
		}
		opts.Lookup = lookup
		opts.Logger = logger

		var result *api.Fragment
		if selector == nil {
			result = configbyenv.ByEnv(bundle, opts)
		} else {
			result = configbyenv.Select(bundle, configbyenv.EnvironmentNames(*selector), opts)
		}
		return renderJSON(c, result)
	}

	e.GET(`/config`, func(c echo.Context) error {
		var selector *string
		if vs, ok := c.QueryParams()[`env`]; ok && len(vs) > 0 {
			selector = &vs[0]
		}
		return doSelect(c, selector)
	})

	e.GET(`/config/:env`, func(c echo.Context) error {
		selector := c.Param(`env`)
		return doSelect(c, &selector)
	})

	e.POST(`/merge`, func(c echo.Context) error {
		body, err := ioutil.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		req, err := provider.ParseJSON(body, `request body`)
		if err != nil {
			return badRequest(c, err)
		}
		arg := func(key string) interface{} {
			if v, ok := req.Get(key); ok {
				return v
			}
			return api.FragmentWithCapacity(0)
		}

		p := policy
		if pv, ok := req.Get(`policy`); ok {
			pf, ok := pv.(*api.Fragment)
			if !ok {
				return badRequest(c, api.NotMapping(`policy`, pv))
			}
			if p, err = api.NewPolicy(api.ToNative(pf).(map[string]interface{})); err != nil {
				return badRequest(c, err)
			}
		}

		result, err := merge.Values(arg(`base`), arg(`extension`), p)
		if err != nil {
			return badRequest(c, err)
		}
		return renderJSON(c, result)
	})
	return e
}

func requestOptions(c echo.Context, policy api.Policy) (configbyenv.Options, error) {
	opts := configbyenv.Options{Policy: policy}
	if m := c.QueryParam(`merge`); m != `` {
		p, err := merge.GetStrategy(m)
		if err != nil {
			return opts, err
		}
		opts.Policy = p
	}
	if sc := c.QueryParam(api.OptionSkipCommon); sc != `` {
		b, err := strconv.ParseBool(sc)
		if err != nil {
			return opts, api.BadOption(api.OptionSkipCommon, sc)
		}
		opts.SkipCommon = b
	}
	return opts, nil
}

func renderJSON(c echo.Context, result api.Value) error {
	out := bytes.Buffer{}
	if err := configbyenv.Render(configbyenv.JSON, result, &out); err != nil {
		return err
	}
	return c.Stream(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, &out)
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{`message`: err.Error()})
}
