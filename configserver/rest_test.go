package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo"
	"github.com/lyraproj/configbyenv/api"
	"github.com/lyraproj/configbyenv/provider"
	"github.com/stretchr/testify/require"
)

func testRouter(env map[string]string) *echo.Echo {
	bundle, err := api.ToBundle(map[string]interface{}{
		`common`:     map[string]interface{}{`port`: 80, `tags`: []interface{}{`a`}},
		`production`: map[string]interface{}{`port`: 443, `tags`: []interface{}{`b`}},
		`eu`:         map[string]interface{}{`region`: `eu-west-1`},
	})
	if err != nil {
		panic(err)
	}
	return CreateRouter(bundle, api.Policy{}, provider.MapLookup(env), hclog.NewNullLogger())
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestConfig_fromEnvironment(t *testing.T) {
	rec := serve(testRouter(map[string]string{`NODE_ENV`: `production`}), httptest.NewRequest(http.MethodGet, `/config`, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `application/json; charset=UTF-8`, rec.Header().Get(`Content-Type`))
	require.Equal(t, `{"port":[80,443],"tags":["a","b"]}`+"\n", rec.Body.String())
}

func TestConfig_defaultEnvironment(t *testing.T) {
	rec := serve(testRouter(nil), httptest.NewRequest(http.MethodGet, `/config`, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"port":80,"tags":["a"]}`+"\n", rec.Body.String())
}

func TestConfig_envQuery(t *testing.T) {
	rec := serve(testRouter(map[string]string{`NODE_ENV`: `production`}), httptest.NewRequest(http.MethodGet, `/config?env=eu`, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"port":80,"tags":["a"],"region":"eu-west-1"}`+"\n", rec.Body.String())
}

func TestConfig_envPath(t *testing.T) {
	rec := serve(testRouter(nil), httptest.NewRequest(http.MethodGet, `/config/production,eu?merge=overwrite`, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"port":443,"tags":["b"],"region":"eu-west-1"}`+"\n", rec.Body.String())
}

func TestConfig_skipCommon(t *testing.T) {
	rec := serve(testRouter(nil), httptest.NewRequest(http.MethodGet, `/config/eu?skipCommon=true`, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"region":"eu-west-1"}`+"\n", rec.Body.String())
}

func TestConfig_badSkipCommon(t *testing.T) {
	rec := serve(testRouter(nil), httptest.NewRequest(http.MethodGet, `/config/eu?skipCommon=maybe`, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `skipCommon`)
}

func TestConfig_unknownMerge(t *testing.T) {
	rec := serve(testRouter(nil), httptest.NewRequest(http.MethodGet, `/config?merge=sideways`, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `unknown merge strategy 'sideways'`)
}

func postMerge(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, `/merge`, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return serve(testRouter(nil), req)
}

func TestMerge_deep(t *testing.T) {
	rec := postMerge(`{"base":{"a":1,"b":{"c":[1]}},"extension":{"b":{"c":2},"d":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"a":1,"b":{"c":[1,2]},"d":true}`+"\n", rec.Body.String())
}

func TestMerge_policy(t *testing.T) {
	rec := postMerge(`{"base":{"a":1,"b":{"c":1}},"extension":{"b":{"d":2}},"policy":{"overwrite":true}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"a":1,"b":{"d":2}}`+"\n", rec.Body.String())
}

func TestMerge_noCreateArray(t *testing.T) {
	rec := postMerge(`{"base":{"a":1},"extension":{"a":2},"policy":{"createArray":false}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"a":2}`+"\n", rec.Body.String())
}

func TestMerge_missingArguments(t *testing.T) {
	rec := postMerge(`{"extension":{"a":2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"a":2}`+"\n", rec.Body.String())
}

func TestMerge_notMapping(t *testing.T) {
	rec := postMerge(`{"base":[1,2],"extension":{"a":2}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `base must be a mapping`)
}

func TestMerge_unknownOption(t *testing.T) {
	rec := postMerge(`{"base":{},"extension":{},"policy":{"sideways":true}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `unknown option 'sideways'`)
}

func TestMerge_badBody(t *testing.T) {
	rec := postMerge(`[1,2]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `does not contain a JSON object`)
}
