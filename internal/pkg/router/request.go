package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/ligtascommute/backend/internal/pkg/goerror"
)

// Request wraps *http.Request with decoding and parameter helpers.
type Request struct {
	*http.Request
}

// GetParam returns a named path parameter.
func (r *Request) GetParam(name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// GetParamInt64 returns a named path parameter parsed as int64, or 0.
func (r *Request) GetParamInt64(name string) int64 {
	v, err := strconv.ParseInt(r.GetParam(name), 10, 64)
	if err != nil {
		return 0
	}

	return v
}

// GetQuery returns a query string value.
func (r *Request) GetQuery(name string) string {
	return r.URL.Query().Get(name)
}

// GetQueryInt64 returns a query string value parsed as int64, or the fallback.
func (r *Request) GetQueryInt64(name string, fallback int64) int64 {
	v, err := strconv.ParseInt(r.GetQuery(name), 10, 64)
	if err != nil {
		return fallback
	}

	return v
}

// DecodeBody decodes the JSON request body into dst. Unknown fields and
// trailing data are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r.Body == nil {
		return goerror.NewInvalidFormat("Request body is required")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
