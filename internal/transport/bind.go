package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/core/common/validation"
	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/go-chi/chi"
	"github.com/go-viper/mapstructure/v2"
)

const maxBodyBytes = 1 << 20

// Binder extracts and validates the input of one route. Malformed input is
// reported as INPUT_PARSE_FAIL, constraint violations as INPUT_VALIDATE_FAIL.
type Binder[I any] func(r *http.Request) (I, error)

func NoInput(_ *http.Request) (usecase.Empty, error) {
	return usecase.Empty{}, nil
}

// JSONBody decodes an application/json body into I.
func JSONBody[I any](r *http.Request) (I, error) {
	var in I

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return in, internal.NewInputParseError("expected request with `Content-Type: application/json`", err)
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		return in, internal.NewInputParseError(decodeMessage(err), err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return in, internal.NewInputParseError("request body must contain a single JSON value", err)
	}

	if err := validation.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

// QueryParams decodes the URL query into I using `query` struct tags.
func QueryParams[I any](r *http.Request) (I, error) {
	var in I
	if err := decodeValues(flatten(r.URL.Query()), "query", &in); err != nil {
		return in, internal.NewInputParseError(fmt.Sprintf("invalid query string: %v", err), err)
	}
	if err := validation.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

// PathParams decodes chi route parameters into I using `path` struct tags.
func PathParams[I any](r *http.Request) (I, error) {
	var in I
	params := map[string]any{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	if err := decodeValues(params, "path", &in); err != nil {
		return in, internal.NewInputParseError(fmt.Sprintf("invalid path parameter: %v", err), err)
	}
	if err := validation.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

func decodeValues(values map[string]any, tag string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tag,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(values)
}

func flatten(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			out[key] = vals[0]
			continue
		}
		out[key] = vals
	}
	return out
}

func decodeMessage(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON: unexpected end of input"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %s must be of type %s", typeErr.Field, typeErr.Type)
	case errors.As(err, &sizeErr):
		return fmt.Sprintf("request body exceeds %d bytes", sizeErr.Limit)
	default:
		return fmt.Sprintf("invalid request body: %v", err)
	}
}
