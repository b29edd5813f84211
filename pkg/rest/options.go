package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type commonOptions struct {
	Header http.Header
}

type requestOptions struct {
	commonOptions
	Params      map[string]string
	Query       url.Values
	RequestBody any
}

type clientOptions struct {
	commonOptions
	ErrorPolicyFn ErrorPolicyFunc
	RefreshFn     RefreshFunc
}

// Option interface is implemented by option functions that are available both
// at client creation and at request invocations.
type Option interface {
	ClientOption
	RequestOption
	apply(opt *commonOptions)
}

// ClientOption interface is implemented by option functions that are only
// available when creating a client.
type ClientOption interface {
	applyClient(opt *clientOptions)
}

// RequestOption interface is implemented by option functions that are only
// available for request invocations.
type RequestOption interface {
	applyRequest(opt *requestOptions)
}

type allOptionFunc func(opt *commonOptions)

func (f allOptionFunc) apply(o *commonOptions)         { f(o) }
func (f allOptionFunc) applyRequest(o *requestOptions) { f(&o.commonOptions) }
func (f allOptionFunc) applyClient(o *clientOptions)   { f(&o.commonOptions) }

type clientOptionFunc func(opt *clientOptions)

func (f clientOptionFunc) applyClient(o *clientOptions) { f(o) }

type requestOptionFunc func(opt *requestOptions)

func (f requestOptionFunc) applyRequest(o *requestOptions) { f(o) }

// WithHeader sets a header with a value. Used at client creation it becomes a
// default header; used on a request it applies to that call only and wins over
// the default for the same key.
// The value type can be string, the integer types, bool, time.Time or
// Stringer, any other type will panic.
func WithHeader(name string, value any) Option {
	return allOptionFunc(func(options *commonOptions) {
		options.Header.Set(name, toString(value))
	})
}

// WithHeaders sets every entry of the given map as a header. Same scoping
// rules as WithHeader.
func WithHeaders(headers map[string]string) Option {
	return allOptionFunc(func(options *commonOptions) {
		for k, v := range headers {
			options.Header.Set(k, v)
		}
	})
}

// WithBody sets a body for the request. []byte and io.Reader values are sent
// as-is, any other value is marshaled to JSON and a Content-Type of
// application/json is set unless the caller already provided one.
func WithBody(body any) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.RequestBody = body
	})
}

// WithParam sets a value for the name placeholder in the route, either in the
// path or in the query string. Placeholders use the {name} syntax.
// The value type can be string, the integer types, bool, time.Time or
// Stringer, any other type will panic.
func WithParam(name string, value any) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.Params[name] = toString(value)
	})
}

// WithParamObject maps every exported field of the given struct into the
// corresponding route placeholder. Field names can be overridden with the
// `param:"placeholder_name"` tag, and skipped with `param:"-"`.
// It panics if object is nil or not a struct (or a pointer to one).
func WithParamObject(object any) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.Params = structParams(object)
	})
}

// WithQuery appends additional query values to the ones already present in
// the route.
func WithQuery(v url.Values) RequestOption {
	return requestOptionFunc(func(options *requestOptions) {
		options.Query = v
	})
}

// WithErrorPolicy controls whether a response should be treated as an error.
// Default is to treat any response status >= 400 as an error.
func WithErrorPolicy(fn ErrorPolicyFunc) ClientOption {
	return clientOptionFunc(func(options *clientOptions) {
		options.ErrorPolicyFn = fn
	})
}

// WithRefreshFunc installs the callback invoked when a request gets a 401
// response, enabling the one-shot refresh-and-retry cycle. Without it a 401 is
// surfaced through the error policy like any other failing status.
func WithRefreshFunc(fn RefreshFunc) ClientOption {
	return clientOptionFunc(func(options *clientOptions) {
		options.RefreshFn = fn
	})
}

func toString(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%v", value)
	default:
		panic(fmt.Sprintf("type %T is unsupported", value))
	}
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		commonOptions: defaultOptions(),
		ErrorPolicyFn: DefaultErrorPolicy,
	}
}

func defaultRequestOptions() requestOptions {
	return requestOptions{
		commonOptions: defaultOptions(),
		Params:        make(map[string]string),
	}
}

func defaultOptions() commonOptions {
	return commonOptions{
		Header: make(http.Header),
	}
}
