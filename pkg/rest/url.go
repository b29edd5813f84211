package rest

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/valyala/fasttemplate"
)

var (
	// ErrEmptyURLParam empty param value for a path placeholder.
	ErrEmptyURLParam = errors.New("empty param value for a route placeholder")

	// ErrMissingURLParam missing param for a placeholder present in the route.
	ErrMissingURLParam = errors.New("missing param value for a route placeholder")
)

const (
	noneEscape int = iota
	queryEscape
	pathEscape
)

// expandRoute rewrites target by replacing {name} placeholders with the given
// params (path-escaped in the path, query-escaped in the query string) and
// appending the extra query values. When neither params nor query are given
// the target is returned verbatim, preserving the plain baseURL+route
// concatenation contract.
func expandRoute(target string, params map[string]string, query url.Values) (string, error) {
	if len(params) == 0 && len(query) == 0 {
		return target, nil
	}

	path, rawQuery, _ := strings.Cut(target, "?")

	if len(params) > 0 {
		p, err := fasttemplate.ExecuteFuncStringWithErr(path, "{", "}", func(w io.Writer, tag string) (int, error) {
			return tagFunc(w, tag, params, pathEscape)
		})
		if err != nil {
			return "", err
		}
		path = p

		q, err := fasttemplate.ExecuteFuncStringWithErr(rawQuery, "{", "}", func(w io.Writer, tag string) (int, error) {
			return tagFunc(w, tag, params, queryEscape)
		})
		if err != nil {
			return "", err
		}
		rawQuery = q
	}

	if len(query) > 0 {
		if rawQuery != "" {
			rawQuery += "&"
		}
		rawQuery += query.Encode()
	}

	if rawQuery == "" {
		return path, nil
	}

	return path + "?" + rawQuery, nil
}

func noopEscape(s string) string { return s }

func tagFunc(w io.Writer, tag string, m map[string]string, mode int) (int, error) {
	escapeFunc := noopEscape
	switch mode {
	case queryEscape:
		escapeFunc = url.QueryEscape
	case pathEscape:
		escapeFunc = url.PathEscape
	}

	v, ok := m[tag]
	if !ok {
		return 0, ErrMissingURLParam
	}

	// An empty path segment would silently change the route shape.
	if v == "" && mode != queryEscape {
		return 0, ErrEmptyURLParam
	}

	return w.Write([]byte(escapeFunc(v)))
}
