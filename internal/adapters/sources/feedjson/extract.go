package feedjson

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	perr "oasis/internal/platform/errors"

	"github.com/buger/jsonparser"
)

var errNotJSON = stderrs.New("body is not valid json")

// Each walks the array found at path in body, calling fn for every object element
// an absent or null array yields no calls and no error; a non-array value is a decode error
func Each(body []byte, fn func(item []byte) error, path ...string) error {
	what := pathName(path)
	if !json.Valid(body) {
		return perr.FromDecode(errNotJSON, what)
	}
	v, typ, _, err := jsonparser.Get(body, path...)
	switch {
	case stderrs.Is(err, jsonparser.KeyPathNotFoundError), typ == jsonparser.Null:
		return nil
	case err != nil:
		return perr.FromDecode(err, what)
	case typ != jsonparser.Array:
		return perr.FromDecode(fmt.Errorf("%s is %v, not an array", what, typ), what)
	}

	var cbErr error
	_, err = jsonparser.ArrayEach(v, func(item []byte, t jsonparser.ValueType, _ int, e error) {
		if cbErr != nil {
			return
		}
		if e != nil {
			cbErr = perr.FromDecode(e, what)
			return
		}
		if t != jsonparser.Object {
			return
		}
		cbErr = fn(item)
	})
	if cbErr != nil {
		return cbErr
	}
	if err != nil {
		return perr.FromDecode(err, what)
	}
	return nil
}

// Object returns the object at path; absent or non-object values are decode errors
func Object(body []byte, path ...string) ([]byte, error) {
	what := pathName(path)
	if !json.Valid(body) {
		return nil, perr.FromDecode(errNotJSON, what)
	}
	v, typ, _, err := jsonparser.Get(body, path...)
	if err != nil {
		return nil, perr.FromDecode(err, what)
	}
	if typ != jsonparser.Object {
		return nil, perr.FromDecode(fmt.Errorf("%s is %v, not an object", what, typ), what)
	}
	return v, nil
}

func pathName(path []string) string {
	if len(path) == 0 {
		return "body"
	}
	return strings.Join(path, ".")
}

// Str reads a string field; numbers and booleans come back as their literal text
func Str(item []byte, keys ...string) string {
	v, typ, _, err := jsonparser.Get(item, keys...)
	if err != nil {
		return ""
	}
	switch typ {
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return string(v)
		}
		return strings.TrimSpace(s)
	case jsonparser.Number, jsonparser.Boolean:
		return string(v)
	default:
		return ""
	}
}

// Int reads a number, or a string holding one; ok is false when absent or unparsable
func Int(item []byte, keys ...string) (int, bool) {
	v, typ, _, err := jsonparser.Get(item, keys...)
	if err != nil {
		return 0, false
	}
	switch typ {
	case jsonparser.Number:
		if n, err := jsonparser.ParseInt(v); err == nil {
			return int(n), true
		}
		if f, err := jsonparser.ParseFloat(v); err == nil {
			return int(f), true
		}
	case jsonparser.String:
		if n, err := strconv.Atoi(strings.TrimSpace(string(v))); err == nil {
			return n, true
		}
	}
	return 0, false
}

// IntOr is Int with a default
func IntOr(item []byte, def int, keys ...string) int {
	if n, ok := Int(item, keys...); ok {
		return n
	}
	return def
}

// Float reads a number field
func Float(item []byte, keys ...string) (float64, bool) {
	v, typ, _, err := jsonparser.Get(item, keys...)
	if err != nil || typ != jsonparser.Number {
		return 0, false
	}
	f, err := jsonparser.ParseFloat(v)
	return f, err == nil
}

// Bool reads a boolean field, accepting 0/1 numbers as some feeds do
func Bool(item []byte, keys ...string) bool {
	v, typ, _, err := jsonparser.Get(item, keys...)
	if err != nil {
		return false
	}
	switch typ {
	case jsonparser.Boolean:
		b, _ := jsonparser.ParseBoolean(v)
		return b
	case jsonparser.Number:
		return string(v) != "0"
	}
	return false
}

// redact hides credentials carried in query strings before logging
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for _, k := range []string{"api_key", "key", "token"} {
		if q.Has(k) {
			q.Set(k, "xxx")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
