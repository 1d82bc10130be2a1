package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
)

type templatedLoader struct {
	loader Loader
}

// NewTemplatedLoader renders every string value of loader's result that
// contains a template action. Templates see no data; values come from the
// functions:
//
//	env "NAME"          environment variable, empty when unset
//	default "x" v       v, or "x" when v is empty
//	required v          v, or an error when v is empty
//	ref "a.b"           another config value, as loaded before rendering
//	upper v, lower v
//
// A value that fails to parse or execute fails Load with ErrTemplate.
func NewTemplatedLoader(loader Loader) Loader {
	return &templatedLoader{loader: loader}
}

func (t *templatedLoader) Load() (map[string]any, error) {
	raw, err := t.loader.Load()
	if err != nil {
		return nil, err
	}

	funcs := newFuncMap(raw)
	processed := make(map[string]any, len(raw))
	for k, v := range raw {
		if processed[k], err = processValue(k, v, funcs); err != nil {
			return nil, err
		}
	}
	return processed, nil
}

func processValue(key string, v any, funcs template.FuncMap) (any, error) {
	switch val := v.(type) {
	case string:
		if !strings.Contains(val, "{{") {
			return val, nil
		}
		return render(key, val, funcs)

	case map[string]any:
		mapped := make(map[string]any, len(val))
		for k, item := range val {
			out, err := processValue(key+"."+k, item, funcs)
			if err != nil {
				return nil, err
			}
			mapped[k] = out
		}
		return mapped, nil

	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			out, err := processValue(key+"."+strconv.Itoa(i), item, funcs)
			if err != nil {
				return nil, err
			}
			items[i] = out
		}
		return items, nil

	default:
		return val, nil
	}
}

func render(key, input string, funcs template.FuncMap) (string, error) {
	tmpl, err := template.New(key).Funcs(funcs).Option("missingkey=error").Parse(input)
	if err != nil {
		return "", ErrTemplate.WithDetail("key", key).WithDetail("reason", err.Error()).WithCause(err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", ErrTemplate.WithDetail("key", key).WithDetail("reason", err.Error()).WithCause(err)
	}
	return buf.String(), nil
}

func newFuncMap(raw map[string]any) template.FuncMap {
	return template.FuncMap{
		"env": os.Getenv,
		"default": func(def string, val any) string {
			if s := stringify(val); s != "" {
				return s
			}
			return def
		},
		"required": func(val any) (string, error) {
			s := stringify(val)
			if s == "" {
				return "", fmt.Errorf("required value is empty")
			}
			return s, nil
		},
		"ref": func(path string) (string, error) {
			v, ok := lookup(raw, path)
			if !ok {
				return "", fmt.Errorf("referenced key %q not found", path)
			}
			return stringify(v), nil
		},
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func lookup(values map[string]any, path string) (any, bool) {
	var current any = values
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
