package config

import "encoding/json"

type JSONLoader struct {
	*fileLoader
}

func NewJSONLoader(paths ...string) *JSONLoader {
	return &JSONLoader{fileLoader: &fileLoader{paths: paths, decode: decodeJSON}}
}

func decodeJSON(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, ErrParseJSON.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}
	return config, nil
}
