package config

import (
	"github.com/goccy/go-yaml"
)

type YamlLoader struct {
	*fileLoader
}

func NewYamlLoader(paths ...string) *YamlLoader {
	return &YamlLoader{fileLoader: &fileLoader{paths: paths, decode: decodeYAML}}
}

func decodeYAML(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.UseJSONUnmarshaler()); err != nil {
		return nil, ErrParseYAML.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}
	return config, nil
}
