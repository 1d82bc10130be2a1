package config

import (
	"path/filepath"
	"strings"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

type module struct {
	loader Loader
}

// NewModule loads configuration from the given files and the environment.
// Files are dispatched by extension (.yaml/.yml, .json, .env); the
// environment variables starting with envPrefix are applied last.
func NewModule(envPrefix string, configPaths ...string) contracts.AppModule {
	var yamlPaths, jsonPaths, dotenvPaths []string
	for _, path := range configPaths {
		switch ext := strings.ToLower(filepath.Ext(path)); {
		case ext == ".yaml" || ext == ".yml":
			yamlPaths = append(yamlPaths, path)
		case ext == ".json":
			jsonPaths = append(jsonPaths, path)
		case ext == ".env" || filepath.Base(path) == ".env":
			dotenvPaths = append(dotenvPaths, path)
		}
	}

	loaders := []Loader{
		NewYamlLoader(yamlPaths...),
		NewJSONLoader(jsonPaths...),
		NewDotenvLoader(envPrefix, dotenvPaths...),
		NewEnvLoader(envPrefix),
	}

	return NewModuleWithLoader(NewTemplatedLoader(NewChainLoader(loaders...)))
}

func NewModuleWithLoader(loader Loader) contracts.AppModule {
	return &module{loader: loader}
}

func (m *module) Name() string {
	return contracts.ConfigModuleName
}

func (m *module) Register(c contracts.Container) error {
	err := c.Singleton(contracts.ConfigID, func(contracts.Container) (any, error) {
		values, err := m.loader.Load()
		if err != nil {
			return nil, err
		}
		return NewMapConfig(values), nil
	})
	if err != nil {
		return err
	}
	return c.Bind(container.TypeID[contracts.Config](), contracts.ConfigID)
}

func (m *module) Start(_ contracts.AppContext) error {
	return nil
}

func (m *module) Stop(_ contracts.AppContext) error {
	return nil
}
