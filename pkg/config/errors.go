package config

import "github.com/webcore/framework/pkg/errors"

var newConfigCode = errors.WithPrefix("CONFIG")

var (
	ErrNoConfigSource = newConfigCode().New("no valid configuration source found")
	ErrPathNotFound   = newConfigCode().New("config file not found: {{.path}}")
	ErrEmptyFile      = newConfigCode().New("config file {{.path}} is empty")
	ErrParseYAML      = newConfigCode().New("failed to parse YAML file {{.path}}: {{.reason}}")
	ErrParseJSON      = newConfigCode().New("failed to parse JSON file {{.path}}: {{.reason}}")
	ErrParseDotenv    = newConfigCode().New("failed to parse dotenv file {{.path}}: {{.reason}}")
	ErrMergeFailed    = newConfigCode().New("failed to merge configuration layers")
	ErrOptionNotFound = newConfigCode().New("config option {{.key}} not found")
	ErrTemplate       = newConfigCode().New("config value {{.key}} is not a valid template: {{.reason}}")
)
