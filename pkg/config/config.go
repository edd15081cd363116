package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/pathsfilter/pkg/errors"
	"github.com/arthur-debert/pathsfilter/pkg/filter"
	"github.com/arthur-debert/pathsfilter/pkg/logging"
	"github.com/arthur-debert/pathsfilter/pkg/output"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override settings
const EnvPrefix = "PATHS_FILTER_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Names of the project-local config files, in lookup order
var localConfigFiles = []string{".pathsfilter.yaml", ".pathsfilter.yml", ".pathsfilter.toml"}

// Names of the user config files under the XDG config directory
var userConfigFiles = []string{"pathsfilter/config.yaml", "pathsfilter/config.yml", "pathsfilter/config.toml"}

// Config holds the resolved settings for a run
type Config struct {
	Filters             string `koanf:"filters"`
	Base                string `koanf:"base"`
	Ref                 string `koanf:"ref"`
	WorkingDirectory    string `koanf:"working_directory"`
	ListFiles           string `koanf:"list_files"`
	PredicateQuantifier string `koanf:"predicate_quantifier"`
	GitHubOutput        string `koanf:"github_output"`
	Files               string `koanf:"files"`

	// Source is the config file the settings were read from, if any
	Source string `koanf:"-"`
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// ConfigFile is an explicit config file path. It must exist.
	ConfigFile string
	// WorkingDir is searched for a project-local config file. Defaults to
	// the current directory.
	WorkingDir string
	// Overrides are applied last, typically from command-line flags that
	// were set explicitly. Keys are setting names.
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load resolves settings from the built-in defaults, a config file,
// PATHS_FILTER_* environment variables and opts.Overrides, in that order.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}

	// 2. Config file
	workDir := opts.WorkingDir
	if workDir == "" {
		workDir = "."
	}
	path, err := findConfigFile(opts.ConfigFile, workDir)
	if err != nil {
		return nil, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal settings")
	}
	cfg.Source = path

	postProcessConfig(&cfg, opts.WorkingDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the tool cannot act on
func (c *Config) Validate() error {
	if _, err := filter.ParseQuantifier(c.PredicateQuantifier); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid predicate_quantifier").
			WithDetail("value", c.PredicateQuantifier)
	}
	if _, err := output.ParseFormat(c.ListFiles); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid list_files").
			WithDetail("value", c.ListFiles)
	}
	return nil
}

// Quantifier returns the parsed predicate quantifier
func (c *Config) Quantifier() filter.Quantifier {
	q, _ := filter.ParseQuantifier(c.PredicateQuantifier)
	return q
}

// ListFormat returns the parsed list_files format
func (c *Config) ListFormat() output.Format {
	f, _ := output.ParseFormat(c.ListFiles)
	return f
}

func postProcessConfig(cfg *Config, workDir string) {
	if cfg.GitHubOutput == "" {
		cfg.GitHubOutput = os.Getenv("GITHUB_OUTPUT")
	}
	if workDir != "" && (cfg.WorkingDirectory == "" || cfg.WorkingDirectory == ".") {
		cfg.WorkingDirectory = workDir
	}
	if cfg.WorkingDirectory == "" {
		cfg.WorkingDirectory = "."
	}
}

func findConfigFile(explicit, workDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	for _, name := range localConfigFiles {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	for _, name := range userConfigFiles {
		if path, err := xdg.SearchConfigFile(name); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}
