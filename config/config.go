package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/hookcheck/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// ConfigNames are the project settings file names, in order of preference.
var ConfigNames = []string{
	"hookcheck.yml",
	"hookcheck.yaml",
	".hookcheck.yml",
	".hookcheck.yaml",
}

// Load reads, defaults and validates a single settings file.
func Load(path string) (*Config, error) {
	cfg, err := readLayer(path)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

// LoadFromBytes parses settings from a byte array.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parseYAML(data)
	if err != nil {
		return nil, err
	}
	return finalize(cfg)
}

// LoadDefault loads the layered settings for the current directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads settings with hierarchical merging starting from the given directory.
// Every layer is optional; with none present the defaults are returned.
func LoadFrom(startDir string) (*Config, error) {
	layered, err := LoadLayered(startDir, "", nil)
	if err != nil {
		return nil, err
	}
	return layered.Final, nil
}

// LoadLayered finds and loads every settings layer, then merges them:
//  1. Global settings ($XDG_CONFIG_HOME/hookcheck/hookcheck.yml) - base layer
//  2. Project settings (hookcheck.yml, found upward from startDir)
//  3. [tool.hookcheck] in the nearest pyproject.toml
//  4. An explicit file (the --config flag), which must exist
func LoadLayered(startDir, explicit string, logger *logrus.Logger) (*LayeredConfig, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}

	layered := &LayeredConfig{}
	defaults := &Config{}
	defaults.SetDefaults()
	layered.Layers = append(layered.Layers, Layer{Source: SourceDefault, Config: defaults})

	if globalPath := getXDGConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global settings")
			cfg, err := readLayer(globalPath)
			if err != nil {
				logger.WithError(err).Warn("Failed to load global settings, continuing without them")
			} else {
				layered.Layers = append(layered.Layers, Layer{Source: SourceGlobal, Path: globalPath, Config: cfg})
			}
		}
	}

	if projectPath, err := FindConfigFile(startDir); err == nil {
		logger.WithField("path", projectPath).Debug("Loading project settings")
		cfg, err := readLayer(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Layers = append(layered.Layers, Layer{Source: SourceProject, Path: projectPath, Config: cfg})
	}

	if pyproject := findUpward(startDir, "pyproject.toml"); pyproject != "" {
		cfg, found, err := readPyproject(pyproject)
		if err != nil {
			return nil, err
		}
		if found {
			logger.WithField("path", pyproject).Debug("Loading [tool.hookcheck] from pyproject.toml")
			layered.Layers = append(layered.Layers, Layer{Source: SourcePyproject, Path: pyproject, Config: cfg})
		}
	}

	if explicit != "" {
		cfg, err := readLayer(explicit)
		if err != nil {
			return nil, err
		}
		layered.Layers = append(layered.Layers, Layer{Source: SourceExplicit, Path: explicit, Config: cfg})
	}

	final := &Config{}
	for _, layer := range layered.Layers {
		final = mergeConfigs(final, layer.Config)
	}

	final, err := finalize(final)
	if err != nil {
		return nil, err
	}
	layered.Final = final

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(final); err == nil {
			logger.Debugf("Merged settings:\n%s", string(data))
		}
	}

	return layered, nil
}

// FindConfigFile searches from startDir up to the filesystem root for a
// project settings file.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to resolve search directory")
	}

	for {
		for _, name := range ConfigNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

func finalize(cfg *Config) (*Config, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parseYAML(data)
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	return &cfg, nil
}

// readPyproject decodes the [tool.hookcheck] table of a pyproject.toml.
// found is false when the file has no such table.
func readPyproject(path string) (cfg *Config, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read pyproject.toml").
			WithDetail("path", path)
	}

	var raw struct {
		Tool map[string]interface{} `toml:"tool"`
	}
	if err := toml.Unmarshal([]byte(expandEnvVars(string(data))), &raw); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse pyproject.toml").
			WithDetail("path", path)
	}

	section, ok := raw.Tool["hookcheck"]
	if !ok {
		return nil, false, nil
	}

	cfg = &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to create mapstructure decoder")
	}
	if err := decoder.Decode(section); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid [tool.hookcheck] table").
			WithDetail("path", path)
	}
	return cfg, true, nil
}

func findUpward(startDir, name string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the global settings path
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hookcheck", "hookcheck.yml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "hookcheck", "hookcheck.yml")
	}

	return ""
}
