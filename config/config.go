// Package config loads the onair configuration: a global file, the project
// file found from the working directory upwards, local overrides and the
// ONAIR_* environment, in that order.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/paths"
	"github.com/grovetools/onair/util/pathutil"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// ConfigNames are the project file names, in lookup order.
var ConfigNames = []string{
	"onair.yml",
	"onair.yaml",
	"onair.toml",
	".onair.yml",
	".onair.yaml",
}

var overrideNames = []string{
	"onair.override.yml",
	"onair.override.yaml",
	"onair.override.toml",
}

// Load reads and parses one configuration file.
func Load(path string) (*Config, error) {
	raw, err := readLayer(path)
	if err != nil {
		return nil, err
	}
	return finish(raw)
}

// LoadDefault loads the layered configuration starting from the working directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging.
// Missing files are not an error: an empty layer stack yields the defaults.
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	merged := map[string]interface{}{}
	for _, path := range Layers(startDir) {
		logger.WithField("path", path).Debug("Loading configuration layer")
		raw, err := readLayer(path)
		if err != nil {
			return nil, err
		}
		merged = mergeMaps(merged, raw)
	}

	cfg, err := finish(merged)
	if err != nil {
		return nil, err
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		if data, err := yaml.Marshal(cfg); err == nil {
			logger.Debugf("Merged configuration:\n%s", string(data))
		}
	}
	return cfg, nil
}

// LoadFromBytes parses a YAML or TOML document (format "yaml" or "toml").
func LoadFromBytes(data []byte, format string) (*Config, error) {
	raw, err := decodeLayer(data, format)
	if err != nil {
		return nil, err
	}
	return finish(raw)
}

// Layers returns the existing configuration files that apply to startDir,
// lowest precedence first.
func Layers(startDir string) []string {
	var layers []string
	if global := globalConfigPath(); global != "" {
		layers = append(layers, global)
	}
	project, err := FindConfigFile(startDir)
	if err != nil {
		return layers
	}
	if len(layers) == 0 || layers[0] != project {
		layers = append(layers, project)
	}
	dir := filepath.Dir(project)
	for _, name := range overrideNames {
		path := filepath.Join(dir, name)
		if isFile(path) {
			layers = append(layers, path)
		}
	}
	return layers
}

// FindConfigFile searches for onair configuration files from startDir up to
// the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range ConfigNames {
			path := filepath.Join(dir, name)
			if isFile(path) {
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

func finish(raw map[string]interface{}) (*Config, error) {
	cfg, err := fromMap(raw)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigParse, "failed to apply environment overlay")
	}
	if err := pathutil.ExpandAll(&cfg.Storage.Path, &cfg.Scoreboard.TemplatesDir, &cfg.Daemon.Socket); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to expand configured paths")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromMap(raw map[string]interface{}) (*Config, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigParse, "failed to re-encode configuration")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigParse, "failed to parse configuration")
	}
	return &cfg, nil
}

func readLayer(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	raw, err := decodeLayer(data, formatOf(path))
	if err != nil {
		if e, ok := err.(*errors.OnAirError); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	return raw, nil
}

func decodeLayer(data []byte, format string) (map[string]interface{}, error) {
	expanded := []byte(expandEnvVars(string(data)))
	raw := map[string]interface{}{}
	if len(bytes.TrimSpace(expanded)) == 0 {
		return raw, nil
	}

	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(expanded, &raw)
	default:
		err = yaml.Unmarshal(expanded, &raw)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigParse, "failed to parse "+format+" configuration")
	}
	return raw, nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
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

// globalConfigPath returns the first global config file that exists.
func globalConfigPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"onair.yml", "onair.yaml", "onair.toml"} {
		path := filepath.Join(dir, name)
		if isFile(path) {
			return path
		}
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
