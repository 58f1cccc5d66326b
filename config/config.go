// Package config resolves jjdag's settings from the command line, the
// environment and an optional YAML file, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigRelPath = "jjdag/config.yaml"

const (
	envLogFile       = "JJDAG_LOG_FILE"
	envLogLevel      = "JJDAG_LOG_LEVEL"
	envWatch         = "JJDAG_WATCH"
	envScrollPadding = "JJDAG_SCROLL_PADDING"
	envEditor        = "EDITOR"
)

const (
	flagRepository      = "R"
	flagRevisions       = "r"
	flagIgnoreImmutable = "ignore-immutable"
	flagInteractive     = "i"
	flagWatch           = "watch"
	flagScrollPadding   = "scroll-padding"
	flagLogFile         = "log-file"
	flagLogLevel        = "log-level"
)

// Config is the resolved startup configuration.
type Config struct {
	Repository      string
	Revisions       string
	IgnoreImmutable bool
	Interactive     bool
	Watch           bool
	ScrollPadding   int
	Editor          string
	Logging         Logging
}

type Logging struct {
	File  string
	Level string
}

// fileConfig mirrors config.yaml. Nil fields were not set in the file.
type fileConfig struct {
	Revisions       *string `yaml:"revisions"`
	IgnoreImmutable *bool   `yaml:"ignore-immutable"`
	Watch           *bool   `yaml:"watch"`
	ScrollPadding   *int    `yaml:"scroll-padding"`
	Editor          *string `yaml:"editor"`
	Log             struct {
		File  *string `yaml:"file"`
		Level *string `yaml:"level"`
	} `yaml:"log"`
}

// Load parses configuration from the process arguments and environment.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs resolves configuration from the given args and environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("jjdag", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	repository := fs.String(flagRepository, ".", "path to the jj repository")
	revisions := fs.String(flagRevisions, "", "revset to show (empty uses jj's default)")
	ignoreImmutable := fs.Bool(flagIgnoreImmutable, false, "pass --ignore-immutable to every jj command")
	interactive := fs.Bool(flagInteractive, false, "run the quick actions menu instead of the log view")
	watch := fs.Bool(flagWatch, envOrBool(env, envWatch, true), "reload when the repository changes")
	padding := fs.Int(flagScrollPadding, envOrInt(env, envScrollPadding, 3), "nodes kept visible around the cursor")
	logFile := fs.String(flagLogFile, envOrDefault(env, envLogFile, ""), "path to the log file")
	logLevel := fs.String(flagLogLevel, envOrDefault(env, envLogLevel, "info"), "debug, info, warn or error")
	configPath := fs.String("config", "", "path to the config file")
	noConfig := fs.Bool("no-config", false, "ignore the config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	file, err := loadFile(configHome(env), *configPath, *noConfig)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Repository:      *repository,
		Revisions:       *revisions,
		IgnoreImmutable: *ignoreImmutable,
		Interactive:     *interactive,
		Watch:           *watch,
		ScrollPadding:   *padding,
		Editor:          envOrDefault(env, envEditor, "vim"),
		Logging: Logging{
			File:  *logFile,
			Level: *logLevel,
		},
	}
	cfg = applyFile(cfg, file, func(name, envKey string) bool {
		if explicit[name] {
			return false
		}
		if envKey == "" {
			return true
		}
		return env[envKey] == ""
	})

	if cfg.ScrollPadding < 0 {
		return Config{}, fmt.Errorf("scroll-padding must be >= 0 (got %d)", cfg.ScrollPadding)
	}
	return cfg, nil
}

// applyFile copies the values set in the file over cfg wherever use allows
// it, which is when neither a flag nor the environment set them.
func applyFile(cfg Config, file fileConfig, use func(flagName, envKey string) bool) Config {
	if file.Revisions != nil && use(flagRevisions, "") {
		cfg.Revisions = *file.Revisions
	}
	if file.IgnoreImmutable != nil && use(flagIgnoreImmutable, "") {
		cfg.IgnoreImmutable = *file.IgnoreImmutable
	}
	if file.Watch != nil && use(flagWatch, envWatch) {
		cfg.Watch = *file.Watch
	}
	if file.ScrollPadding != nil && use(flagScrollPadding, envScrollPadding) {
		cfg.ScrollPadding = *file.ScrollPadding
	}
	if file.Editor != nil && use("", envEditor) {
		cfg.Editor = *file.Editor
	}
	if file.Log.File != nil && use(flagLogFile, envLogFile) {
		cfg.Logging.File = *file.Log.File
	}
	if file.Log.Level != nil && use(flagLogLevel, envLogLevel) {
		cfg.Logging.Level = *file.Log.Level
	}
	return cfg
}

func configHome(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return dir
	}
	return filepath.Join(env["HOME"], ".config")
}

// loadFile reads the config file. The default location may be missing; an
// explicit path must exist.
func loadFile(home, explicitPath string, noConfig bool) (fileConfig, error) {
	if noConfig {
		return fileConfig{}, nil
	}
	path, required := filepath.Join(home, defaultConfigRelPath), false
	if explicitPath != "" {
		path, required = explicitPath, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config %q: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg fileConfig
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
