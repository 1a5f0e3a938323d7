// Package settings implements the settings file of ccnetcfg.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/simplesurance/ccnetcfg/pkg/cfg"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

const (
	// EnvVarPath is the environment variable that can contain the path of
	// the settings file.
	EnvVarPath = "CCNETCFG_SETTINGS"
	// FileName is the name of the settings file in the user config
	// directory.
	FileName = "settings.toml"

	appDir    = "ccnetcfg"
	maxIndent = 16
)

// Settings are the user preferences of ccnetcfg.
type Settings struct {
	ConfigVersion string `toml:"config_version" comment:"Configuration version that is assumed for ccnet.config files without a\n configurationVersion comment, in the format <Major>.<Minor>."`

	Format  Format
	Parser  Parser
	Display Display

	filePath string
}

// Format contains the settings for writing ccnet.config files.
type Format struct {
	Indent int  `toml:"indent" comment:"Number of spaces that nested elements are indented with."`
	Backup bool `toml:"backup" comment:"Create a copy with the suffix .bak before a file is overwritten."`
}

// Parser contains the settings for reading ccnet.config files.
type Parser struct {
	Strict bool `toml:"strict" comment:"Fail on unknown attributes and elements and on components that require\n a newer configuration version instead of ignoring them."`
}

// Display contains the settings for the command output.
type Display struct {
	ShowNewerTypes bool `toml:"show_newer_types" comment:"List component types that require a newer configuration version than\n config_version."`
	NoColor        bool `toml:"no_color" comment:"Disable colored output."`
}

// Default returns the settings that are used when no settings file exists.
func Default() *Settings {
	return &Settings{
		ConfigVersion: cfg.LatestVersion.String(),
		Format: Format{
			Indent: cfg.DefaultIndent,
		},
	}
}

// ExampleSettings returns exemplary settings.
func ExampleSettings() *Settings {
	s := Default()
	s.Format.Backup = true
	s.Parser.Strict = true

	return s
}

// FromFile reads the settings from a file.
// Keys that are not part of the settings cause an error.
func FromFile(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := Default()

	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()

	if err := dec.Decode(s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}

		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.filePath = path

	return s, nil
}

// Load reads and validates the settings file at path.
// If the file does not exist the default settings are returned.
func Load(path string) (*Settings, error) {
	s, err := FromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Locate returns the path of the settings file.
// flagVal is used if it is not empty, otherwise the value of the EnvVarPath
// environment variable. If both are empty, the path of FileName in the user
// configuration directory is returned.
func Locate(flagVal string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}

	if p := os.Getenv(EnvVarPath); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining user config directory failed, set %s: %w", EnvVarPath, err)
	}

	return filepath.Join(dir, appDir, FileName), nil
}

// FilePath returns the path of the file the settings were read from.
func (s *Settings) FilePath() string {
	return s.filePath
}

// Version returns ConfigVersion as schema.Version.
func (s *Settings) Version() (schema.Version, error) {
	return schema.ParseVersion(s.ConfigVersion)
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	v, err := s.Version()
	if err != nil {
		return schema.WrapPath(err, "config_version")
	}

	if v.Compare(cfg.LatestVersion) > 0 {
		return schema.WrapPath(
			fmt.Errorf("version %s is newer than the latest supported version %s", v, cfg.LatestVersion),
			"config_version",
		)
	}

	if s.Format.Indent < 0 || s.Format.Indent > maxIndent {
		return schema.WrapPath(
			fmt.Errorf("must be in range [0, %d], is %d", maxIndent, s.Format.Indent),
			"Format", "indent",
		)
	}

	return nil
}

// LoadOpts returns the options for reading ccnet.config files.
func (s *Settings) LoadOpts() ([]cfg.LoadOpt, error) {
	v, err := s.Version()
	if err != nil {
		return nil, err
	}

	opts := []cfg.LoadOpt{cfg.LoadOptDefaultVersion(v)}
	if s.Parser.Strict {
		opts = append(opts, cfg.LoadOptStrict())
	}

	return opts, nil
}

// WriteOpts returns the options for writing ccnet.config files.
func (s *Settings) WriteOpts() []cfg.WriteOpt {
	opts := []cfg.WriteOpt{cfg.WriteOptIndent(s.Format.Indent)}
	if s.Format.Backup {
		opts = append(opts, cfg.ToFileOptBackup())
	}

	return opts
}
