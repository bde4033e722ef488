// Package config threads filesystem and environment lookups into the
// generation pipeline as explicit inputs, keeping each phase a pure
// function of (metadata files, declaration, settings).
package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/winterop/winrtgen/errors"
)

// Settings is the resolved configuration for one generation run.
type Settings struct {
	// PackageRoot holds installed package directories, one per version.
	PackageRoot string `mapstructure:"package_root"`
	// OSMetadataRoot holds the platform winmd files.
	OSMetadataRoot string `mapstructure:"os_metadata_root"`
	// OutputDir is where the generated unit is written. Supplied by the
	// build host, conventionally via WINRTGEN_OUTPUT_DIR.
	OutputDir string `mapstructure:"output_dir"`
	// OutputFile is the generated unit's file name inside OutputDir.
	OutputFile string `mapstructure:"output_file"`
	// Formatter is the external formatter command line; empty disables it.
	Formatter string `mapstructure:"formatter"`
	// FormatterMode is "pipe" or "in-place".
	FormatterMode string `mapstructure:"formatter_mode"`
	// IncludeFoundation force-includes the foundation namespaces wholesale.
	IncludeFoundation bool `mapstructure:"include_foundation"`
}

// SetDefaults registers default values on a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("package_root", "nuget")
	v.SetDefault("os_metadata_root", defaultOSMetadataRoot())
	v.SetDefault("output_file", "winrt.rs")
	v.SetDefault("formatter", "rustfmt")
	v.SetDefault("formatter_mode", "pipe")
	v.SetDefault("include_foundation", false)
}

// defaultOSMetadataRoot points at the platform metadata shipped with
// Windows; elsewhere there is no sensible default and the caller must
// configure it.
func defaultOSMetadataRoot() string {
	if runtime.GOOS != "windows" {
		return ""
	}
	winDir := os.Getenv("WINDIR")
	if winDir == "" {
		winDir = `C:\Windows`
	}
	return winDir + `\System32\WinMetadata`
}

// Load reads settings from an optional config file, the environment
// (WINRTGEN_ prefix) and defaults, in ascending precedence of
// defaults < file < environment.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("WINRTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	} else {
		v.SetConfigName("winrtgen")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		// Missing config file is fine; env vars and defaults carry the run
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "failed to read winrtgen.toml")
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}
	return &settings, nil
}

// Validate checks the settings an actual generation run requires.
func (s *Settings) Validate() error {
	if s.OutputDir == "" {
		return errors.WithHint(errors.ErrOutputDirUnset,
			"set WINRTGEN_OUTPUT_DIR or pass --output")
	}
	return nil
}
