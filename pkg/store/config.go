package store

import (
	"errors"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultPath    = "~/.tabler"
	DefaultTimeout = 60 * time.Second
)

// Config is the resolved tabler configuration.
type Config interface {
	BasePath() string
	BaseURL() string
	Timeout() time.Duration
	DownloadDir() string
	Debug() bool
	// File is the config file that was read, if any.
	File() string
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"base-url": "base_url",
	"timeout":  "timeout",
	"state":    "path",
	"debug":    "debug",
}

// LoadConfig reads .tabler.yaml from TABLER_CONFIG_PATH or the working
// directory, then TABLER_* environment variables, then any flags given.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("path", DefaultPath)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("download_dir", ".")
	v.SetDefault("debug", false)
	v.SetConfigName(".tabler") // .yaml is implicit
	v.SetEnvPrefix("TABLER")
	v.AutomaticEnv()

	if override := os.Getenv("TABLER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:     path,
		URL:      v.GetString("base_url"),
		Wait:     v.GetDuration("timeout"),
		Download: v.GetString("download_dir"),
		Verbose:  v.GetBool("debug"),
		Source:   v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	URL      string        `json:"base_url"`
	Wait     time.Duration `json:"timeout"`
	Download string        `json:"download_dir"`
	Verbose  bool          `json:"debug"`
	Source   string        `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) BaseURL() string        { return f.URL }
func (f *fileConfig) Timeout() time.Duration { return f.Wait }
func (f *fileConfig) DownloadDir() string    { return f.Download }
func (f *fileConfig) Debug() bool            { return f.Verbose }
func (f *fileConfig) File() string           { return f.Source }
