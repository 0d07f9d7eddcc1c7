package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the streams the command reads from and writes to.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process's standard streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// settings are the resolved values for a single command run.
type settings struct {
	Key          string
	Salt         string
	RecordSize   int
	AuthSecret   string
	NoAuthSecret bool
	DH           string
	PrivateKey   string
	Curve        string
	Label        string
	LabelSet     bool
	Parallel     int
	Raw          bool
}

// loadSettings resolves the command's flags in viper's precedence order:
// --params entries, then explicit flags, ECE_* environment variables, the
// config file and finally flag defaults.
func (a *app) loadSettings(cmd *cobra.Command) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix("ECE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if a.configFile != "" {
		v.SetConfigFile(a.configFile)
	} else {
		// No config type here: with one set, viper also accepts a bare
		// "ece" file, which in the build directory is the binary itself.
		v.SetConfigName("ece")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ece")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.configFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		a.log.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config file")
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if params := v.GetString("params"); params != "" {
		if err := mergeParams(v, cmd, params); err != nil {
			return nil, err
		}
	}

	return &settings{
		Key:          v.GetString("key"),
		Salt:         v.GetString("salt"),
		RecordSize:   v.GetInt("rs"),
		AuthSecret:   v.GetString("auth-secret"),
		NoAuthSecret: v.GetBool("no-auth-secret"),
		DH:           v.GetString("dh"),
		PrivateKey:   v.GetString("private-key"),
		Curve:        v.GetString("curve"),
		Label:        v.GetString("label"),
		LabelSet:     v.IsSet("label"),
		Parallel:     v.GetInt("parallel"),
		Raw:          v.GetBool("raw"),
	}, nil
}

// mergeParams applies a JSON object of flag names to values on top of every
// other source.
func mergeParams(v *viper.Viper, cmd *cobra.Command, params string) error {
	var extra map[string]any
	if err := json.Unmarshal([]byte(params), &extra); err != nil {
		return fmt.Errorf("parse --params: %w", err)
	}
	for name, value := range extra {
		if name == "params" || cmd.Flags().Lookup(name) == nil {
			return fmt.Errorf("parse --params: unknown parameter %q", name)
		}
		v.Set(name, value)
	}
	return nil
}
