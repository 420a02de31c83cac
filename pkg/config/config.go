// Package config resolves pomobar settings from defaults, an optional
// .pomobar config file, POMOBAR_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys, also used as flag names.
const (
	KeySocket        = "socket"
	KeyNotifications = "notifications"
	KeyAppName       = "appname"
	KeyIcon          = "icon"
	KeyTimeout       = "timeout"
	KeyVerbose       = "verbose"
)

const (
	// DefaultSocket is where the daemon listens unless configured otherwise.
	DefaultSocket = "/tmp/pomobar.sock"

	configName = ".pomobar" // .yaml is implicit
	envPrefix  = "POMOBAR"
	// PathEnv names an extra directory searched for the config file.
	PathEnv = "POMOBAR_CONFIG_PATH"
)

// Config is a resolved view over the settings.
type Config struct {
	v *viper.Viper
}

// Load reads configuration. Flags in fs whose names match a key override
// every other source; fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeySocket, DefaultSocket)
	v.SetDefault(KeyNotifications, true)
	v.SetDefault(KeyAppName, "pomobar")
	v.SetDefault(KeyIcon, "pomobar")
	v.SetDefault(KeyTimeout, 2*time.Second)
	v.SetDefault(KeyVerbose, false)

	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	if fs != nil {
		for _, key := range []string{KeySocket, KeyNotifications, KeyTimeout, KeyVerbose} {
			if f := fs.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{v: v}, nil
}

// SocketPath is the daemon socket with a leading ~ expanded.
func (c *Config) SocketPath() string {
	raw := c.v.GetString(KeySocket)
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return raw
	}
	return expanded
}

// Notifications reports whether desktop notifications are wanted.
func (c *Config) Notifications() bool {
	return c.v.GetBool(KeyNotifications)
}

// AppName is the application name attached to notifications.
func (c *Config) AppName() string {
	return c.v.GetString(KeyAppName)
}

// Icon is the icon name attached to notifications.
func (c *Config) Icon() string {
	return c.v.GetString(KeyIcon)
}

// Timeout bounds client requests.
func (c *Config) Timeout() time.Duration {
	return c.v.GetDuration(KeyTimeout)
}

// Verbose enables debug logging.
func (c *Config) Verbose() bool {
	return c.v.GetBool(KeyVerbose)
}

// File is the config file in use, or "" when running on defaults.
func (c *Config) File() string {
	return c.v.ConfigFileUsed()
}

// Settings lists every key with its effective value, in display order.
func (c *Config) Settings() [][2]string {
	return [][2]string{
		{KeySocket, c.SocketPath()},
		{KeyNotifications, fmt.Sprint(c.Notifications())},
		{KeyAppName, c.AppName()},
		{KeyIcon, c.Icon()},
		{KeyTimeout, c.Timeout().String()},
		{KeyVerbose, fmt.Sprint(c.Verbose())},
	}
}

// Watch calls onChange whenever the config file is rewritten. It reports
// false when there is no file to watch.
func (c *Config) Watch(onChange func(*Config)) bool {
	if c.File() == "" {
		return false
	}
	c.v.OnConfigChange(func(fsnotify.Event) {
		onChange(c)
	})
	c.v.WatchConfig()
	return true
}
