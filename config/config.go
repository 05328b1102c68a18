// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the client configuration from the environment and an
// optional config.toml file.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmpapi/fmp"
)

// Environment variables.
const (
	EnvAPIKey  = "FMP_API_KEY"
	EnvBaseURL = "FMP_BASE_URL"
)

// FileName of the optional configuration file in the config directory.
const FileName = "config.toml"

// Config of the FMP client. Environment variables take precedence over the
// config file.
type Config struct {
	APIKey    string `mapstructure:"key"`        // FMP_API_KEY
	BaseURL   string `mapstructure:"base_url"`   // FMP_BASE_URL
	UserAgent string `mapstructure:"user_agent"` // file only
}

// Load reads the configuration. The config file at dir/config.toml is
// optional, and dir may be empty to skip it. A missing API key is not an
// error: requests are then sent with an empty key.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("key", "")
	v.SetDefault("base_url", fmp.DefaultBaseURL)
	v.SetDefault("user_agent", fmp.DefaultUserAgent)
	if err := v.BindEnv("key", EnvAPIKey); err != nil {
		return nil, errors.Annotate(err, "failed to bind %s", EnvAPIKey)
	}
	if err := v.BindEnv("base_url", EnvBaseURL); err != nil {
		return nil, errors.Annotate(err, "failed to bind %s", EnvBaseURL)
	}

	if dir != "" {
		path := filepath.Join(dir, FileName)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Annotate(err, "failed to read config file %s", path)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, errors.Annotate(err,
				"cannot check config file for existence: '%s'", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Annotate(err, "failed to unmarshal config")
	}
	return &c, nil
}

// Client creates an FMP client from the configuration.
func (c *Config) Client() *fmp.Client {
	return fmp.NewClient(fmp.Config{
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
	})
}
