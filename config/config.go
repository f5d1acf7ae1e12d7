/*
 * Scriptc - The static-to-script lowering compiler
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"

	"github.com/onflow/scriptc/naming"
	"github.com/onflow/scriptc/runtimelib"
)

//go:embed default.yaml
var defaultConfig []byte

// Naming configures the default naming convention
type Naming struct {
	Prefix          string `yaml:"prefix"`
	TemporaryPrefix string `yaml:"temporaryPrefix"`
	ThisAlias       string `yaml:"thisAlias"`
}

// Runtime configures the names of the runtime library functions
type Runtime struct {
	Lift                          string `yaml:"lift"`
	Cast                          string `yaml:"cast"`
	FromNullable                  string `yaml:"fromNullable"`
	CombineDelegates              string `yaml:"combineDelegates"`
	RemoveDelegate                string `yaml:"removeDelegate"`
	Bind                          string `yaml:"bind"`
	Default                       string `yaml:"default"`
	GetTransparentType            string `yaml:"getTransparentType"`
	GetTransparentTypeConstructor string `yaml:"getTransparentTypeConstructor"`
	GetTransparentTypeMember      string `yaml:"getTransparentTypeMember"`
	GetMember                     string `yaml:"getMember"`
	ExpressionFactory             string `yaml:"expressionFactory"`
	ExpressionNodePrefix          string `yaml:"expressionNodePrefix"`
}

type Compiler struct {
	Parallelism int    `yaml:"parallelism"`
	Tracing     bool   `yaml:"tracing"`
	LogLevel    string `yaml:"logLevel"`
}

type Config struct {
	Naming   Naming   `yaml:"naming"`
	Runtime  Runtime  `yaml:"runtime"`
	Compiler Compiler `yaml:"compiler"`
}

// Default returns the built-in configuration
func Default() *Config {
	config, err := parse(defaultConfig, nil)
	if err != nil {
		panic(fmt.Errorf("invalid default configuration: %w", err))
	}
	return config
}

// Parse parses the given YAML document.
// Settings which are not given keep their default value.
func Parse(data []byte) (*Config, error) {
	return parse(data, Default())
}

func parse(data []byte, base *Config) (*Config, error) {
	config := base
	if config == nil {
		config = &Config{}
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Load reads and parses the configuration file at the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return Parse(data)
}

func (c *Config) validate() error {
	if c.Compiler.Parallelism < 1 {
		return InvalidSettingError{
			Setting: "compiler.parallelism",
			Reason:  "must be at least 1",
		}
	}

	if _, err := zerolog.ParseLevel(c.Compiler.LogLevel); err != nil {
		return InvalidSettingError{
			Setting: "compiler.logLevel",
			Reason:  err.Error(),
		}
	}

	if c.Naming.TemporaryPrefix == "" {
		return InvalidSettingError{
			Setting: "naming.temporaryPrefix",
			Reason:  "must not be empty",
		}
	}

	return nil
}

// InvalidSettingError is returned for a setting with an invalid value
type InvalidSettingError struct {
	Setting string
	Reason  string
}

func (e InvalidSettingError) Error() string {
	return fmt.Sprintf("invalid setting %s: %s", e.Setting, e.Reason)
}

func (c *Config) NamingConvention() naming.DefaultConvention {
	return naming.DefaultConvention{
		Prefix:          c.Naming.Prefix,
		TemporaryPrefix: c.Naming.TemporaryPrefix,
		This:            c.Naming.ThisAlias,
	}
}

func (c *Config) RuntimeLibrary() *runtimelib.DefaultRuntimeLibrary {
	runtime := c.Runtime
	return runtimelib.NewDefaultRuntimeLibrary(runtimelib.Names{
		Lift:                          runtime.Lift,
		Cast:                          runtime.Cast,
		FromNullable:                  runtime.FromNullable,
		CombineDelegates:              runtime.CombineDelegates,
		RemoveDelegate:                runtime.RemoveDelegate,
		Bind:                          runtime.Bind,
		Default:                       runtime.Default,
		GetTransparentType:            runtime.GetTransparentType,
		GetTransparentTypeConstructor: runtime.GetTransparentTypeConstructor,
		GetTransparentTypeMember:      runtime.GetTransparentTypeMember,
		GetMember:                     runtime.GetMember,
		ExpressionFactory:             runtime.ExpressionFactory,
		ExpressionNodePrefix:          runtime.ExpressionNodePrefix,
	})
}

// LogLevel returns the configured log level. The level is validated when parsing.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Compiler.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
