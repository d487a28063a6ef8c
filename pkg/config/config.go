// Copyright © 2024 Bank-Vaults Maintainers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	LogLevelEnv      = "LOG_LEVEL"
	JSONLogEnv       = "JSON_LOG"
	StorageConfigEnv = "SCOPED_STORAGE_CONFIG"
)

// Config defines process level settings read from the environment.
type Config struct {
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	JSONLog           bool   `env:"JSON_LOG"`
	StorageConfigPath string `env:"SCOPED_STORAGE_CONFIG"`
}

func LoadConfig() (*Config, error) {
	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &config, nil
}
