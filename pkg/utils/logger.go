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

package utils

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bank-vaults/scoped-storage/pkg/config"
)

// InitLogger configures the standard logrus logger and returns an entry
// tagged with the app name.
func InitLogger(cfg *config.Config) *logrus.Entry {
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil { // Silently fall back to info level
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.JSONLog {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger.WithField("app", "scoped-storage")
}
