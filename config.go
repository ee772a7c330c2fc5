// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package permbox

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls checker behavior.
type Config struct {
	// Policy for a data constructor declared by more than one type:
	// "reject" refuses the second declaration, "shadow" lets it replace the
	// earlier one.
	DuplicateDatacons string `yaml:"duplicate-datacons"`
	// Trace enables logging of permission operations on the checker's logger.
	Trace bool `yaml:"trace"`
}

func DefaultConfig() Config {
	return Config{DuplicateDatacons: "reject"}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DuplicateDatacons == "" {
		cfg.DuplicateDatacons = "reject"
	}
	if cfg.DuplicateDatacons != "reject" && cfg.DuplicateDatacons != "shadow" {
		return cfg, fmt.Errorf("config: invalid duplicate-datacons policy %q", cfg.DuplicateDatacons)
	}
	return cfg, nil
}
