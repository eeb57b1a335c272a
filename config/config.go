//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoScrub.
//
// GoScrub is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoScrub is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoScrub. If not, see https://www.gnu.org/licenses/.

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Package config loads the pipeline's runtime configuration from the
// environment, with an optional .env file. Configuration is read once at
// startup; a missing or malformed value is a startup error, never a
// per-row one.

// Config represents the application configuration.
type Config struct {
	// Destination
	DestinationTable string // Required: destination table (or file stem)
	PostgresDSN      string // Optional: when empty, the CSV sink is used

	// Input
	InputCSVPath string // Optional: when empty, the in-memory sample is used

	// Cleaning
	PlaceholderDate string // Date filled into null transaction dates

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from a .env file (when present) and the
// environment, then validates it.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		DestinationTable: getEnv("DESTINATION_TABLE", ""),
		PostgresDSN:      getEnv("POSTGRES_DSN", ""),
		InputCSVPath:     getEnv("INPUT_CSV", ""),
		PlaceholderDate:  getEnv("PLACEHOLDER_DATE", "2024-01-01"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all required configuration is present and well formed.
func (c *Config) Validate() error {
	if c.DestinationTable == "" {
		return errors.New("DESTINATION_TABLE is required")
	}
	if _, err := time.Parse("2006-01-02", c.PlaceholderDate); err != nil {
		return fmt.Errorf("PLACEHOLDER_DATE %q is not a valid date: %w", c.PlaceholderDate, err)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT %q must be json or console", c.LogFormat)
	}
	return nil
}

// getEnv returns the environment value for key, or defaultValue when unset
// or empty.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
