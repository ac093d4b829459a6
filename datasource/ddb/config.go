/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/suparena/memstore/errors"
)

// EnvPrefix prefixes the environment variables read by LoadConfig,
// e.g. MEMSTORE_DDB_TABLE.
const EnvPrefix = "MEMSTORE_DDB"

// DefaultKeyAttribute is the partition key attribute used when none is configured.
const DefaultKeyAttribute = "ID"

// Config describes the DynamoDB table a Source reads from.
type Config struct {
	Region       string `yaml:"region" envconfig:"REGION"`
	Table        string `yaml:"table" envconfig:"TABLE"`
	KeyAttribute string `yaml:"keyAttribute" envconfig:"KEY_ATTRIBUTE"`
	// AccessKey and SecretKey select static credentials. When empty the AWS
	// default credential chain is used.
	AccessKey string `yaml:"accessKey" envconfig:"ACCESS_KEY"`
	SecretKey string `yaml:"secretKey" envconfig:"SECRET_KEY"`
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint" envconfig:"ENDPOINT"`
}

// Validate checks that the config names a table.
func (c Config) Validate() error {
	if c.Table == "" {
		return errors.NewValidationError("table", "table name is required")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.NewValidationError("accessKey", "access key and secret key must be set together")
	}
	return nil
}

// LoadConfig builds a Config from, in increasing precedence: the YAML file at
// path (skipped when path is empty), a .env file in the working directory
// (skipped when absent) and MEMSTORE_DDB_* environment variables.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.KeyAttribute == "" {
		cfg.KeyAttribute = DefaultKeyAttribute
	}

	return cfg, cfg.Validate()
}
