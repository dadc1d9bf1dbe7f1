// Copyright 2019 The go-ultiledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package node

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ultiledger/go-kin/crypto"
)

// EnvPrefix prefixes environment overrides of config keys,
// e.g. KIN_HORIZON_URL.
const EnvPrefix = "KIN"

type Config struct {
	// base url of the horizon gateway
	HorizonURL string
	// passphrase the network id is derived from
	NetworkPassphrase string
	// zap level name
	LogLevel string
	// database backend for cursors, boltdb or memdb
	DBBackend string
	// database file path
	DBPath string
	// optional signing seed
	Seed string
}

// BindEnv makes every config key overridable by a KIN_ prefixed
// environment variable.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func NewConfig(v *viper.Viper) (*Config, error) {
	if v.GetString("horizon_url") == "" {
		return nil, errors.New("horizon url is missing")
	}
	if v.GetString("network_passphrase") == "" {
		return nil, errors.New("network passphrase is missing")
	}

	backend := v.GetString("db_backend")
	if backend == "" {
		backend = "memdb"
	}
	if backend != "memdb" && backend != "boltdb" {
		return nil, fmt.Errorf("db backend %q is not supported", backend)
	}
	if backend == "boltdb" && v.GetString("db_path") == "" {
		return nil, errors.New("db path is empty")
	}

	seed := v.GetString("seed")
	if seed != "" {
		if _, err := crypto.DecodeSeed(seed); err != nil {
			return nil, fmt.Errorf("parse seed failed: %v", err)
		}
	}

	level := v.GetString("log_level")
	if level == "" {
		level = "info"
	}

	c := Config{
		HorizonURL:        v.GetString("horizon_url"),
		NetworkPassphrase: v.GetString("network_passphrase"),
		LogLevel:          level,
		DBBackend:         backend,
		DBPath:            v.GetString("db_path"),
		Seed:              seed,
	}

	return &c, nil
}

// ReadConfig loads the config file, when given, under the values
// already bound in v and validates the result.
func ReadConfig(v *viper.Viper, file string) (*Config, error) {
	BindEnv(v)
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s failed: %v", file, err)
		}
	}
	return NewConfig(v)
}
