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
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultiledger/go-kin/crypto"
)

func TestNew(t *testing.T) {
	n, err := New("https://horizon-testnet.kininfrastructure.com/", TestnetPassphrase)
	require.NoError(t, err)
	assert.Equal(t, "https://horizon-testnet.kininfrastructure.com", n.URL)
	assert.Equal(t, crypto.NetworkID(TestnetPassphrase), n.NetworkID)

	_, err = New("https://horizon.example.com", "")
	assert.Error(t, err)
	_, err = New("ftp://horizon.example.com", TestnetPassphrase)
	assert.Error(t, err)
	_, err = New("http://", TestnetPassphrase)
	assert.Error(t, err)
	_, err = New("://bad", TestnetPassphrase)
	assert.Error(t, err)
}

func TestNewConfig(t *testing.T) {
	v := viper.New()
	_, err := NewConfig(v)
	assert.Error(t, err)

	v.Set("horizon_url", "http://localhost:8000")
	_, err = NewConfig(v)
	assert.Error(t, err)

	v.Set("network_passphrase", TestnetPassphrase)
	c, err := NewConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "memdb", c.DBBackend)
	assert.Equal(t, "info", c.LogLevel)

	v.Set("db_backend", "leveldb")
	_, err = NewConfig(v)
	assert.Error(t, err)

	v.Set("db_backend", "boltdb")
	_, err = NewConfig(v)
	assert.Error(t, err)
	v.Set("db_path", "/tmp/kin.db")
	c, err = NewConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kin.db", c.DBPath)

	v.Set("seed", "not a seed")
	_, err = NewConfig(v)
	assert.Error(t, err)

	_, seed, err := crypto.GetAccountKeypair()
	require.NoError(t, err)
	v.Set("seed", seed)
	c, err = NewConfig(v)
	require.NoError(t, err)
	assert.Equal(t, seed, c.Seed)

	n, err := FromConfig(c)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", n.URL)
}

func TestBindEnv(t *testing.T) {
	os.Setenv("KIN_HORIZON_URL", "http://env.example.com")
	defer os.Unsetenv("KIN_HORIZON_URL")

	v := viper.New()
	BindEnv(v)
	v.Set("network_passphrase", TestnetPassphrase)
	c, err := NewConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example.com", c.HorizonURL)
}

func TestReadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "kin.yaml")
	content := "horizon_url: https://horizon.example.com\n" +
		"network_passphrase: " + TestnetPassphrase + "\n" +
		"db_backend: boltdb\n" +
		"db_path: /tmp/kin.db\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	c, err := ReadConfig(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.com", c.HorizonURL)
	assert.Equal(t, "boltdb", c.DBBackend)
	assert.Equal(t, "info", c.LogLevel)

	_, err = ReadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
