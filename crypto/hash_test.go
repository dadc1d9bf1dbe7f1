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

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var key string = "hello world!"

func TestSHA256Hash(t *testing.T) {
	digest := SHA256Hash([]byte(key))
	assert.Equal(t, 64, len(digest))
	assert.Equal(t, "7509e5bda0c762d2bac7f90d758b5b2263fa01ccbc542ab5e3df163be08e6ca9", digest)
}

func TestNetworkID(t *testing.T) {
	id := NetworkID("Test SDF Network ; September 2015")
	assert.Equal(t, SHA256HashBytes([]byte("Test SDF Network ; September 2015")), id)
	assert.NotEqual(t, id, NetworkID("Public Global Stellar Network ; September 2015"))
}
