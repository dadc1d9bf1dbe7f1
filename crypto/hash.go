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
	"crypto/sha256"
	"encoding/hex"
)

// compute sha256 checksum (32 bytes) in hex
func SHA256Hash(b []byte) string {
	v := sha256.Sum256(b)
	return hex.EncodeToString(v[:])
}

// compute sha256 checksum (32 bytes)
func SHA256HashBytes(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// NetworkID derives the signing domain of a network from its passphrase.
func NetworkID(passphrase string) [32]byte {
	return SHA256HashBytes([]byte(passphrase))
}
