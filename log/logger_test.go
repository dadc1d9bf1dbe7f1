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

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLogger(t *testing.T) {
	Errorw("submit failed", "status", 400, "code", "tx_bad_seq")
	Infow("stream connected", "path", "/payments", "cursor", "now")
	Debugw("frame skipped (closed)", "data", "hello")
	OpenDebug()
	assert.True(t, config.Level.Enabled(zap.DebugLevel))
	Debugw("frame skipped (opened)", "data", "hello")
	assert.NoError(t, SetLevel("info"))
	assert.False(t, config.Level.Enabled(zap.DebugLevel))
	Warnw("reconnecting", "cursor", "12884905984")
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	assert.NoError(t, SetLevel("warn"))
	assert.False(t, config.Level.Enabled(zap.InfoLevel))
	assert.True(t, config.Level.Enabled(zap.WarnLevel))

	assert.NoError(t, SetLevel("debug"))
	assert.True(t, config.Level.Enabled(zap.DebugLevel))

	assert.Error(t, SetLevel("loud"))
}
