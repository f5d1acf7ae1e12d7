/*
 * Scriptc - The static-to-script lowering compiler
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/scriptc/jsast"
	"github.com/onflow/scriptc/naming"
	"github.com/onflow/scriptc/runtimelib"
)

func TestDefault(t *testing.T) {

	t.Parallel()

	config := Default()

	assert.Equal(t, naming.NewDefaultConvention(), config.NamingConvention())
	assert.Equal(t,
		runtimelib.NewDefaultRuntimeLibrary(runtimelib.DefaultNames()),
		config.RuntimeLibrary(),
	)
	assert.Equal(t, 4, config.Compiler.Parallelism)
	assert.False(t, config.Compiler.Tracing)
	assert.Equal(t, zerolog.WarnLevel, config.LogLevel())
}

func TestParse(t *testing.T) {

	t.Parallel()

	t.Run("overlay", func(t *testing.T) {
		t.Parallel()

		config, err := Parse([]byte(`
naming:
  temporaryPrefix: "t"
runtime:
  lift: "ss.lift"
compiler:
  parallelism: 2
`))
		require.NoError(t, err)

		convention := config.NamingConvention()
		assert.Equal(t, "$t1", convention.TemporaryName(1))
		assert.Equal(t, "$this", convention.ThisAlias())
		assert.Equal(t, 2, config.Compiler.Parallelism)

		library := config.RuntimeLibrary()
		assert.Equal(t,
			"ss.lift(x)",
			library.Lift(jsast.NewIdentifier("x")).String(),
		)
		assert.Equal(t,
			"$Bind(f, x)",
			library.Bind(jsast.NewIdentifier("f"), jsast.NewIdentifier("x")).String(),
		)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("naming: [\n"))
		require.Error(t, err)
	})

	t.Run("invalid parallelism", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("compiler:\n  parallelism: 0\n"))
		require.Error(t, err)

		var settingErr InvalidSettingError
		require.ErrorAs(t, err, &settingErr)
		assert.Equal(t, "compiler.parallelism", settingErr.Setting)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("compiler:\n  logLevel: loud\n"))

		var settingErr InvalidSettingError
		require.ErrorAs(t, err, &settingErr)
		assert.Equal(t, "compiler.logLevel", settingErr.Setting)
	})
}

func TestLoad(t *testing.T) {

	t.Parallel()

	path := filepath.Join(t.TempDir(), "scriptc.yaml")
	err := os.WriteFile(path, []byte("compiler:\n  tracing: true\n  logLevel: debug\n"), 0o600)
	require.NoError(t, err)

	config, err := Load(path)
	require.NoError(t, err)
	assert.True(t, config.Compiler.Tracing)
	assert.Equal(t, zerolog.DebugLevel, config.LogLevel())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
