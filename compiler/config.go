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

package compiler

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/config"
	"github.com/onflow/scriptc/naming"
	"github.com/onflow/scriptc/pretty"
	"github.com/onflow/scriptc/runtimelib"
	"github.com/onflow/scriptc/semantics"
)

type OnRecordTraceFunc func(
	operationName string,
	duration time.Duration,
	attrs []attribute.KeyValue,
)

type Config struct {
	Resolver       *semantics.Resolver
	Naming         naming.Convention
	RuntimeLibrary runtimelib.RuntimeLibrary
	// ErrorReporter receives the errors of units which cannot be lowered, if set
	ErrorReporter ErrorReporter
	Logger        zerolog.Logger
	// OnRecordTrace is called after a unit is lowered, if TracingEnabled is set
	OnRecordTrace  OnRecordTraceFunc
	TracingEnabled bool
}

// NewConfig returns a configuration with the naming convention and runtime library
// built from the given settings.
func NewConfig(
	settings *config.Config,
	importer semantics.MetadataImporter,
	errorReporter ErrorReporter,
	logger zerolog.Logger,
) *Config {
	return &Config{
		Resolver:       semantics.NewResolver(importer),
		Naming:         settings.NamingConvention(),
		RuntimeLibrary: settings.RuntimeLibrary(),
		ErrorReporter:  errorReporter,
		Logger:         logger.Level(settings.LogLevel()),
		TracingEnabled: settings.Compiler.Tracing,
	}
}

// Diagnostic is an error of a unit which cannot be lowered
type Diagnostic struct {
	Severity common.Severity
	Location common.Location
	Message  string
	Err      error
}

// ErrorReporter receives diagnostics.
// It may be called concurrently when units are lowered in parallel.
type ErrorReporter interface {
	Report(diagnostic Diagnostic)
}

// WriterErrorReporter pretty prints diagnostics,
// including an excerpt of the code of the location, if available.
type WriterErrorReporter struct {
	mutex   sync.Mutex
	printer pretty.ErrorPrettyPrinter
	codes   map[common.Location][]byte
	logger  zerolog.Logger
}

var _ ErrorReporter = &WriterErrorReporter{}

func NewWriterErrorReporter(
	writer io.Writer,
	useColor bool,
	codes map[common.Location][]byte,
	logger zerolog.Logger,
) *WriterErrorReporter {
	return &WriterErrorReporter{
		printer: pretty.NewErrorPrettyPrinter(writer, useColor),
		codes:   codes,
		logger:  logger,
	}
}

func (r *WriterErrorReporter) Report(diagnostic Diagnostic) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	err := r.printer.PrettyPrintError(
		diagnostic.Severity,
		diagnostic.Err,
		diagnostic.Location,
		r.codes,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("message", diagnostic.Message).
			Msg("failed to print diagnostic")
	}
}

// CollectingErrorReporter keeps all reported diagnostics
type CollectingErrorReporter struct {
	mutex       sync.Mutex
	Diagnostics []Diagnostic
}

var _ ErrorReporter = &CollectingErrorReporter{}

func (r *CollectingErrorReporter) Report(diagnostic Diagnostic) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.Diagnostics = append(r.Diagnostics, diagnostic)
}
