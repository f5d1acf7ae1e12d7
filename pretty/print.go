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

package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/rivo/uniseg"

	"github.com/onflow/scriptc/ast"
	"github.com/onflow/scriptc/common"
	"github.com/onflow/scriptc/errors"
)

func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeWarning(message string) string {
	return aurora.Colorize(message, aurora.YellowFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeNote(message string) string {
	return aurora.Colorize(message, aurora.CyanFg|aurora.BoldFm).String()
}

func colorizeMeta(message string) string {
	return aurora.Colorize(message, aurora.BlueFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeMessage(message string) string {
	return aurora.Colorize(message, aurora.BoldFm).String()
}

type ErrorPrettyPrinter struct {
	writer   io.Writer
	useColor bool
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:   writer,
		useColor: useColor,
	}
}

// PrettyPrintError prints an error with the given severity.
// If the error has a position and the code of its location is given,
// the excerpt of the code is printed with the range of the error underlined.
func (p ErrorPrettyPrinter) PrettyPrintError(
	severity common.Severity,
	err error,
	location common.Location,
	codes map[common.Location][]byte,
) error {
	var b strings.Builder

	p.writeHeader(&b, severity, err)

	if positioned, ok := err.(ast.HasPosition); ok {
		var code []byte
		if codes != nil && location != nil {
			code = codes[location]
		}
		p.writeCodeExcerpt(&b, err, positioned, location, code)
	} else if location != nil {
		p.writeLocation(&b, location, nil)
	}

	if notes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range notes.ErrorNotes() {
			p.writeNote(&b, note.Message())
		}
	}

	_, writeErr := io.WriteString(p.writer, b.String())
	return writeErr
}

func (p ErrorPrettyPrinter) colorize(colorizer func(string) string, text string) string {
	if !p.useColor {
		return text
	}
	return colorizer(text)
}

func (p ErrorPrettyPrinter) writeHeader(b *strings.Builder, severity common.Severity, err error) {
	prefix := "error"
	colorizer := colorizeError
	if severity == common.SeverityWarning {
		prefix = "warning"
		colorizer = colorizeWarning
	} else if severity == common.SeverityInfo {
		prefix = "info"
		colorizer = colorizeNote
	}

	b.WriteString(p.colorize(colorizer, prefix))
	b.WriteString(p.colorize(colorizeMessage, ": "+err.Error()))
	b.WriteString("\n")
}

func (p ErrorPrettyPrinter) writeLocation(b *strings.Builder, location common.Location, position *ast.Position) {
	b.WriteString(p.colorize(colorizeMeta, " --> "))
	b.WriteString(location.String())
	if position != nil {
		fmt.Fprintf(b, ":%d:%d", position.Line, position.Column)
	}
	b.WriteString("\n")
}

func (p ErrorPrettyPrinter) writeNote(b *strings.Builder, message string) {
	b.WriteString(p.colorize(colorizeMeta, "  = "))
	b.WriteString(p.colorize(colorizeNote, "note"))
	b.WriteString(": ")
	b.WriteString(message)
	b.WriteString("\n")
}

func (p ErrorPrettyPrinter) writeCodeExcerpt(
	b *strings.Builder,
	err error,
	positioned ast.HasPosition,
	location common.Location,
	code []byte,
) {
	startPosition := positioned.StartPosition()
	endPosition := positioned.EndPosition()

	if location != nil {
		p.writeLocation(b, location, &startPosition)
	}

	if code == nil {
		return
	}

	lines := strings.Split(string(code), "\n")
	lineIndex := startPosition.Line - 1
	if lineIndex < 0 || lineIndex >= len(lines) {
		return
	}

	line := lines[lineIndex]
	if startPosition.Column > len(line) {
		return
	}

	lineNumber := strconv.Itoa(startPosition.Line)
	gutter := strings.Repeat(" ", len(lineNumber)+1)
	separator := p.colorize(colorizeMeta, "|")

	b.WriteString(gutter)
	b.WriteString(separator)
	b.WriteString("\n")

	b.WriteString(p.colorize(colorizeMeta, lineNumber+" "))
	b.WriteString(separator)
	b.WriteString(" ")
	b.WriteString(line)
	b.WriteString("\n")

	// indent the marker like the code, keeping tabs,
	// so the marker is aligned regardless of the tab width

	var indentation strings.Builder
	graphemes := uniseg.NewGraphemes(line[:startPosition.Column])
	for graphemes.Next() {
		cluster := graphemes.Str()
		if cluster == "\t" {
			indentation.WriteString("\t")
		} else {
			indentation.WriteString(strings.Repeat(" ", uniseg.StringWidth(cluster)))
		}
	}

	markerLength := 1
	if endPosition.Line == startPosition.Line &&
		endPosition.Column >= startPosition.Column {

		end := endPosition.Column + 1
		if end > len(line) {
			end = len(line)
		}
		if width := uniseg.StringWidth(line[startPosition.Column:end]); width > 0 {
			markerLength = width
		}
	}

	b.WriteString(gutter)
	b.WriteString(separator)
	b.WriteString(" ")
	b.WriteString(indentation.String())
	b.WriteString(p.colorize(colorizeError, strings.Repeat("^", markerLength)))

	if secondaryError, ok := err.(errors.SecondaryError); ok {
		b.WriteString(" ")
		b.WriteString(p.colorize(colorizeError, secondaryError.SecondaryError()))
	}

	b.WriteString("\n")
}
