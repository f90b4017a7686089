// Package hints reads array size hints for methods returning pointers.
//
// Each line holds "ClassName MethodName HexTypeCode Size". Type codes follow
// graph.TypeCode, except that codes 0x300..0x3ff use the legacy layout of stock
// VTK hint files, where 0x3XX is a pointer to base type XX (0x307 is double*).
package hints

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/afs"

	"github.com/viant/wrapmerge/inspector/graph"
)

// Hint declares the size of the array returned by a method
type Hint struct {
	Class  string
	Method string
	Code   graph.TypeCode
	Size   int
}

// Overlay applies a hints file to loaded declarations.
// The source is re-read from the start for every file.
type Overlay struct {
	fs  afs.Service
	URL string
}

// Open creates overlay for hints URL, failing when the source does not exist
func Open(ctx context.Context, fs afs.Service, URL string) (*Overlay, error) {
	if fs == nil {
		fs = afs.New()
	}
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open hint file %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("error opening hint file %s: not found", URL)
	}
	return &Overlay{fs: fs, URL: URL}, nil
}

// Apply reads the hints source and annotates matching methods of file
func (o *Overlay) Apply(ctx context.Context, file *graph.File) error {
	data, err := o.fs.DownloadWithURL(ctx, o.URL)
	if err != nil {
		return fmt.Errorf("failed to read hint file %s: %w", o.URL, err)
	}
	hints, err := Parse(data)
	if err != nil {
		return fmt.Errorf("invalid hint file %s: %w", o.URL, err)
	}
	ApplyHints(file, hints)
	return nil
}

// Parse parses lines of "ClassName MethodName HexTypeCode Size"; blank lines and '#' comments are skipped
func Parse(data []byte) ([]*Hint, error) {
	var result []*Hint
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("line %d: expected 4 fields, got %d", lineNumber, len(fields))
		}
		code, err := graph.ParseTypeCode(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		code = fromLegacy(code)
		size, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid size %q", lineNumber, fields[3])
		}
		result = append(result, &Hint{Class: fields[0], Method: fields[1], Code: code, Size: size})
	}
	return result, scanner.Err()
}

// fromLegacy maps a legacy pointer code 0x3XX to XX with one pointer level
func fromLegacy(code graph.TypeCode) graph.TypeCode {
	if code&^graph.BaseMask != legacyPointer {
		return code
	}
	return code.Base().WithPointer()
}

const legacyPointer graph.TypeCode = 0x300

// ApplyHints sets hint payload on methods whose class, name and return type match; it returns number of methods updated
func ApplyHints(file *graph.File, hints []*Hint) int {
	count := 0
	for _, hint := range hints {
		aType := file.LookupType(hint.Class)
		if aType == nil {
			continue
		}
		for _, method := range aType.LookupMethods(hint.Method) {
			if method.Result == nil || method.Result.Type == nil {
				continue
			}
			if method.Result.Type.Code.Unqualified() != hint.Code.Unqualified() {
				continue
			}
			method.HaveHint = true
			method.HintSize = hint.Size
			count++
		}
	}
	return count
}
