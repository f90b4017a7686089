package hierarchy

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Version is the YAML index schema version written by this package
const Version = "v1.0.0"

type document struct {
	Version string   `yaml:"version"`
	Entries []*Entry `yaml:"entries"`
}

// Load reads index from URL; .yaml and .yml files use the YAML schema, others the text format
func Load(ctx context.Context, fs afs.Service, URL string) (*Index, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file %s: %w", URL, err)
	}
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	}
	return ParseText(data)
}

// ParseText parses the line oriented format:
//
//	ClassName [: Base1, Base2] ; header.h [; module [; flag ...]]
//
// Blank lines, '#' comments and typedef lines ("Name = type ; ...") are skipped.
func ParseText(data []byte) (*Index, error) {
	index := New()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		declaration := strings.TrimSpace(fields[0])
		if strings.Contains(declaration, "=") {
			continue
		}
		entry := &Entry{}
		name, bases, hasBases := cutBases(declaration)
		entry.Name = strings.TrimSpace(name)
		if entry.Name == "" {
			return nil, fmt.Errorf("invalid hierarchy entry at line %d: %q", lineNumber, line)
		}
		if hasBases {
			entry.Bases = splitBases(bases)
		}
		if len(fields) > 1 {
			entry.Header = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			entry.Module = strings.TrimSpace(fields[2])
		}
		for _, flag := range fields[min(len(fields), 3):] {
			if flag = strings.TrimSpace(flag); flag != "" {
				entry.Flags = append(entry.Flags, flag)
			}
		}
		index.Add(entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hierarchy: %w", err)
	}
	return index, nil
}

// cutBases splits declaration at the first single colon, leaving "::" scopes intact
func cutBases(declaration string) (string, string, bool) {
	for i := 0; i < len(declaration); i++ {
		if declaration[i] != ':' {
			continue
		}
		if i+1 < len(declaration) && declaration[i+1] == ':' {
			i++
			continue
		}
		return declaration[:i], declaration[i+1:], true
	}
	return declaration, "", false
}

// splitBases splits comma separated base names, keeping template argument lists intact
func splitBases(text string) []string {
	var result []string
	depth := 0
	start := 0
	for i, r := range text {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				if base := strings.TrimSpace(text[start:i]); base != "" {
					result = append(result, base)
				}
				start = i + 1
			}
		}
	}
	if base := strings.TrimSpace(text[start:]); base != "" {
		result = append(result, base)
	}
	return result
}

// ParseYAML parses the YAML schema, rejecting unsupported major versions
func ParseYAML(data []byte) (*Index, error) {
	doc := &document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode hierarchy: %w", err)
	}
	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("invalid hierarchy version %q", doc.Version)
	}
	if semver.Major(doc.Version) != semver.Major(Version) {
		return nil, fmt.Errorf("unsupported hierarchy version %s, expected %s.x", doc.Version, semver.Major(Version))
	}
	index := New()
	for i, entry := range doc.Entries {
		if entry == nil || entry.Name == "" {
			return nil, fmt.Errorf("invalid hierarchy entry #%d: missing name", i)
		}
		index.Add(entry)
	}
	return index, nil
}

// WriteText writes index in the line oriented format
func (i *Index) WriteText(writer io.Writer) error {
	for _, entry := range i.entries {
		line := entry.Name
		if len(entry.Bases) > 0 {
			line += " : " + strings.Join(entry.Bases, ", ")
		}
		line += " ; " + entry.Header
		if entry.Module != "" || len(entry.Flags) > 0 {
			line += " ; " + entry.Module
		}
		for _, flag := range entry.Flags {
			line += " ; " + flag
		}
		if _, err := io.WriteString(writer, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// MarshalYAML encodes index with the YAML schema
func (i *Index) MarshalYAML() (interface{}, error) {
	return &document{Version: Version, Entries: i.entries}, nil
}
