package repository

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// ModuleMarker is the file declaring a VTK module in its directory
const ModuleMarker = "vtk.module"

// Module represents a source module owning a header
type Module struct {
	Name string // Library name, e.g. vtkCommonCore
	Root string // Directory holding the module marker
}

// Detector identifies modules owning headers
type Detector struct {
	fs     afs.Service
	marker string
}

// NewDetector creates a module detector
func NewDetector(fs afs.Service) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	return &Detector{fs: fs, marker: ModuleMarker}
}

// DetectModule searches up from the header directory for the module marker; it returns nil when none is found
func (d *Detector) DetectModule(ctx context.Context, headerURL string) (*Module, error) {
	dir := parent(headerURL)
	for dir != "" {
		markerURL := url.Join(dir, d.marker)
		exists, err := d.fs.Exists(ctx, markerURL)
		if err != nil {
			return nil, err
		}
		if exists {
			data, err := d.fs.DownloadWithURL(ctx, markerURL)
			if err != nil {
				return nil, err
			}
			name := moduleName(data)
			if name == "" {
				name = lastSegment(dir)
			}
			return &Module{Name: name, Root: dir}, nil
		}
		dir = parent(dir)
	}
	return nil, nil
}

// IncludeDirs returns directories under root that directly contain headers, in listing order
func (d *Detector) IncludeDirs(ctx context.Context, root string, suffixes []string) ([]string, error) {
	var result []string
	has, err := HasFileWithSuffixes(ctx, d.fs, root, suffixes, nil)
	if err != nil {
		return nil, err
	}
	if has {
		result = append(result, root)
	}
	objects, err := d.fs.List(ctx, root)
	if err != nil {
		return nil, err
	}
	for _, object := range objects {
		if !object.IsDir() || sameLocation(object.URL(), root) {
			continue
		}
		dirs, err := d.IncludeDirs(ctx, object.URL(), suffixes)
		if err != nil {
			return nil, err
		}
		result = append(result, dirs...)
	}
	return result, nil
}

// moduleName extracts LIBRARY_NAME, falling back to NAME with the "VTK::" namespace turned into the "vtk" prefix
func moduleName(data []byte) string {
	values := map[string]string{}
	key := ""
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			key = text
			continue
		}
		if _, ok := values[key]; !ok && key != "" {
			values[key] = text
		}
	}
	if name := values["LIBRARY_NAME"]; name != "" {
		return name
	}
	if name := values["NAME"]; name != "" {
		return "vtk" + strings.TrimPrefix(name, "VTK::")
	}
	return ""
}

// parent returns parent directory URL, or empty at the root
func parent(location string) string {
	location = strings.TrimRight(location, "/")
	if url.Path(location) == "" || url.Path(location) == "/" {
		return ""
	}
	index := strings.LastIndex(location, "/")
	if index <= 0 || strings.HasSuffix(location[:index], ":/") {
		return ""
	}
	return location[:index]
}

func lastSegment(location string) string {
	location = strings.TrimRight(location, "/")
	return location[strings.LastIndex(location, "/")+1:]
}
