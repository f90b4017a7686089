package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// HasFileWithSuffixes checks if a directory directly contains a file with one of the inclusion suffixes
func HasFileWithSuffixes(ctx context.Context, fs afs.Service, dirURL string, inclusionSuffix, exclusionSuffix []string) (bool, error) {
	objects, err := fs.List(ctx, dirURL)
	if err != nil {
		return false, err
	}
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if matchSuffix(object.Name(), inclusionSuffix, exclusionSuffix) {
			return true, nil
		}
	}
	return false, nil
}

// ListFilesRecursively returns URLs of files matching suffixes under dirURL, in listing order
func ListFilesRecursively(ctx context.Context, fs afs.Service, dirURL string, inclusionSuffix, exclusionSuffix []string) ([]string, error) {
	objects, err := fs.List(ctx, dirURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirURL, err)
	}
	var result []string
	var subFolders []string
	for _, object := range objects {
		if object.IsDir() {
			if sameLocation(object.URL(), dirURL) {
				continue
			}
			subFolders = append(subFolders, object.URL())
			continue
		}
		if matchSuffix(object.Name(), inclusionSuffix, exclusionSuffix) {
			result = append(result, object.URL())
		}
	}
	for _, subFolder := range subFolders {
		files, err := ListFilesRecursively(ctx, fs, subFolder, inclusionSuffix, exclusionSuffix)
		if err != nil {
			return nil, fmt.Errorf("failed to read subfolder %s: %w", subFolder, err)
		}
		result = append(result, files...)
	}
	return result, nil
}

func matchSuffix(name string, inclusionSuffix, exclusionSuffix []string) bool {
	for _, exclusion := range exclusionSuffix {
		if strings.HasSuffix(name, exclusion) {
			return false
		}
	}
	for _, suffix := range inclusionSuffix {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func sameLocation(a, b string) bool {
	return url.Path(strings.TrimRight(a, "/")) == url.Path(strings.TrimRight(b, "/"))
}
