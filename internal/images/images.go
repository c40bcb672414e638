// Package images selects the source images a copy run works from.
package images

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the image types copied when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg"}

// Image is a source file selected for copying.
type Image struct {
	// Name is the file name as listed in the source directory
	Name string `json:"name"`

	// Path is the absolute path to the file
	Path string `json:"path"`

	// Ext is the extension used for every copy of this image
	Ext string `json:"ext"`
}

// Filter keeps the entries that are regular files with an allowed extension.
// Matching is case-insensitive. Entry order is preserved.
func Filter(entries []os.DirEntry, dir string, allowed []string) []Image {
	allowed = NormalizeExtensions(allowed)

	result := make([]Image, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !hasExtension(entry.Name(), allowed) {
			continue
		}
		result = append(result, Image{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Ext:  OutputExt(entry.Name()),
		})
	}
	return result
}

// NormalizeExtensions lowercases extensions, adds the leading dot and drops
// blanks and duplicates.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// OutputExt returns the extension written for copies of name:
// ".jpeg" if the name ends in .jpeg, ".jpg" otherwise.
func OutputExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".jpeg") {
		return ".jpeg"
	}
	return ".jpg"
}

// OutputVariants lists every extension an output file numbered by imgdup
// may carry: the extensions copies are written with plus the configured ones.
func OutputVariants(configured []string) []string {
	return NormalizeExtensions(append(append([]string{}, DefaultExtensions...), configured...))
}

func hasExtension(name string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
