package storage

import (
	"path"
	"strings"
)

var previewableExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
	"bmp": true, "tif": true, "tiff": true, "avif": true, "svg": true,
}

// Crumb is one step of the breadcrumb trail.
type Crumb struct {
	Name   string
	Prefix string
}

// NormalizePrefix trims the prefix and gives it a trailing slash. Blank stays blank.
func NormalizePrefix(prefix string) string {
	p := strings.TrimSpace(prefix)
	if p == "" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

// FolderName returns the last segment of a folder prefix.
func FolderName(prefix string) string {
	return FileName(strings.TrimSuffix(prefix, "/"))
}

// FileName returns the last segment of an object key.
func FileName(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ParentPrefix returns the prefix one level up, "" at the root.
func ParentPrefix(prefix string) string {
	p := strings.TrimSuffix(NormalizePrefix(prefix), "/")
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i+1]
}

// Breadcrumbs splits a prefix into its cumulative folder prefixes.
func Breadcrumbs(prefix string) []Crumb {
	p := NormalizePrefix(prefix)
	if p == "" {
		return nil
	}

	var crumbs []Crumb
	var acc strings.Builder
	for _, seg := range strings.Split(strings.TrimSuffix(p, "/"), "/") {
		acc.WriteString(seg)
		acc.WriteString("/")
		if seg == "" {
			continue
		}
		crumbs = append(crumbs, Crumb{Name: seg, Prefix: acc.String()})
	}
	return crumbs
}

// IsPreviewableImage reports whether the key has an image extension.
func IsPreviewableImage(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	if len(ext) < 2 {
		return false
	}
	return previewableExtensions[ext[1:]]
}

// SanitizeEntryName turns an object key into a safe archive entry name.
func SanitizeEntryName(key, trimPrefix string) string {
	name := key
	if trimPrefix != "" {
		name = strings.TrimPrefix(name, trimPrefix)
	}
	name = strings.ReplaceAll(name, "..", "")
	return strings.TrimLeft(name, "/")
}
