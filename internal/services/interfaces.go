package services

import (
	"context"
	"image"
	"time"

	"github.com/ajramos/bucketui/internal/storage"
)

// StorageService lists and fetches objects of the configured sources
type StorageService interface {
	ListSources() []SourceInfo
	ResolveSource(name string) (SourceInfo, error)
	ListBuckets(ctx context.Context, source string) ([]BucketSummary, error)
	ListObjects(ctx context.Context, req ListRequest) (*Listing, error)
	PreviewURL(ctx context.Context, source, bucket, key string) (string, error)
	DownloadObjects(ctx context.Context, source, bucket string, keys []string) (*DownloadResult, error)
}

// ThumbnailService fetches and decodes preview images
type ThumbnailService interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// SourceInfo describes a configured source
type SourceInfo struct {
	Name          string
	Label         string
	DefaultBucket string
	IsDefault     bool
}

// BucketSummary is one bucket of a source
type BucketSummary struct {
	Name string
}

// ListRequest is the navigation form of one listing. Blank source and bucket mean
// the default source and that source's default bucket.
type ListRequest struct {
	Source     string
	Bucket     string
	Prefix     string
	TokenStack string
}

// Folder is a common prefix under the listed prefix
type Folder struct {
	Name   string
	Prefix string
}

// Object is one object under the listed prefix
type Object struct {
	Key          string
	Name         string
	Size         int64
	LastModified time.Time
	ETag         string
	Previewable  bool
}

// Listing is one page of a prefix
type Listing struct {
	Source        string
	Bucket        string
	Prefix        string
	Folders       []Folder
	Objects       []Object
	HasMore       bool
	CurrentStack  string
	NextStack     string
	PreviousStack string
	ParentPrefix  string
	Breadcrumbs   []storage.Crumb
}

// HasPrevious reports whether an earlier page exists
func (l *Listing) HasPrevious() bool {
	return l.CurrentStack != ""
}

// DownloadResult describes a written archive
type DownloadResult struct {
	Path    string
	Files   int
	Bytes   int64
	Skipped []string
}
