package tui

import (
	"context"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/ajramos/bucketui/internal/browser"
	"github.com/ajramos/bucketui/internal/config"
	"github.com/ajramos/bucketui/internal/services"
	"github.com/ajramos/bucketui/internal/storage"
)

const (
	testWait = 2 * time.Second
	testTick = 10 * time.Millisecond
)

// fakeStorage serves canned listings and records every call
type fakeStorage struct {
	mu        sync.Mutex
	sources   []services.SourceInfo
	objects   map[string][]services.Object // by bucket/prefix
	folders   map[string][]services.Folder
	nextStack map[string]string
	listErr   error
	requests  []services.ListRequest
	downloads [][]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		sources: []services.SourceInfo{
			{Name: "aws", Label: "AWS", DefaultBucket: "bucket-a", IsDefault: true},
			{Name: "minio", Label: "MinIO", DefaultBucket: "bucket-m"},
		},
		objects: map[string][]services.Object{
			"bucket-a/": {
				{Key: "a.txt", Name: "a.txt", Size: 10, LastModified: time.Now()},
				{Key: "b.png", Name: "b.png", Size: 20, LastModified: time.Now(), Previewable: true},
			},
			"bucket-a/photos/": {
				{Key: "photos/c.jpg", Name: "c.jpg", Size: 30, LastModified: time.Now(), Previewable: true},
			},
		},
		folders: map[string][]services.Folder{
			"bucket-a/": {{Name: "photos", Prefix: "photos/"}},
		},
		nextStack: map[string]string{},
	}
}

func (f *fakeStorage) setListErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeStorage) lastRequest() services.ListRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return services.ListRequest{}
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeStorage) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeStorage) downloadCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.downloads...)
}

func (f *fakeStorage) ListSources() []services.SourceInfo {
	return f.sources
}

func (f *fakeStorage) ResolveSource(name string) (services.SourceInfo, error) {
	for _, s := range f.sources {
		if s.Name == name || (name == "" && s.IsDefault) {
			return s, nil
		}
	}
	return services.SourceInfo{}, services.ErrSourceNotFound
}

func (f *fakeStorage) ListBuckets(ctx context.Context, source string) ([]services.BucketSummary, error) {
	if source == "aws" {
		return []services.BucketSummary{{Name: "bucket-a"}, {Name: "bucket-b"}}, nil
	}
	return nil, services.ErrAccessDenied
}

func (f *fakeStorage) ListObjects(ctx context.Context, req services.ListRequest) (*services.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.listErr != nil {
		return nil, f.listErr
	}

	src, err := f.ResolveSource(req.Source)
	if err != nil {
		return nil, err
	}
	bucket := req.Bucket
	if bucket == "" {
		bucket = src.DefaultBucket
	}
	prefix := storage.NormalizePrefix(req.Prefix)
	key := bucket + "/" + prefix

	listing := &services.Listing{
		Source:       src.Name,
		Bucket:       bucket,
		Prefix:       prefix,
		Folders:      f.folders[key],
		Objects:      append([]services.Object(nil), f.objects[key]...),
		CurrentStack: req.TokenStack,
		ParentPrefix: storage.ParentPrefix(prefix),
		Breadcrumbs:  storage.Breadcrumbs(prefix),
	}
	if next, ok := f.nextStack[key]; ok {
		listing.HasMore = true
		listing.NextStack = storage.AppendToken(req.TokenStack, next)
	}
	if req.TokenStack != "" {
		listing.PreviousStack = storage.DropLastToken(req.TokenStack)
	}
	return listing, nil
}

func (f *fakeStorage) PreviewURL(ctx context.Context, source, bucket, key string) (string, error) {
	return "https://preview.test/" + bucket + "/" + key, nil
}

func (f *fakeStorage) DownloadObjects(ctx context.Context, source, bucket string, keys []string) (*services.DownloadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, keys)
	if len(keys) == 0 {
		return nil, services.ErrNoSelection
	}
	return &services.DownloadResult{Path: "/tmp/download.zip", Files: len(keys), Bytes: 42}, nil
}

// fakeThumbnails returns a solid red image and counts fetches
type fakeThumbnails struct {
	fetches atomic.Int32
	err     error
}

func (f *fakeThumbnails) Fetch(ctx context.Context, url string) (image.Image, error) {
	f.fetches.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	return img, nil
}

// memPreference is an in-memory preview preference
type memPreference struct {
	value bool
	sets  int
}

func (m *memPreference) Get() bool { return m.value }

func (m *memPreference) Set(enabled bool) {
	m.value = enabled
	m.sets++
}

// newTestApp returns an App whose UI updates are collected on a channel instead
// of a running event loop. pump runs them on the test goroutine.
func newTestApp(t *testing.T, st services.StorageService, th services.ThumbnailService, pref browser.Preference) (*App, chan func()) {
	t.Helper()

	app := NewApp(Options{
		Config:     config.DefaultConfig(),
		Storage:    st,
		Thumbnails: th,
		Previews:   pref,
		Logger:     zerolog.Nop(),
	})
	updates := make(chan func(), 256)
	app.queue = func(fn func()) { updates <- fn }
	t.Cleanup(app.cancel)
	return app, updates
}

// pump runs queued UI updates until cond holds
func pump(t *testing.T, updates chan func(), cond func() bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for !cond() {
		select {
		case fn := <-updates:
			fn()
		case <-deadline:
			t.Fatal("timed out waiting for UI state")
		}
	}
}

// drain runs every update that arrives within a short quiet period
func drain(updates chan func()) {
	for {
		select {
		case fn := <-updates:
			fn()
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}
