package services

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/ajramos/bucketui/internal/storage"
)

// maxArchiveSuffix bounds the search for a free archive name within one second
const maxArchiveSuffix = 100

// StorageServiceImpl implements StorageService over S3 sources
type StorageServiceImpl struct {
	sources       *storage.SourceManager
	pageSize      int32
	previewExpiry time.Duration
	downloadDir   string
	logger        zerolog.Logger
	now           func() time.Time
}

// NewStorageService creates a new storage service
func NewStorageService(sources *storage.SourceManager, pageSize int32, previewExpiry time.Duration, downloadDir string) *StorageServiceImpl {
	if pageSize <= 0 {
		pageSize = 200
	}
	if previewExpiry <= 0 {
		previewExpiry = 15 * time.Minute
	}
	return &StorageServiceImpl{
		sources:       sources,
		pageSize:      pageSize,
		previewExpiry: previewExpiry,
		downloadDir:   downloadDir,
		logger:        zerolog.Nop(),
		now:           time.Now,
	}
}

// SetLogger sets the logger for debug output
func (s *StorageServiceImpl) SetLogger(logger zerolog.Logger) {
	s.logger = logger
}

// ListSources returns every configured source in order
func (s *StorageServiceImpl) ListSources() []SourceInfo {
	sources := s.sources.Sources()
	out := make([]SourceInfo, 0, len(sources))
	for _, src := range sources {
		out = append(out, s.info(src))
	}
	return out
}

// ResolveSource returns the named source, or the default source for a blank name
func (s *StorageServiceImpl) ResolveSource(name string) (SourceInfo, error) {
	src, err := s.resolve(name)
	if err != nil {
		return SourceInfo{}, err
	}
	return s.info(src), nil
}

// ListBuckets lists the buckets visible to a source. Credentials that may not list
// buckets get the source's default bucket instead.
func (s *StorageServiceImpl) ListBuckets(ctx context.Context, source string) ([]BucketSummary, error) {
	src, err := s.resolve(source)
	if err != nil {
		return nil, err
	}

	out, err := src.Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		if isAuthFailure(err) {
			s.logger.Debug().Err(err).Str("source", src.Name).Msg("bucket listing denied, using default bucket")
			if strings.TrimSpace(src.DefaultBucket) == "" {
				return []BucketSummary{}, nil
			}
			return []BucketSummary{{Name: src.DefaultBucket}}, nil
		}
		return nil, fmt.Errorf("list buckets of %s: %w", src.Name, err)
	}

	buckets := make([]BucketSummary, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, BucketSummary{Name: aws.ToString(b.Name)})
	}
	return buckets, nil
}

// ListObjects returns one page of folders and objects directly under the prefix
func (s *StorageServiceImpl) ListObjects(ctx context.Context, req ListRequest) (*Listing, error) {
	src, err := s.resolve(req.Source)
	if err != nil {
		return nil, err
	}
	bucket := s.effectiveBucket(src, req.Bucket)
	prefix := storage.NormalizePrefix(req.Prefix)

	tokens, err := storage.DecodeTokenStack(req.TokenStack)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
		MaxKeys:   aws.Int32(s.pageSize),
	}
	if len(tokens) > 0 {
		input.ContinuationToken = aws.String(tokens[len(tokens)-1])
	}

	out, err := src.Client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, s.translate(err, src, bucket)
	}

	listing := &Listing{
		Source:       src.Name,
		Bucket:       bucket,
		Prefix:       prefix,
		ParentPrefix: storage.ParentPrefix(prefix),
		Breadcrumbs:  storage.Breadcrumbs(prefix),
	}

	for _, cp := range out.CommonPrefixes {
		p := aws.ToString(cp.Prefix)
		listing.Folders = append(listing.Folders, Folder{Name: storage.FolderName(p), Prefix: p})
	}
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if strings.HasSuffix(key, "/") {
			continue
		}
		listing.Objects = append(listing.Objects, Object{
			Key:          key,
			Name:         storage.FileName(key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
			Previewable:  storage.IsPreviewableImage(key),
		})
	}

	next := aws.ToString(out.NextContinuationToken)
	listing.CurrentStack = storage.EncodeTokenStack(tokens)
	listing.HasMore = aws.ToBool(out.IsTruncated) && next != ""
	if next != "" {
		listing.NextStack = storage.AppendToken(listing.CurrentStack, next)
	}
	if len(tokens) > 0 {
		listing.PreviousStack = storage.DropLastToken(listing.CurrentStack)
	}

	s.logger.Debug().
		Str("source", src.Name).
		Str("bucket", bucket).
		Str("prefix", prefix).
		Int("page", len(tokens)+1).
		Int("folders", len(listing.Folders)).
		Int("objects", len(listing.Objects)).
		Msg("listed objects")

	return listing, nil
}

// PreviewURL returns a presigned GET URL for an image object
func (s *StorageServiceImpl) PreviewURL(ctx context.Context, source, bucket, key string) (string, error) {
	if !storage.IsPreviewableImage(key) {
		return "", fmt.Errorf("%w: %s", ErrPreviewUnsupported, key)
	}
	src, err := s.resolve(source)
	if err != nil {
		return "", err
	}
	if src.Presigner == nil {
		return "", fmt.Errorf("%w: source %s cannot sign URLs", ErrPreviewUnsupported, src.Name)
	}

	req, err := src.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.effectiveBucket(src, bucket)),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.previewExpiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}

// DownloadObjects writes the selected objects into a timestamped zip in the download directory
func (s *StorageServiceImpl) DownloadObjects(ctx context.Context, source, bucket string, keys []string) (*DownloadResult, error) {
	keys = uniqueKeys(keys)
	if len(keys) == 0 {
		return nil, ErrNoSelection
	}
	src, err := s.resolve(source)
	if err != nil {
		return nil, err
	}
	bucket = s.effectiveBucket(src, bucket)

	if err := os.MkdirAll(s.downloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	final, err := reserveArchivePath(s.downloadDir, s.now())
	if err != nil {
		return nil, err
	}
	partial := final + ".part"

	f, err := os.Create(partial)
	if err != nil {
		_ = os.Remove(final)
		return nil, fmt.Errorf("create archive: %w", err)
	}

	result := &DownloadResult{Path: final}
	zw := zip.NewWriter(f)
	writeErr := s.writeArchive(ctx, zw, src, bucket, keys, result)
	if err := zw.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("finish archive: %w", err)
	}
	if err := f.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close archive: %w", err)
	}
	if writeErr != nil {
		_ = os.Remove(partial)
		_ = os.Remove(final)
		return nil, writeErr
	}
	if err := os.Rename(partial, final); err != nil {
		_ = os.Remove(partial)
		_ = os.Remove(final)
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	s.logger.Info().
		Str("path", final).
		Int("files", result.Files).
		Int64("bytes", result.Bytes).
		Msg("download archive written")
	return result, nil
}

// reserveArchivePath claims download-<timestamp>.zip in dir, adding -2, -3, ... when
// an archive of the same second already exists
func reserveArchivePath(dir string, now time.Time) (string, error) {
	base := now.Format("download-20060102-150405")
	for i := 1; i <= maxArchiveSuffix; i++ {
		name := base + ".zip"
		if i > 1 {
			name = fmt.Sprintf("%s-%d.zip", base, i)
		}
		archive := filepath.Join(dir, name)

		f, err := os.OpenFile(archive, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create archive: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("create archive: %w", err)
		}
		return archive, nil
	}
	return "", fmt.Errorf("create archive: no free name for %s in %s", base, dir)
}

// uniqueEntryName returns name, or name with -2, -3, ... before its extension
// when an earlier entry already took it
func uniqueEntryName(name string, used map[string]bool) string {
	candidate := name
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
	used[candidate] = true
	return candidate
}

func (s *StorageServiceImpl) writeArchive(ctx context.Context, zw *zip.Writer, src *storage.Source, bucket string, keys []string, result *DownloadResult) error {
	used := make(map[string]bool, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := storage.SanitizeEntryName(key, "")
		if name == "" {
			result.Skipped = append(result.Skipped, key)
			continue
		}
		if unique := uniqueEntryName(name, used); unique != name {
			s.logger.Debug().Str("key", key).Str("entry", unique).Msg("renamed colliding archive entry")
			name = unique
		}

		out, err := src.Client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return s.translate(err, src, bucket)
		}

		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
		if out.LastModified != nil {
			hdr.Modified = *out.LastModified
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			_ = out.Body.Close()
			return fmt.Errorf("add %s to archive: %w", key, err)
		}
		n, err := io.Copy(w, out.Body)
		_ = out.Body.Close()
		if err != nil {
			return fmt.Errorf("add %s to archive: %w", key, err)
		}

		result.Files++
		result.Bytes += n
	}
	return nil
}

func (s *StorageServiceImpl) resolve(name string) (*storage.Source, error) {
	if s.sources == nil {
		return nil, ErrSourceNotFound
	}
	src, ok := s.sources.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, name)
	}
	return src, nil
}

func (s *StorageServiceImpl) info(src *storage.Source) SourceInfo {
	return SourceInfo{
		Name:          src.Name,
		Label:         src.Label,
		DefaultBucket: src.DefaultBucket,
		IsDefault:     src.Name == s.sources.DefaultName(),
	}
}

func (s *StorageServiceImpl) effectiveBucket(src *storage.Source, bucket string) string {
	if b := strings.TrimSpace(bucket); b != "" {
		return b
	}
	return src.DefaultBucket
}

func (s *StorageServiceImpl) translate(err error, src *storage.Source, bucket string) error {
	switch {
	case isAuthFailure(err):
		return fmt.Errorf("%w: bucket %q in source %q; check the credentials allow list and read: %v", ErrAccessDenied, bucket, src.Name, err)
	case isNotFound(err):
		return fmt.Errorf("%w: bucket %q in source %q; check the bucket name and region: %v", ErrNotFound, bucket, src.Name, err)
	default:
		return fmt.Errorf("bucket %q in source %q: %w", bucket, src.Name, err)
	}
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
