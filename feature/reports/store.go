package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"releasedrop/core/storage"
	"releasedrop/feature/releases"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Prefix is the object key prefix of every sweep report.
const Prefix = "reports/"

var (
	// ErrReportNotFound is returned when a report key does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidKey is returned for keys outside the report prefix.
	ErrInvalidKey = errors.New("invalid report key")
)

// Info describes one stored report.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Store writes sweep reports to object storage. It implements releases.ReportSink.
type Store struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a report store over client.
func NewStore(client storage.Client, cfg storage.Config, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
		now:    time.Now,
	}
}

// keyTime is RFC 3339 with a fixed nanosecond fraction, so keys of the
// same provider never collide and sort by time.
const keyTime = "2006-01-02T15:04:05.000000000Z07:00"

// Key returns the object key of a report written at t for provider.
func Key(provider string, t time.Time) string {
	return Prefix + provider + "/" + t.UTC().Format(keyTime) + ".json"
}

// SaveReport stores report as JSON and returns its object key.
func (s *Store) SaveReport(ctx context.Context, report releases.SweepReport) (string, error) {
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	at := report.Summary.FinishedAt
	if at.IsZero() {
		at = s.now()
	}
	key := Key(report.Summary.Provider, at)

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload report %s: %w", key, err)
	}

	s.logger.Info("Sweep report stored", zap.String("bucket", s.bucket), zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// List returns the stored reports, newest first. A non-empty provider
// restricts the listing to that provider.
func (s *Store) List(ctx context.Context, provider string) ([]Info, error) {
	prefix := Prefix
	if provider != "" {
		prefix += provider + "/"
	}

	out := []Info{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		out = append(out, Info{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}

// Get returns the raw JSON of one report.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if !validKey(key) {
		return nil, ErrInvalidKey
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFound(err, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFound(err, key)
	}
	return data, nil
}

func validKey(key string) bool {
	return strings.HasPrefix(key, Prefix) &&
		strings.HasSuffix(key, ".json") &&
		path.Clean(key) == key
}

func notFound(err error, key string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrReportNotFound
	}
	return fmt.Errorf("read report %s: %w", key, err)
}
