package storage

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/services"
)

const snapshotPrefix = "snapshot-"

// Snapshotter exports every entity table as CSV, packs the files into one
// gzipped tar archive and uploads it to the snapshot bucket, keeping only the
// Keep newest archives.
type Snapshotter struct {
	Client *s3.Client
	Bucket string
	Keep   int
	DB     *gorm.DB
	Log    *zap.Logger
}

// Run takes one snapshot. Called by the cron schedule and by cmd/backup.
func (s *Snapshotter) Run(ctx context.Context) error {
	archive, err := s.buildArchive()
	if err != nil {
		return fmt.Errorf("build snapshot archive: %w", err)
	}

	key := fmt.Sprintf("%s%s.tar.gz", snapshotPrefix, time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(archive),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	s.Log.Info("snapshot uploaded",
		zap.String("bucket", s.Bucket),
		zap.String("key", key),
		zap.Int("bytes", len(archive)))

	return s.rotate(ctx)
}

func (s *Snapshotter) buildArchive() ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, kind := range services.CSVKinds {
		data, err := services.ExportCSV(s.DB, kind)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", kind, err)
		}
		hdr := &tar.Header{
			Name:    services.ExportFilename(kind),
			Mode:    0o644,
			Size:    int64(len(data)),
			ModTime: time.Now().UTC(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, err
		}
		if _, err := tw.Write(data); err != nil {
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rotate deletes all but the Keep newest snapshot archives. Other objects in
// the bucket are left alone.
func (s *Snapshotter) rotate(ctx context.Context) error {
	out, err := s.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.Bucket),
		Prefix: aws.String(snapshotPrefix),
	})
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	snapshots := out.Contents[:0]
	for _, obj := range out.Contents {
		if obj.Key != nil && strings.HasPrefix(*obj.Key, snapshotPrefix) {
			snapshots = append(snapshots, obj)
		}
	}
	if len(snapshots) <= s.Keep {
		return nil
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].LastModified.After(*snapshots[j].LastModified)
	})

	for _, obj := range snapshots[s.Keep:] {
		s.Log.Info("deleting old snapshot", zap.String("key", *obj.Key))
		_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    obj.Key,
		})
		if err != nil {
			s.Log.Warn("snapshot delete failed", zap.String("key", *obj.Key), zap.Error(err))
		}
	}
	return nil
}
