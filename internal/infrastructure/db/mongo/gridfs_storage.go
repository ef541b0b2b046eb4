package mongo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/developia/translation-office/internal/core/domain"
	"github.com/developia/translation-office/internal/core/ports"
)

const (
	bucketOriginals    = "originals"
	bucketTranslations = "translations"
)

// FileStorage keeps project documents in two GridFS buckets, one per side.
// The GridFS file id is the project id, so each project holds at most one
// blob per side and a re-upload replaces the previous one.
type FileStorage struct {
	originals    *gridfs.Bucket
	translations *gridfs.Bucket
}

func NewFileStorage(db *mongo.Database) (*FileStorage, error) {
	originals, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketOriginals))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket %s: %w", bucketOriginals, err)
	}
	translations, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketTranslations))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket %s: %w", bucketTranslations, err)
	}
	return &FileStorage{originals: originals, translations: translations}, nil
}

func (s *FileStorage) SaveOriginal(ctx context.Context, projectID, name string, content []byte) error {
	return save(ctx, s.originals, projectID, name, content)
}

func (s *FileStorage) SaveTranslated(ctx context.Context, projectID, name string, content []byte) error {
	return save(ctx, s.translations, projectID, name, content)
}

func (s *FileStorage) OriginalFile(ctx context.Context, projectID string) (*ports.StoredFile, error) {
	return load(ctx, s.originals, projectID, domain.ErrOriginalFileNotFound)
}

func (s *FileStorage) TranslatedFile(ctx context.Context, projectID string) (*ports.StoredFile, error) {
	return load(ctx, s.translations, projectID, domain.ErrTranslatedFileNotFound)
}

func save(ctx context.Context, bucket *gridfs.Bucket, projectID, name string, content []byte) error {
	applyDeadline(ctx, bucket)

	// Replace any previous blob for this project id.
	if err := bucket.Delete(projectID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("%w: replace file: %v", domain.ErrStorage, err)
	}
	if err := bucket.UploadFromStreamWithID(projectID, name, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("%w: upload file: %v", domain.ErrStorage, err)
	}
	return nil
}

func load(ctx context.Context, bucket *gridfs.Bucket, projectID string, notFound error) (*ports.StoredFile, error) {
	applyDeadline(ctx, bucket)

	stream, err := bucket.OpenDownloadStream(projectID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("%w: open file: %v", domain.ErrStorage, err)
	}
	defer stream.Close()

	content, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", domain.ErrStorage, err)
	}
	return &ports.StoredFile{Name: stream.GetFile().Name, Content: content}, nil
}

// applyDeadline forwards the context deadline to the bucket; the gridfs API
// predates context plumbing.
func applyDeadline(ctx context.Context, bucket *gridfs.Bucket) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = bucket.SetReadDeadline(deadline)
		_ = bucket.SetWriteDeadline(deadline)
	}
}

var _ ports.FileStorage = (*FileStorage)(nil)
