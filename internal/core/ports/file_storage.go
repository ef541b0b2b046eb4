package ports

import "context"

// StoredFile is a blob retrieved from file storage together with the name it
// was stored under.
type StoredFile struct {
	Name    string
	Content []byte
}

// FileStorage stores the original and translated documents of a project.
// Retrieval fails with the respective not-found sentinel when the side has
// never been written, and with a storage error otherwise.
type FileStorage interface {
	SaveOriginal(ctx context.Context, projectID, name string, content []byte) error
	SaveTranslated(ctx context.Context, projectID, name string, content []byte) error
	OriginalFile(ctx context.Context, projectID string) (*StoredFile, error)
	TranslatedFile(ctx context.Context, projectID string) (*StoredFile, error)
}
