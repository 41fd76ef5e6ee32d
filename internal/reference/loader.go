package reference

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Source opens the backing list for a category. Implementations return a
// *MissingReferenceFileError when the list does not exist.
type Source interface {
	Open(ctx context.Context, category Category) (io.ReadCloser, error)
}

// DirSource reads <Dir>/<category>.txt from the local filesystem.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(_ context.Context, category Category) (io.ReadCloser, error) {
	path := filepath.Join(s.Dir, category.FileName())
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingReferenceFileError{Category: category, Location: path, Err: err}
		}
		return nil, fmt.Errorf("failed to open reference list %s: %w", path, err)
	}
	return f, nil
}

// S3GetObjectAPI is the subset of the S3 client used by S3Source.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads s3://<Bucket>/<Prefix><category>.txt.
type S3Source struct {
	Client S3GetObjectAPI
	Bucket string
	Prefix string
}

func (s S3Source) Open(ctx context.Context, category Category) (io.ReadCloser, error) {
	key := s.Prefix + category.FileName()
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, &MissingReferenceFileError{
				Category: category,
				Location: fmt.Sprintf("s3://%s/%s", s.Bucket, key),
				Err:      err,
			}
		}
		return nil, fmt.Errorf("failed to fetch reference list s3://%s/%s: %w", s.Bucket, key, err)
	}
	return out.Body, nil
}

// Loader resolves category identifiers to normalized phrase lists.
type Loader struct {
	source Source
}

// NewLoader creates a Loader backed by the given source
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns the phrases for a category, each lowercased and trimmed, in file order.
func (l *Loader) Load(ctx context.Context, category Category) ([]string, error) {
	rc, err := l.source.Open(ctx, category)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	phrases, err := ParsePhrases(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference list %s: %w", category, err)
	}
	return phrases, nil
}

// ParsePhrases reads one phrase per line. Blank lines are skipped.
func ParsePhrases(r io.Reader) ([]string, error) {
	var phrases []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if p := Normalize(scanner.Text()); p != "" {
			phrases = append(phrases, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return phrases, nil
}

// LoadAll loads every requested category (all known categories when none are
// given) and freezes them into ReferenceData. The first missing list aborts.
func LoadAll(ctx context.Context, loader *Loader, categories ...Category) (*ReferenceData, error) {
	if len(categories) == 0 {
		categories = Categories()
	}

	lists := make(map[Category][]string, len(categories))
	for _, c := range categories {
		phrases, err := loader.Load(ctx, c)
		if err != nil {
			return nil, err
		}
		log.Printf("[Reference] Loaded %d phrases for category %s", len(phrases), c)
		lists[c] = phrases
	}
	return New(lists), nil
}
