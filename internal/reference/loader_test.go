package reference

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/myplate-diets/backend/config"
)

func writeList(t *testing.T, dir string, c Category, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, c.FileName()), []byte(content), 0644))
}

func TestParsePhrases(t *testing.T) {
	phrases, err := ParsePhrases(strings.NewReader("  Beef \n\nPORK\n   \nlamb chops\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"beef", "pork", "lamb chops"}, phrases)
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, Dairy, "Milk\n  Cheese\nbutter  \n")

	loader := NewLoader(DirSource{Dir: dir})
	phrases, err := loader.Load(context.Background(), Dairy)
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "cheese", "butter"}, phrases)
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(DirSource{Dir: t.TempDir()})

	_, err := loader.Load(context.Background(), Gluten)
	require.Error(t, err)

	var missing *MissingReferenceFileError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Gluten, missing.Category)
	assert.Contains(t, missing.Location, "gluten.txt")
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	for _, c := range Categories() {
		writeList(t, dir, c, string(c)+" phrase\n")
	}

	data, err := LoadAll(context.Background(), NewLoader(DirSource{Dir: dir}))
	require.NoError(t, err)
	for _, c := range Categories() {
		assert.True(t, data.Has(c))
		assert.Equal(t, []string{string(c) + " phrase"}, data.Phrases(c))
	}
}

func TestLoadAllFailsOnFirstMissing(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, Dairy, "milk\n")

	_, err := LoadAll(context.Background(), NewLoader(DirSource{Dir: dir}), Dairy, Nuts)
	var missing *MissingReferenceFileError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Nuts, missing.Category)
}

func TestReferenceDataIsImmutable(t *testing.T) {
	raw := map[Category][]string{Nuts: {"Almond", "Pecan"}}
	data := New(raw)

	raw[Nuts][0] = "changed"
	phrases := data.Phrases(Nuts)
	phrases[1] = "changed"

	assert.Equal(t, []string{"almond", "pecan"}, data.Phrases(Nuts))
}

func TestReferenceDataFingerprint(t *testing.T) {
	a := New(map[Category][]string{Nuts: {"almond"}, Dairy: {"milk"}})
	b := New(map[Category][]string{Dairy: {" MILK "}, Nuts: {"almond"}})
	c := New(map[Category][]string{Nuts: {"almond", "pecan"}, Dairy: {"milk"}})

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"lists/reference/seafood.txt": "Shrimp\nSalmon\n",
	}}
	loader := NewLoader(S3Source{Client: client, Bucket: "lists", Prefix: "reference/"})

	phrases, err := loader.Load(context.Background(), Seafood)
	require.NoError(t, err)
	assert.Equal(t, []string{"shrimp", "salmon"}, phrases)

	_, err = loader.Load(context.Background(), Eggs)
	var missing *MissingReferenceFileError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "s3://lists/reference/eggs.txt", missing.Location)
}

func TestSourceFromConfigUsesDirectory(t *testing.T) {
	src, err := SourceFromConfig(context.Background(), &config.Config{ReferenceDir: "testdata"})
	require.NoError(t, err)
	assert.Equal(t, DirSource{Dir: "testdata"}, src)
}

func TestShippedReferenceLists(t *testing.T) {
	ref, err := LoadAll(context.Background(), NewLoader(DirSource{Dir: filepath.Join("..", "..", "data", "reference")}))
	require.NoError(t, err)
	for _, c := range Categories() {
		assert.NotEmpty(t, ref.Phrases(c), c)
	}
	assert.True(t, ref.Contains(RedMeat, "1 lb ground beef"))
	assert.True(t, ref.Contains(Dairy, "1 cup milk"))
}
