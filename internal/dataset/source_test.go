package dataset

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) OpenObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

const sampleCSV = "english,tamil,batch,sentence_number,doc_id\nhello,வணக்கம்,b1,1,D1\n"

func TestLoader_LoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	rows, err := NewLoader(nil).Load(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "D1", rows[0].DocID)
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadS3(t *testing.T) {
	store := new(MockObjectStore)
	store.On("OpenObject", mock.Anything, "datasets", "2024/cases.csv").
		Return(io.NopCloser(strings.NewReader(sampleCSV)), nil)

	rows, err := NewLoader(store).Load(context.Background(), "s3://datasets/2024/cases.csv")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "வணக்கம்", *rows[0].Tamil)
	store.AssertExpectations(t)
}

func TestLoader_LoadS3Errors(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), "s3://datasets/cases.csv")
	assert.ErrorIs(t, err, ErrNoObjectStore)

	store := new(MockObjectStore)
	denied := errors.New("access denied")
	store.On("OpenObject", mock.Anything, "", "cases.csv").Return(nil, denied)

	_, err = NewLoader(store).Load(context.Background(), "s3:///cases.csv")
	assert.ErrorIs(t, err, denied)
}
