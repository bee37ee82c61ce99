package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, KeySelectedTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeySelectedTheme, "dark"))
	v, ok, err := s.Get(ctx, KeySelectedTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Set(ctx, KeySelectedTheme, "neon"))
	v, _, err = s.Get(ctx, KeySelectedTheme)
	require.NoError(t, err)
	assert.Equal(t, "neon", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(context.Background(), KeySelectedTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "neon", v)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml [\n"), 0o644))
	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "prefs.yaml"))
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), KeyDarkMode, "true"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "prefs.yaml", entries[0].Name())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer reopened.Close()
	v, ok, err := reopened.Get(context.Background(), KeySelectedTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "neon", v)
}

type fakeDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]dbtypes.AttributeValue
	err   error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]dbtypes.AttributeValue)}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	pk := in.Key[attrPK].(*dbtypes.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[pk]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	pk := in.Item[attrPK].(*dbtypes.AttributeValueMemberS).Value
	f.items[pk] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoStore(t *testing.T) {
	api := newFakeDynamo()
	s := NewDynamoStore(api, "prefs", "alice")
	exerciseStore(t, s)

	_, ok := api.items["alice#selectedTheme"]
	assert.True(t, ok, "items are keyed by namespace and key")

	other := NewDynamoStore(api, "prefs", "")
	_, ok, err := other.Get(context.Background(), KeySelectedTheme)
	require.NoError(t, err)
	assert.False(t, ok, "namespaces do not share values")
}

func TestDynamoStoreWrapsErrors(t *testing.T) {
	api := newFakeDynamo()
	boom := errors.New("throttled")
	api.err = boom
	s := NewDynamoStore(api, "prefs", "")

	err := s.Set(context.Background(), KeyAPIBase, "http://x")
	assert.ErrorIs(t, err, boom)
	_, _, err = s.Get(context.Background(), KeyAPIBase)
	assert.ErrorIs(t, err, boom)
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(context.Background(), Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(context.Background(), Options{Backend: "FILE", Path: filepath.Join(dir, "p.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(context.Background(), Options{Backend: "sqlite", Path: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(context.Background(), Options{Backend: "dynamodb"})
	assert.Error(t, err, "a table name is required")

	_, err = Open(context.Background(), Options{Backend: "redis"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
