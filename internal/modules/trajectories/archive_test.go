package trajectories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgelab/hedgebench/internal/domain"
)

func TestArchiveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectories.msgpack")

	archive, err := NewArchive(path)
	require.NoError(t, err)

	records := []Record{
		{
			Episode: 0,
			Ticker:  "AAPL",
			Steps: []domain.TrajectoryStep{
				{Position: 0.5, StockPrice: 100},
				{Position: 0.3, StockPrice: 95},
			},
		},
		{
			Episode: 1,
			Ticker:  "KO",
			Steps: []domain.TrajectoryStep{
				{Position: 1.0, StockPrice: 100},
			},
		},
	}
	for _, rec := range records {
		require.NoError(t, archive.Append(rec))
	}
	require.NoError(t, archive.Close())

	loaded, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestReadAllEmptyArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.msgpack")

	archive, err := NewArchive(path)
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	loaded, err := ReadAll(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestReadAllMissingFile(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "nope.msgpack"))
	assert.Error(t, err)
}
