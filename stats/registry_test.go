package stats_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiresock/netwatch/stats"
)

func TestRegistry_IncrementAdvancesTagAndTotal(t *testing.T) {
	r := stats.NewRegistry()

	r.Increment(stats.TagEthernet)
	r.Increment(stats.TagEthernet)
	r.Increment(stats.TagARP)

	snap := r.Snapshot()
	assert.Equal(t, uint64(2), snap.Ethernet)
	assert.Equal(t, uint64(1), snap.ARP)
	assert.Equal(t, uint64(3), snap.Total)
}

func TestRegistry_SeedRestoresEveryCounter(t *testing.T) {
	r := stats.NewRegistry()
	seed := stats.Snapshot{Total: 10, Ethernet: 5, TCP: 3, DNS: 2}
	r.Seed(seed)

	assert.Equal(t, seed, r.Snapshot())

	r.Increment(stats.TagEthernet)
	assert.Equal(t, uint64(6), r.Snapshot().Ethernet)
	assert.Equal(t, uint64(11), r.Snapshot().Total)
}

func TestSaveAndLoadSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	want := stats.Snapshot{Total: 7, Ethernet: 7, TCP: 4, DNS: 1}

	require.NoError(t, stats.SaveSnapshot(path, want))

	got, err := stats.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSnapshot_TolerantOfTrailingComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	malformed := []byte(`{"total_packets": 3, "ethernet": 3,}`)
	require.NoError(t, os.WriteFile(path, malformed, 0o644))

	got, err := stats.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.Total)
	assert.Equal(t, uint64(3), got.Ethernet)
}
