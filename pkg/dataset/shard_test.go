package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShardRejectsUnsortedKeys(t *testing.T) {
	_, err := newShard("x", []string{"b", "a"}, nil)
	assert.Error(t, err)

	_, err = newShard("x", []string{"a", "a"}, nil)
	assert.Error(t, err, "duplicate keys are disallowed")
}

func TestShardScanPrefix(t *testing.T) {
	sh, err := newShard("words_surface_hiragana",
		[]string{"たくし", "たくしー", "たぬき"},
		map[string][]int64{"たくしー": {5}})
	require.NoError(t, err)

	keys := sh.ScanPrefix("たくし", 0)
	assert.Equal(t, []string{"たくし", "たくしー"}, keys)

	assert.Equal(t, []int64{5}, sh.IDs("たくしー"))
	assert.Nil(t, sh.IDs("たくし"))
	assert.Nil(t, sh.IDs("たぬき"))
}

func TestShardScanPrefixCap(t *testing.T) {
	sh, err := newShard("x",
		[]string{"たか", "たき", "たく", "たけ", "たこ"},
		nil)
	require.NoError(t, err)

	keys := sh.ScanPrefix("た", 2)
	assert.Equal(t, []string{"たか", "たき"}, keys, "cap stops the scan in key order")
}

func TestShardScanPrefixEmptyPrefixMatchesAll(t *testing.T) {
	sh, err := newShard("x", []string{"a", "b", "c"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, sh.ScanPrefix("", 0))
	assert.Len(t, sh.ScanPrefix("", 2), 2)
}

func TestShardScanPrefixNoMatch(t *testing.T) {
	sh, err := newShard("x", []string{"たくし"}, nil)
	require.NoError(t, err)
	assert.Empty(t, sh.ScanPrefix("ね", 10))
}
