package database

import (
	"path/filepath"
	"testing"

	"github.com/go-kdbv1/kdbv1/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyDatabaseRoundTrip(t *testing.T) {
	// An empty database survives a write/read round trip with
	// ngroups == 0, nentries == 0 (no Meta-Info entries auto-created).
	db, err := New()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.kdb")
	require.NoError(t, db.Write(path, "123"))

	got, err := Read(path, "123")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.Header.NGroups)
	assert.Equal(t, uint32(0), got.Header.NEntries)
	assert.Empty(t, got.Groups)
	assert.Empty(t, got.Entries)
}

func TestAddEntry_PersistsAndResolvesByPath(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	_, err = db.AddEntry("Secrets/Terrible", "Gonk", "foo", "bar", "https://example.org/", "", 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "s2.kdb")
	require.NoError(t, db.Write(path, "123"))

	got, err := Read(path, "123")
	require.NoError(t, err)

	tree := got.Hierarchy()
	m, _, _, err := hierarchy.PathLookup(tree, "Secrets/Terrible/Gonk")
	require.NoError(t, err)
	require.NotNil(t, m.Entry)
	assert.Equal(t, "foo", m.Entry.Username)
	assert.Equal(t, "bar", m.Entry.Password)
	assert.Equal(t, "https://example.org/", m.Entry.URL)
}

func TestRead_WrongPassphraseFails(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	_, err = db.AddEntry("Internet", "Site", "u", "p", "https://site.example/", "", 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wrongpass.kdb")
	require.NoError(t, db.Write(path, "correct horse"))

	_, err = Read(path, "incorrect donkey")
	require.Error(t, err)
}

func TestSearch_IsCaseInsensitive(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	_, err = db.AddEntry("Internet", "My Example Site", "u", "p", "https://example.test/", "", 1)
	require.NoError(t, err)

	for _, key := range []string{"example", "EXAMPLE", "Example"} {
		results := db.Search(key, false)
		require.Len(t, results, 1, "key=%q", key)
	}
}

func TestUpdateEntry_BumpsModifiedTime(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	e, err := db.AddEntry("Internet", "Site", "alice", "old-pw", "https://site.example/", "", 1)
	require.NoError(t, err)
	before := e.Modified

	err = db.UpdateEntry("Site", "alice", "", "", "", "new-pw", "", "")
	require.NoError(t, err)

	idx := -1
	for i, ent := range db.Entries {
		if ent.UUID == e.UUID {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "new-pw", db.Entries[idx].Password)
	assert.False(t, db.Entries[idx].Modified.Before(before))
}

func TestRemoveEntry_RemovesMatching(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	_, err = db.AddEntry("Internet", "A", "alice", "p1", "https://a.example/", "", 1)
	require.NoError(t, err)
	_, err = db.AddEntry("Internet", "B", "bob", "p2", "https://b.example/", "", 1)
	require.NoError(t, err)

	removed := db.RemoveEntry("alice", "")
	assert.Equal(t, 1, removed)
	assert.Len(t, db.Entries, 1)
	assert.Equal(t, "bob", db.Entries[0].Username)
}

func TestGenGroupID_NeverReturnsReservedIDs(t *testing.T) {
	db, err := New()
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		id, err := db.GenGroupID()
		require.NoError(t, err)
		assert.NotEqual(t, uint32(0), id)
		assert.NotEqual(t, uint32(0xFFFFFFFF), id)
	}
}

func TestIsMetaEntry_MatchesOnlyMetaInfoSystem(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	_, err = db.AddEntry("Internet", "Meta-Info", "SYSTEM", "", "", "", 0)
	require.NoError(t, err)
	_, err = db.AddEntry("Internet", "Webmail", "me", "p", "https://mail.example/", "", 1)
	require.NoError(t, err)

	var metaCount, realCount int
	for i := range db.Entries {
		if IsMetaEntry(&db.Entries[i]) {
			metaCount++
		} else {
			realCount++
		}
	}
	assert.Equal(t, 1, metaCount)
	assert.Equal(t, 1, realCount)
}

func TestRemoveGroup_RemovesSubtreeAndEntries(t *testing.T) {
	db, err := New()
	require.NoError(t, err)
	_, err = db.AddEntry("Secrets/Terrible", "Gonk", "foo", "bar", "https://example.org/", "", 1)
	require.NoError(t, err)

	require.NoError(t, db.RemoveGroup("Secrets"))

	tree := db.Hierarchy()
	assert.Empty(t, tree.Children)
	assert.Empty(t, db.Entries)
}
