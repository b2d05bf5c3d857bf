package hierarchy

import (
	"testing"

	"github.com/go-kdbv1/kdbv1/logx"
	"github.com/go-kdbv1/kdbv1/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupAt(id uint32, level uint16, name string) record.Group {
	g := *record.NewGroup(id)
	g.Level = level
	g.Name = name

	return g
}

func TestBuildTree_S4Scenario(t *testing.T) {
	groups := []record.Group{
		groupAt(1, 0, "one"),
		groupAt(2, 1, "two"),
		groupAt(3, 2, "three"),
		groupAt(4, 1, "four"),
	}

	root := BuildTree(groups, nil, logx.Nop())

	require.Len(t, root.Children, 1)
	n1 := root.Children[0]
	assert.Equal(t, uint32(1), n1.Group.ID)
	require.Len(t, n1.Children, 2)

	n2 := n1.Children[0]
	assert.Equal(t, uint32(2), n2.Group.ID)
	require.Len(t, n2.Children, 1)
	assert.Equal(t, uint32(3), n2.Children[0].Group.ID)

	n4 := n1.Children[1]
	assert.Equal(t, uint32(4), n4.Group.ID)
	assert.Empty(t, n4.Children)
}

func TestBuildTree_DropsOrphanEntryWithWarning(t *testing.T) {
	groups := []record.Group{groupAt(1, 0, "one")}
	e := *record.NewEntry(999)

	var warned string
	logger := warnCapture(&warned)

	root := BuildTree(groups, []record.Entry{e}, logger)
	assert.Empty(t, root.Children[0].Entries)
	assert.NotEmpty(t, warned)
}

func TestBuildTree_AttachesEntryToMatchingGroup(t *testing.T) {
	groups := []record.Group{groupAt(5, 0, "root-group")}
	e := *record.NewEntry(5)
	e.Title = "mine"

	root := BuildTree(groups, []record.Entry{e}, logx.Nop())
	require.Len(t, root.Children[0].Entries, 1)
	assert.Equal(t, "mine", root.Children[0].Entries[0].Title)
}

func TestFlatten_IsInverseOfBuildTree(t *testing.T) {
	groups := []record.Group{
		groupAt(1, 0, "a"),
		groupAt(2, 1, "b"),
		groupAt(3, 1, "c"),
	}
	e := *record.NewEntry(2)

	root := BuildTree(groups, []record.Entry{e}, logx.Nop())
	flatGroups, flatEntries := Flatten(root)

	require.Len(t, flatGroups, 3)
	assert.Equal(t, uint32(1), flatGroups[0].ID)
	assert.Equal(t, uint32(2), flatGroups[1].ID)
	assert.Equal(t, uint32(3), flatGroups[2].ID)
	require.Len(t, flatEntries, 1)

	root2 := BuildTree(flatGroups, flatEntries, logx.Nop())
	assert.Equal(t, root.Children[0].Group.ID, root2.Children[0].Group.ID)
}

func TestPathLookup_ResolvesGroupAndEntry(t *testing.T) {
	groups := []record.Group{
		groupAt(1, 0, "Secrets"),
		groupAt(2, 1, "Terrible"),
	}
	e := *record.NewEntry(2)
	e.Title = "Gonk"

	root := BuildTree(groups, []record.Entry{e}, logx.Nop())

	m, _, _, err := PathLookup(root, "Secrets/Terrible/Gonk")
	require.NoError(t, err)
	require.NotNil(t, m.Entry)
	assert.Equal(t, "Gonk", m.Entry.Title)
}

func TestPathLookup_NotFoundReturnsBestMatch(t *testing.T) {
	groups := []record.Group{groupAt(1, 0, "Secrets")}
	root := BuildTree(groups, nil, logx.Nop())

	m, best, suffix, err := PathLookup(root, "Secrets/Missing/Leaf")
	require.Error(t, err)
	assert.Nil(t, m)
	require.NotNil(t, best)
	assert.Equal(t, uint32(1), best.Group.ID)
	assert.Equal(t, []string{"Missing", "Leaf"}, suffix)
}

func TestMkdir_CreatesMissingComponents(t *testing.T) {
	root := &Node{Level: rootLevel}

	var next uint32 = 1
	genID := func() (uint32, error) {
		id := next
		next++
		return id, nil
	}

	leaf, err := Mkdir(root, "Secrets/Terrible", genID)
	require.NoError(t, err)
	assert.Equal(t, "Terrible", leaf.Name())
	assert.Equal(t, 1, leaf.Level)

	// Mkdir-ing again over the same path must not duplicate nodes.
	leaf2, err := Mkdir(root, "Secrets/Terrible", genID)
	require.NoError(t, err)
	assert.Same(t, leaf, leaf2)
}

func TestVisit_StopsOnFirstNonNilValue(t *testing.T) {
	groups := []record.Group{
		groupAt(1, 0, "a"),
		groupAt(2, 1, "target"),
	}
	root := BuildTree(groups, nil, logx.Nop())

	found := root.Visit(func(n *Node) (any, bool) {
		if n.Name() == "target" {
			return n, false
		}
		return nil, false
	})

	require.NotNil(t, found)
	assert.Equal(t, "target", found.(*Node).Name())
}

type capturingLogger struct {
	out *string
}

func (l capturingLogger) Warnf(format string, args ...any) {
	*l.out = format
}

func warnCapture(out *string) logx.Logger {
	return capturingLogger{out: out}
}
