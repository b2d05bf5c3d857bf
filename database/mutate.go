package database

import (
	"strings"
	"time"

	"github.com/go-kdbv1/kdbv1/errs"
	"github.com/go-kdbv1/kdbv1/hierarchy"
	"github.com/go-kdbv1/kdbv1/record"
)

// IsMetaEntry reports whether e is a KeePassX-style Meta-Info/SYSTEM entry:
// a convention, not a wire-format field, used to stash application metadata
// (e.g. tree-state, custom icons) inside an otherwise ordinary entry record.
// Embedders that want a "real" password list typically filter these out.
func IsMetaEntry(e *record.Entry) bool {
	return e.Title == "Meta-Info" && e.Username == "SYSTEM"
}

// Search returns every entry whose title, url, username, path, or
// (if includePasswords) password contains key, case-folded.
func (d *Database) Search(key string, includePasswords bool) []*record.Entry {
	needle := strings.ToLower(key)
	tree := d.Hierarchy()

	var out []*record.Entry
	tree.Visit(func(n *hierarchy.Node) (any, bool) {
		if n.Group == nil && n.Parent != nil {
			// Visit's per-entry wrapper node; its entry was already checked
			// at the owning group's node.
			return nil, false
		}

		path := ""
		for p := n; p != nil && p.Group != nil; p = p.Parent {
			path = p.Name() + "/" + path
		}

		for _, e := range n.Entries {
			if entryMatches(e, path, needle, includePasswords) {
				out = append(out, e)
			}
		}

		return nil, false
	})

	return out
}

func entryMatches(e *record.Entry, path, needle string, includePasswords bool) bool {
	fields := []string{e.Title, e.URL, e.Username, path}
	if includePasswords {
		fields = append(fields, e.Password)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}

	return false
}

// AddEntry creates a new entry under the group resolved (mkdir-ing missing
// components) from path, with the given fields, and appends it to the
// database. It returns the new entry.
func (d *Database) AddEntry(path, title, username, password, url, notes string, imageID uint32) (*record.Entry, error) {
	tree := d.Hierarchy()

	leaf, err := hierarchy.Mkdir(tree, path, d.GenGroupID)
	if err != nil {
		return nil, err
	}

	d.Groups, d.Entries = hierarchy.Flatten(tree)

	e := record.NewEntry(leaf.Group.ID)
	e.Title = title
	e.Username = username
	e.Password = password
	e.URL = url
	e.Notes = notes
	e.ImageID = imageID

	d.Entries = append(d.Entries, *e)

	return &d.Entries[len(d.Entries)-1], nil
}

// UpdateEntry updates the fields of the first entry matching
// matchTitle/matchUsername/matchURL (a field is ignored when empty) with
// the given new values, also bumping Modified to now. It fails
// errs.ErrEntryNotFound if no entry matches.
func (d *Database) UpdateEntry(matchTitle, matchUsername, matchURL string, newTitle, newUsername, newPassword, newURL, newNotes string) error {
	for i := range d.Entries {
		e := &d.Entries[i]
		if matchTitle != "" && e.Title != matchTitle {
			continue
		}
		if matchUsername != "" && e.Username != matchUsername {
			continue
		}
		if matchURL != "" && e.URL != matchURL {
			continue
		}

		if newTitle != "" {
			e.Title = newTitle
		}
		if newUsername != "" {
			e.Username = newUsername
		}
		if newPassword != "" {
			e.Password = newPassword
		}
		if newURL != "" {
			e.URL = newURL
		}
		if newNotes != "" {
			e.Notes = newNotes
		}
		e.Modified = time.Now().UTC()

		return nil
	}

	return errs.ErrEntryNotFound
}

// RemoveEntry removes every entry matching both username and url (a field
// is ignored when empty). It returns the number of entries removed.
func (d *Database) RemoveEntry(username, url string) int {
	kept := d.Entries[:0]
	removed := 0

	for _, e := range d.Entries {
		match := (username == "" || e.Username == username) && (url == "" || e.URL == url)
		if match {
			removed++
			continue
		}
		kept = append(kept, e)
	}

	d.Entries = kept

	return removed
}

// AddGroup creates the group at path (mkdir-ing missing components) and
// returns its group record.
func (d *Database) AddGroup(path string) (*record.Group, error) {
	tree := d.Hierarchy()

	leaf, err := hierarchy.Mkdir(tree, path, d.GenGroupID)
	if err != nil {
		return nil, err
	}

	d.Groups, d.Entries = hierarchy.Flatten(tree)

	return leaf.Group, nil
}

// RemoveGroup removes the group at path along with its entries and any
// descendant groups/entries.
func (d *Database) RemoveGroup(path string) error {
	tree := d.Hierarchy()

	match, _, _, err := hierarchy.PathLookup(tree, path)
	if err != nil {
		return err
	}
	if match.Entry != nil || match.Node == tree {
		return errs.ErrGroupNotFound
	}

	parent := match.Node.Parent
	if parent == nil {
		return errs.ErrGroupNotFound
	}

	children := parent.Children[:0]
	for _, c := range parent.Children {
		if c != match.Node {
			children = append(children, c)
		}
	}
	parent.Children = children

	d.Groups, d.Entries = hierarchy.Flatten(tree)

	return nil
}
