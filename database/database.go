// Package database implements the single-owner facade binding the header,
// record, crypto, and hierarchy layers into read/write/mutate operations
// over a .kdb file.
package database

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kdbv1/kdbv1/errs"
	"github.com/go-kdbv1/kdbv1/header"
	"github.com/go-kdbv1/kdbv1/hierarchy"
	"github.com/go-kdbv1/kdbv1/internal/options"
	"github.com/go-kdbv1/kdbv1/logx"
	"github.com/go-kdbv1/kdbv1/record"
	"github.com/go-kdbv1/kdbv1/xcrypto"
)

// Database is the in-memory model of a .kdb file: its header plus the flat
// group and entry lists. It is a single-owner mutable value; none of its
// methods are safe for concurrent use.
type Database struct {
	Header  *header.Header
	Groups  []record.Group
	Entries []record.Entry

	rounds uint32
	logger logx.Logger
	rand   io.Reader
}

// New returns an empty database: a header with fresh random seeds/IV,
// SHA2|Rijndael flags, and WithRounds(header.DefaultRounds) unless
// overridden.
func New(opts ...Option) (*Database, error) {
	d := &Database{
		rounds: header.DefaultRounds,
		logger: logx.Nop(),
		rand:   rand.Reader,
	}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	h := header.New()
	h.KeyEncRounds = d.rounds
	if err := h.ResetRandomFields(d.rand); err != nil {
		return nil, err
	}
	d.Header = h

	return d, nil
}

// Read opens the file at path, derives the final key from passphrase and
// the header's own seeds/round count, decrypts and verifies the payload,
// and decodes every group and entry record.
func Read(path, passphrase string, opts ...Option) (*Database, error) {
	d := &Database{
		logger: logx.Nop(),
		rand:   rand.Reader,
	}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.IOError{Err: err}
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, &errs.IOError{Err: err}
	}

	if len(raw) < header.Size {
		return nil, &errs.TruncatedError{At: len(raw)}
	}

	var hbuf [header.Size]byte
	copy(hbuf[:], raw[:header.Size])

	h, err := header.Decode(hbuf)
	if err != nil {
		return nil, err
	}

	finalKey := xcrypto.DeriveFinalKey(passphrase, h.MasterSeed, h.MasterSeed2, h.KeyEncRounds)
	plaintext, err := xcrypto.DecryptPayload(raw[header.Size:], finalKey, h.EncryptionIV, h)
	if err != nil {
		return nil, err
	}

	groups := make([]record.Group, 0, h.NGroups)
	entries := make([]record.Entry, 0, h.NEntries)

	off := 0
	for i := uint32(0); i < h.NGroups; i++ {
		g, n, err := record.DecodeGroup(plaintext[off:])
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
		off += n
	}
	for i := uint32(0); i < h.NEntries; i++ {
		e, n, err := record.DecodeEntry(plaintext[off:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
		off += n
	}

	d.Header = h
	d.rounds = h.KeyEncRounds
	d.Groups = groups
	d.Entries = entries

	return d, nil
}

// Write recomputes NGroups/NEntries and the content hash, draws fresh
// random seeds/IV, re-derives the final key, encrypts the payload, and
// writes header+ciphertext to path via a temp file and atomic rename.
func (d *Database) Write(path, passphrase string) error {
	if err := d.Header.ResetRandomFields(d.rand); err != nil {
		return err
	}
	d.Header.KeyEncRounds = d.rounds
	d.Header.NGroups = uint32(len(d.Groups))
	d.Header.NEntries = uint32(len(d.Entries))

	var plaintext []byte
	for i := range d.Groups {
		buf, err := d.Groups[i].Encode()
		if err != nil {
			return err
		}
		plaintext = append(plaintext, buf...)
	}
	for i := range d.Entries {
		buf, err := d.Entries[i].Encode()
		if err != nil {
			return err
		}
		plaintext = append(plaintext, buf...)
	}

	d.Header.ContentsHash = contentsHash(plaintext)

	finalKey := xcrypto.DeriveFinalKey(passphrase, d.Header.MasterSeed, d.Header.MasterSeed2, d.Header.KeyEncRounds)
	ciphertext, err := xcrypto.EncryptPayload(plaintext, finalKey, d.Header.EncryptionIV, d.Header.EncryptionType())
	if err != nil {
		return err
	}

	hbuf := d.Header.Encode()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".kdbv1-*")
	if err != nil {
		return &errs.IOError{Err: err}
	}
	tmpPath := tmp.Name()

	writeErr := func() error {
		defer tmp.Close()
		if _, err := tmp.Write(hbuf[:]); err != nil {
			return err
		}
		if _, err := tmp.Write(ciphertext); err != nil {
			return err
		}

		return nil
	}()
	if writeErr != nil {
		os.Remove(tmpPath)
		return &errs.IOError{Err: writeErr}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &errs.IOError{Err: err}
	}

	return nil
}

// Save is Write under the name the root kdbv1 package exposes it as.
func (d *Database) Save(path, passphrase string) error {
	return d.Write(path, passphrase)
}

// Hierarchy builds and returns a fresh tree view of the current
// groups/entries. It does not mutate d; repeated calls rebuild from
// scratch.
func (d *Database) Hierarchy() *hierarchy.Node {
	return hierarchy.BuildTree(d.Groups, d.Entries, d.logger)
}

// GenGroupID draws a uniform random id in [1, 0xFFFFFFFE] not already used
// by an existing group, retrying until one is free. It fails with
// errs.ErrExhausted only once the used-id set actually proves the whole
// range is taken, rather than after some arbitrary retry budget — a
// collision run long enough to exhaust a fixed attempt count is not the
// same thing as the id space being saturated.
func (d *Database) GenGroupID() (uint32, error) {
	used := make(map[uint32]struct{}, len(d.Groups))
	for _, g := range d.Groups {
		used[g.ID] = struct{}{}
	}

	for len(used) < 0xFFFFFFFE {
		var buf [4]byte
		if _, err := io.ReadFull(d.rand, buf[:]); err != nil {
			return 0, &errs.IOError{Err: err}
		}

		id := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
		if id == 0 || id == 0xFFFFFFFF {
			continue
		}
		if _, taken := used[id]; taken {
			continue
		}

		return id, nil
	}

	return 0, errs.ErrExhausted
}

func contentsHash(plaintext []byte) [32]byte {
	return sha256.Sum256(plaintext)
}
