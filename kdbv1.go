// Package kdbv1 reads and writes KeePass v1 (.kdb) password databases: the
// fixed 124-byte header, AES-ECB/SHA-256 key derivation, AES-CBC payload
// encryption, the TLV group/entry record codec, and hierarchy
// reconstruction from the flat on-disk group list.
//
// Typical usage:
//
//	db, err := kdbv1.Open("passwords.kdb", "hunter2")
//	if err != nil {
//		log.Fatal(err)
//	}
//	entry, err := db.AddEntry("Internet/Email", "Webmail", "me", "s3cr3t", "https://mail.example.com", "", 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := db.Save("passwords.kdb", "hunter2"); err != nil {
//		log.Fatal(err)
//	}
package kdbv1

import (
	"github.com/go-kdbv1/kdbv1/database"
	"github.com/go-kdbv1/kdbv1/logx"
	"github.com/go-kdbv1/kdbv1/record"
)

// Database is the in-memory model of a .kdb file.
type Database = database.Database

// Option configures New/Open.
type Option = database.Option

// WithRounds overrides the key-stretching round count used when creating
// or writing a database.
func WithRounds(n uint32) Option { return database.WithRounds(n) }

// WithLogger sets the warning sink used while building the hierarchy.
func WithLogger(l logx.Logger) Option {
	return database.WithLogger(l)
}

// New returns an empty database with a freshly randomized header.
func New(opts ...Option) (*Database, error) {
	return database.New(opts...)
}

// Open reads and decrypts the .kdb file at path with passphrase.
func Open(path, passphrase string, opts ...Option) (*Database, error) {
	return database.Read(path, passphrase, opts...)
}

// IsMetaEntry reports whether e is a KeePassX-style Meta-Info/SYSTEM entry
// rather than a real password record.
func IsMetaEntry(e *record.Entry) bool {
	return database.IsMetaEntry(e)
}
