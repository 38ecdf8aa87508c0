package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// FindFilmByIMDBID retrieves a ledger entry by IMDB id
func (db *Database) FindFilmByIMDBID(imdbID string) (*Film, error) {
	var film Film
	err := db.store.FindOne(&film, bolthold.Where("IMDBID").Eq(imdbID))
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// FindFilmByTitle retrieves a ledger entry by its original title
func (db *Database) FindFilmByTitle(title string) (*Film, error) {
	var film Film
	err := db.store.FindOne(&film, bolthold.Where("OriginalTitle").Eq(title))
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// HasFilm reports whether a ledger entry exists for the IMDB id
func (db *Database) HasFilm(imdbID string) (bool, error) {
	_, err := db.FindFilmByIMDBID(imdbID)
	if err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkSeen inserts a ledger entry unless one already exists for the film's
// IMDB id. Returns true when a record was written, false when the film was
// already in the ledger. Entries are never updated, so a second call with a
// different reason is a no-op.
func (db *Database) MarkSeen(film *Film) (bool, error) {
	found, err := db.HasFilm(film.IMDBID)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	film.Added = time.Now().UTC()
	if err := db.store.Insert(bolthold.NextSequence(), film); err != nil {
		return false, fmt.Errorf("failed to insert film %s: %w", film.IMDBID, err)
	}

	return true, nil
}

// LedgerCounts summarizes the ledger for the status endpoint
type LedgerCounts struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	InRadarr int `json:"in_radarr"`
}

// CountFilms returns ledger totals
func (db *Database) CountFilms() (LedgerCounts, error) {
	var counts LedgerCounts
	var err error

	counts.Total, err = db.store.Count(&Film{}, nil)
	if err != nil {
		return counts, err
	}
	counts.Filtered, err = db.store.Count(&Film{}, bolthold.Where("Filtered").Eq(true))
	if err != nil {
		return counts, err
	}
	counts.InRadarr, err = db.store.Count(&Film{}, bolthold.Where("InRadarr").Eq(true))
	return counts, err
}
