package store

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/byteptr/steel/internal/fsops"
	"github.com/byteptr/steel/internal/log"
	"github.com/byteptr/steel/internal/steelerr"
)

const schema = `CREATE TABLE entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title      TEXT NOT NULL,
	user       TEXT NOT NULL,
	passphrase TEXT NOT NULL,
	url        TEXT NOT NULL,
	notes      TEXT NOT NULL
);`

// Store is the plaintext credential catalogue. All operations require the
// underlying file to be open; a zero Store is not usable.
type Store struct {
	db   *sql.DB
	path string
}

// Create initializes a brand-new, empty catalogue at path. It fails with
// AlreadyExists if a file already exists there; this check is what keeps
// init from ever overwriting an existing file.
func Create(path string) (*Store, error) {
	if fsops.Exists(path) {
		return nil, steelerr.AlreadyExists(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, steelerr.Io("open new catalogue", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		fsops.RemoveIfExists(path)
		return nil, steelerr.Io("create schema", err)
	}

	log.Debug("catalogue created", log.String("path", path))
	return &Store{db: db, path: path}, nil
}

// Open opens an existing, decrypted catalogue file at path.
func Open(path string) (*Store, error) {
	if !fsops.Exists(path) {
		return nil, steelerr.NotFound(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, steelerr.Io("open catalogue", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, steelerr.Io("open catalogue", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle. It does not touch the
// file itself; Container.Encrypt is what turns it back into ciphertext.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NextID returns the smallest positive integer greater than every id ever
// allocated in this catalogue, including deleted ones, by reading SQLite's
// own autoincrement high-water mark rather than MAX(id).
func (s *Store) NextID() (int, error) {
	var seq sql.NullInt64
	err := s.db.QueryRow(`SELECT seq FROM sqlite_sequence WHERE name = 'entries'`).Scan(&seq)
	if err == sql.ErrNoRows || !seq.Valid {
		return 1, nil
	}
	if err != nil {
		return 0, steelerr.Io("read sequence", err)
	}
	return int(seq.Int64) + 1, nil
}

// Add inserts rec, ignoring rec.ID, and returns the newly assigned id.
func (s *Store) Add(rec Record) (int, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		`INSERT INTO entries (title, user, passphrase, url, notes) VALUES (?, ?, ?, ?, ?)`,
		rec.Title, rec.User, rec.Passphrase, rec.URL, rec.Notes,
	)
	if err != nil {
		return 0, steelerr.Io("insert record", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, steelerr.Io("read inserted id", err)
	}
	return int(id), nil
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (Record, error) {
	row := s.db.QueryRow(
		`SELECT id, title, user, passphrase, url, notes FROM entries WHERE id = ?`, id,
	)
	return scanRecord(row)
}

// Update replaces every field of the record named by id with rec's fields.
// rec.ID is ignored; id identifies the target row.
func (s *Store) Update(id int, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	res, err := s.db.Exec(
		`UPDATE entries SET title = ?, user = ?, passphrase = ?, url = ?, notes = ? WHERE id = ?`,
		rec.Title, rec.User, rec.Passphrase, rec.URL, rec.Notes, id,
	)
	if err != nil {
		return steelerr.Io("update record", err)
	}
	return requireAffected(res, id)
}

// Delete removes the record named by id. The id is never reallocated:
// SQLite's AUTOINCREMENT keeps its high-water mark independent of row
// deletion.
func (s *Store) Delete(id int) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return steelerr.Io("delete record", err)
	}
	return requireAffected(res, id)
}

// List returns every record, ordered by id.
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, title, user, passphrase, url, notes FROM entries ORDER BY id`)
	if err != nil {
		return nil, steelerr.Io("list records", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, steelerr.Io("list records", err)
	}
	return out, nil
}

// Find returns every record whose title, user, url or notes contains
// substr, case-insensitively. The match is performed in Go rather than via
// SQL LIKE, to keep the match semantics exact and avoid wildcard-escaping
// pitfalls in user-supplied search text.
func (s *Store) Find(substr string) ([]Record, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(substr)
	var out []Record
	for _, rec := range all {
		if rec.matches(needle) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Title, &rec.User, &rec.Passphrase, &rec.URL, &rec.Notes)
	if err == sql.ErrNoRows {
		return Record{}, steelerr.NotFound("record")
	}
	if err != nil {
		return Record{}, steelerr.Io("scan record", err)
	}
	return rec, nil
}

func requireAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return steelerr.Io("read affected rows", err)
	}
	if n == 0 {
		return steelerr.NotFound("record")
	}
	return nil
}
