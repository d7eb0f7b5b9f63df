// Package store implements experiment Sinks that persist the records
// of an experiment in a database
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/experiment"
)

const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	episode INTEGER NOT NULL,
	steps INTEGER NOT NULL,
	score FLOAT NOT NULL,
	exploration FLOAT NOT NULL,
	duration_ns INTEGER NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	episode INTEGER NOT NULL,
	games INTEGER NOT NULL,
	average_score FLOAT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_episodes_episode ON episodes(episode);
`

// SQLite is an experiment.Sink that stores each episode and test
// record in a SQLite database
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the SQLite database at path, creating the database
// and its tables if needed
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "newSQLite: could not create directory")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "newSQLite: could not open database")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "newSQLite: could not create tables")
	}

	return &SQLite{db: db}, nil
}

// Episode stores an episode record
func (s *SQLite) Episode(e experiment.EpisodeRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO episodes (episode, steps, score, exploration, duration_ns)
		VALUES (?, ?, ?, ?, ?)`,
		e.Episode, e.Steps, e.Score, e.Exploration, int64(e.Duration),
	)
	return errors.Wrap(err, "episode")
}

// Test stores a test record
func (s *SQLite) Test(t experiment.TestRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO tests (episode, games, average_score)
		VALUES (?, ?, ?)`,
		t.Episode, t.Games, t.AverageScore,
	)
	return errors.Wrap(err, "test")
}

// Episodes returns all stored episode records in the order they were
// stored
func (s *SQLite) Episodes() ([]experiment.EpisodeRecord, error) {
	rows, err := s.db.Query(`
		SELECT episode, steps, score, exploration, duration_ns
		FROM episodes
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "episodes")
	}
	defer rows.Close()

	var records []experiment.EpisodeRecord
	for rows.Next() {
		var r experiment.EpisodeRecord
		var duration int64
		if err := rows.Scan(&r.Episode, &r.Steps, &r.Score, &r.Exploration,
			&duration); err != nil {
			return nil, errors.Wrap(err, "episodes")
		}
		r.Duration = time.Duration(duration)
		records = append(records, r)
	}
	return records, errors.Wrap(rows.Err(), "episodes")
}

// Tests returns all stored test records in the order they were stored
func (s *SQLite) Tests() ([]experiment.TestRecord, error) {
	rows, err := s.db.Query(`
		SELECT episode, games, average_score
		FROM tests
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "tests")
	}
	defer rows.Close()

	var records []experiment.TestRecord
	for rows.Next() {
		var r experiment.TestRecord
		if err := rows.Scan(&r.Episode, &r.Games,
			&r.AverageScore); err != nil {
			return nil, errors.Wrap(err, "tests")
		}
		records = append(records, r)
	}
	return records, errors.Wrap(rows.Err(), "tests")
}

// BestScore returns the highest score of any stored episode and
// whether any episode is stored at all
func (s *SQLite) BestScore() (float64, bool, error) {
	var best sql.NullFloat64
	if err := s.db.QueryRow("SELECT MAX(score) FROM episodes").Scan(
		&best); err != nil {
		return 0, false, errors.Wrap(err, "bestScore")
	}
	return best.Float64, best.Valid, nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return errors.Wrap(s.db.Close(), "close")
}
