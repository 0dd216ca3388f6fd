package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"subslikescript-crawler/internal/crawler"
	"subslikescript-crawler/internal/dataset"
	"subslikescript-crawler/pkg/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// DBService handles the movie index
type DBService struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// NewDBService opens (and if needed creates) the index at dbPath
func NewDBService(dbPath string) (*DBService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	sqlStmt := `CREATE TABLE IF NOT EXISTS movies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		year INTEGER,
		title_year TEXT,
		script TEXT,
		has_script BOOLEAN DEFAULT 0,
		source_file TEXT NOT NULL,
		line INTEGER NOT NULL,
		UNIQUE(source_file, line)
	);`
	if _, err := db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}

	log := logrus.StandardLogger()
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title);`,
		`CREATE INDEX IF NOT EXISTS idx_movies_year ON movies(year);`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			log.Warnf("Failed to create index: %v", err)
		}
	}

	return &DBService{db: db, log: log}, nil
}

// MovieFromRecord converts line number line of a batch file into an index row
func MovieFromRecord(r models.Record, sourceFile string, line int) models.Movie {
	m := models.Movie{SourceFile: sourceFile, Line: line}
	if r.TitleYear != nil {
		m.TitleYear = *r.TitleYear
		if title, year, ok := crawler.SplitTitleYear(*r.TitleYear); ok {
			m.Title, m.Year = title, year
		} else {
			m.Title = *r.TitleYear
		}
	}
	if r.Script != nil {
		m.Script = *r.Script
		m.HasScript = true
	}
	return m
}

// InsertMovies inserts multiple movies in a single transaction and returns
// how many rows were written. Rows already indexed for any source file in
// movies are replaced, so a rewritten batch file never leaves stale lines.
func (dbs *DBService) InsertMovies(movies []models.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}

	tx, err := dbs.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	replaced := map[string]bool{}
	for _, m := range movies {
		if replaced[m.SourceFile] {
			continue
		}
		if _, err := tx.Exec("DELETE FROM movies WHERE source_file = ?", m.SourceFile); err != nil {
			return 0, fmt.Errorf("clear %s: %w", m.SourceFile, err)
		}
		replaced[m.SourceFile] = true
	}

	stmt, err := tx.Prepare("INSERT INTO movies(title, year, title_year, script, has_script, source_file, line) values(?,?,?,?,?,?,?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, m := range movies {
		if _, err := stmt.Exec(m.Title, m.Year, m.TitleYear, m.Script, m.HasScript, m.SourceFile, m.Line); err != nil {
			return 0, fmt.Errorf("insert %s:%d: %w", m.SourceFile, m.Line, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// LoadBatchFile indexes every record of one batch file
func (dbs *DBService) LoadBatchFile(path string) (int, error) {
	records, err := dataset.ReadJSONL(path)
	if err != nil {
		return 0, err
	}

	source := filepath.Base(path)
	if len(records) == 0 {
		_, err := dbs.db.Exec("DELETE FROM movies WHERE source_file = ?", source)
		return 0, err
	}

	movies := make([]models.Movie, 0, len(records))
	for i, r := range records {
		movies = append(movies, MovieFromRecord(r, source, i+1))
	}
	return dbs.InsertMovies(movies)
}

// LoadDir indexes every batch file in dir, in page order
func (dbs *DBService) LoadDir(dir string) (int, error) {
	files, err := dataset.BatchFiles(dir)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, f := range files {
		n, err := dbs.LoadBatchFile(f)
		if err != nil {
			return total, err
		}
		dbs.log.WithField("file", f).Infof("Indexed %d movies", n)
		total += n
	}
	return total, nil
}

// Close closes the database connection
func (dbs *DBService) Close() {
	dbs.db.Close()
}

const movieColumns = "id, title, year, title_year, script, has_script, source_file, line"

// GetMoviesByPattern retrieves movies whose title matches a LIKE pattern
func (dbs *DBService) GetMoviesByPattern(pattern string, limit int) ([]models.Movie, error) {
	likePattern := "%" + pattern + "%"
	rows, err := dbs.db.Query(
		"SELECT "+movieColumns+" FROM movies WHERE title_year LIKE ? ORDER BY id LIMIT ?",
		likePattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovies(rows)
}

// GetLatestMovies retrieves the most recently indexed movies
func (dbs *DBService) GetLatestMovies(limit int) ([]models.Movie, error) {
	rows, err := dbs.db.Query(
		"SELECT "+movieColumns+" FROM movies ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovies(rows)
}

// GetMovieCount returns the total count and how many have a transcript
func (dbs *DBService) GetMovieCount() (total, withScript int, err error) {
	err = dbs.db.QueryRow("SELECT COUNT(*), COUNT(CASE WHEN has_script THEN 1 END) FROM movies").Scan(&total, &withScript)
	return
}

// GetMatchCount returns the count of movies matching a pattern
func (dbs *DBService) GetMatchCount(pattern string) (int, error) {
	likePattern := "%" + pattern + "%"
	var count int
	err := dbs.db.QueryRow("SELECT COUNT(*) FROM movies WHERE title_year LIKE ?", likePattern).Scan(&count)
	return count, err
}

// scanMovies reads all movie rows
func scanMovies(rows *sql.Rows) ([]models.Movie, error) {
	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.TitleYear, &m.Script, &m.HasScript, &m.SourceFile, &m.Line)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
