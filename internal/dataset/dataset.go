package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"subslikescript-crawler/pkg/models"

	"github.com/goccy/go-json"
)

// FilePrefix is the common prefix of every batch file name
const FilePrefix = "movie_dataset_page_"

var batchNameRe = regexp.MustCompile(`^movie_dataset_page_(\d+)_to_page_(\d+)\.jsonl$`)

// Batch identifies the inclusive range of listing pages flushed to one file
type Batch struct {
	StartPage int
	EndPage   int
}

// FileName returns the batch file name for the page range
func (b Batch) FileName() string {
	return fmt.Sprintf("%s%d_to_page_%d.jsonl", FilePrefix, b.StartPage, b.EndPage)
}

// ParseBatchFileName recovers the page range from a batch file name
func ParseBatchFileName(name string) (Batch, bool) {
	m := batchNameRe.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return Batch{}, false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return Batch{StartPage: start, EndPage: end}, true
}

// WriteJSONL writes records to path, one JSON object per line.
// An existing file is truncated.
func WriteJSONL(path string, records []models.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return w.Flush()
}

// ReadJSONL reads every record of a batch file in order
func ReadJSONL(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []models.Record
	dec := json.NewDecoder(bufio.NewReader(f))
	for dec.More() {
		var r models.Record
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode %s record %d: %w", path, len(records), err)
		}
		records = append(records, r)
	}
	return records, nil
}

// BatchFiles lists the batch files in dir ordered by start page
func BatchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type named struct {
		path  string
		batch Batch
	}
	var found []named
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, ok := ParseBatchFileName(e.Name())
		if !ok {
			continue
		}
		found = append(found, named{path: filepath.Join(dir, e.Name()), batch: b})
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].batch.StartPage < found[j].batch.StartPage
	})

	paths := make([]string, 0, len(found))
	for _, n := range found {
		paths = append(paths, n.path)
	}
	return paths, nil
}
