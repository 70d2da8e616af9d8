// Package dataset loads energy surplus sequences from CSV sources and
// discovers the benchmark input files available in a data directory.
//
// Input files are named data_list_<size>.csv and contain a single numeric
// column named "Value"; the loader preserves row order. A source that cannot
// be read or parsed yields a typed LoadError so callers can distinguish
// "source unavailable" from a readable-but-empty source.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	apperrors "github.com/logreen/gridsum/internal/errors"
)

// ValueColumn is the required header of the single numeric column.
const ValueColumn = "Value"

// sourcePattern matches benchmark input file names and captures the
// embedded sequence size.
var sourcePattern = regexp.MustCompile(`^data_list_(\d+)\.csv$`)

// Source identifies one discovered benchmark input.
type Source struct {
	// Size is the nominal sequence length embedded in the file name.
	Size int
	// Path is the absolute or directory-relative file path.
	Path string
}

// Discover scans dir for data_list_<size>.csv files and returns them in
// ascending size order. Files that do not match the naming scheme are
// ignored. An unreadable directory is a hard error: without it there is
// nothing to analyze.
func Discover(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.WrapError(err, "discovering inputs in %q", dir)
	}

	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := sourcePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		size, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		sources = append(sources, Source{Size: size, Path: filepath.Join(dir, entry.Name())})
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Size < sources[j].Size })
	return sources, nil
}

// Loader produces an ordered sequence of integers for a source path.
// The interface exists so the analyzer can be tested without touching
// the filesystem.
type Loader interface {
	Load(path string) ([]int64, error)
}

// CSVLoader reads sequences from CSV files with a Value column.
type CSVLoader struct{}

// Load reads the ordered Value column from the CSV file at path.
//
// Failures (missing file, missing column, non-integer cell) return a
// LoadError identifying the source. A well-formed file with a header and no
// data rows returns an empty, non-nil slice and no error.
func (CSVLoader) Load(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewLoadError(path, err)
	}
	defer f.Close()

	values, err := readValues(f)
	if err != nil {
		return nil, apperrors.NewLoadError(path, err)
	}
	return values, nil
}

// readValues parses the Value column from CSV content.
func readValues(r io.Reader) ([]int64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count validated against the header below

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}

	col := -1
	for i, name := range header {
		if name == ValueColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no %q column in header %v", ValueColumn, header)
	}

	values := make([]int64, 0, 64)
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if col >= len(record) {
			return nil, fmt.Errorf("row %d: missing %q field", row, ValueColumn)
		}
		v, err := strconv.ParseInt(record[col], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		values = append(values, v)
	}
	return values, nil
}
