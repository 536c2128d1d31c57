package seed

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var errMissingFile = errors.New("seed file does not exist")

// row is one CSV record keyed by header.
type row map[string]string

// get returns the trimmed value of column key, or "" when absent.
func (r row) get(key string) string {
	return strings.TrimSpace(r[key])
}

// require returns errSkip naming the first empty column of keys.
func (r row) require(keys ...string) error {
	for _, k := range keys {
		if r.get(k) == "" {
			return errors.Wrapf(errSkip, "missing %s", k)
		}
	}

	return nil
}

func (r row) id(key string) (uint, error) {
	v, err := strconv.ParseUint(r.get(key), 10, 64)
	if err != nil || v == 0 {
		return 0, errors.Wrapf(errSkip, "invalid %s %q", key, r.get(key))
	}

	return uint(v), nil
}

// date parses column key. An empty column yields nil.
func (r row) date(key string) (*time.Time, error) {
	v := r.get(key)
	if v == "" {
		return nil, nil //nolint:nilnil
	}

	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, errors.Wrapf(errSkip, "invalid %s %q", key, v)
	}

	return &t, nil
}

// dateOr parses column key, falling back to def when it is empty.
func (r row) dateOr(key string, def time.Time) (time.Time, error) {
	t, err := r.date(key)
	if err != nil || t == nil {
		return def, err
	}

	return *t, nil
}

// flag parses a boolean column. Empty means false.
func (r row) flag(key string) (bool, error) {
	v := r.get(key)
	if v == "" {
		return false, nil
	}

	switch strings.ToLower(v) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(errSkip, "invalid %s %q", key, v)
	}

	return b, nil
}

// readCSV reads a file with a header line into rows.
func readCSV(path string) ([]row, error) {
	f, err := os.Open(path) //nolint:gosec
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errMissingFile
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}

	defer func() { _ = f.Close() }()

	return parseCSV(f, path)
}

func parseCSV(r io.Reader, path string) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", path)
	}

	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	rows := []row{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}

		r := make(row, len(header))
		for i, h := range header {
			if i < len(record) {
				r[h] = record[i]
			}
		}

		rows = append(rows, r)
	}

	return rows, nil
}
