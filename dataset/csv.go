package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sbezverk/sortbench/record"
)

const (
	// FieldsPerRecord is the number of comma separated fields of every dataset line
	FieldsPerRecord = 4
	// MaxLineLen bounds a single dataset line
	MaxLineLen = 1024 * 1024
)

var (
	// ErrMalformedRecord is returned when a dataset line cannot be turned into a record
	ErrMalformedRecord = errors.New("malformed record")
)

// Read parses every line of r into a record. Lines are split on commas as
// they are, quotes and spaces are part of the field. Blank lines are
// skipped; the first malformed line stops the read and is reported by its
// line number in r.
func Read(r io.Reader) ([]record.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLen)
	var recs []record.Record
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		rec, err := parse(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func parse(line string) (record.Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != FieldsPerRecord {
		return record.Record{}, fmt.Errorf("expected %d fields, got %d", FieldsPerRecord, len(fields))
	}
	salary, err := strconv.Atoi(fields[3])
	if err != nil {
		return record.Record{}, fmt.Errorf("invalid salary %q", fields[3])
	}
	return record.Record{
		Name:   fields[0],
		Job:    fields[1],
		Unit:   fields[2],
		Salary: salary,
	}, nil
}

// Write emits recs to w in the same format Read accepts, one record per
// line. A text field holding a comma or a line break cannot be represented
// and fails the write.
func Write(w io.Writer, recs []record.Record) error {
	for i, r := range recs {
		for _, f := range []string{r.Name, r.Job, r.Unit} {
			if strings.ContainsAny(f, ",\r\n") {
				return fmt.Errorf("%w: record %d: field %q holds a separator", ErrMalformedRecord, i+1, f)
			}
		}
		if _, err := io.WriteString(w, r.String()+"\n"); err != nil {
			return err
		}
	}
	return nil
}
