package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/sbezverk/sortbench/record"
	"github.com/sbezverk/sortbench/sort"
)

const (
	// DefaultPattern names the i-th dataset file
	DefaultPattern = "dataset_%d.csv"
	plotsDir       = "plots"
)

// Loader reads numbered datasets from a directory.
type Loader struct {
	Dir     string
	Pattern string
}

// NewLoader returns a Loader for dir using DefaultPattern.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, Pattern: DefaultPattern}
}

// Path returns the file the dataset with the given index is read from.
func (l *Loader) Path(index int) string {
	pattern := l.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return filepath.Join(l.Dir, fmt.Sprintf(pattern, index))
}

// Load reads the dataset with the given index. A missing file is an error.
func (l *Loader) Load(index int) ([]record.Record, error) {
	fn := l.Path(index)
	f, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s with error: %w", fn, err)
	}
	defer f.Close()
	recs, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s with error: %w", fn, err)
	}
	glog.V(5).Infof("loaded %d records from %s", len(recs), fn)

	return recs, nil
}

// Sink writes sorted datasets under Root, one sub-directory per algorithm.
type Sink struct {
	Root    string
	Pattern string
}

// NewSink returns a Sink rooted at root using DefaultPattern.
func NewSink(root string) *Sink {
	return &Sink{Root: root, Pattern: DefaultPattern}
}

// Path returns the file the given algorithm's sorted dataset is written to.
func (s *Sink) Path(algorithm string, index int) (string, error) {
	a, err := sort.Parse(algorithm)
	if err != nil {
		return "", err
	}
	pattern := s.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return filepath.Join(s.Root, a.OutputDir(), fmt.Sprintf(pattern, index)), nil
}

func (s *Sink) Write(algorithm string, index int, recs []record.Record) error {
	fn, err := s.Path(algorithm, index)
	if err != nil {
		return err
	}
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("failed to create output %s with error: %w", fn, err)
	}
	w := bufio.NewWriter(f)
	if err := Write(w, recs); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output %s with error: %w", fn, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output %s with error: %w", fn, err)
	}
	return f.Close()
}

// Prepare removes root and recreates the output tree: one directory per
// algorithm plus plots/svg and plots/jpg.
func Prepare(root string) error {
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("failed to remove %s with error: %w", root, err)
	}
	dirs := []string{
		filepath.Join(root, plotsDir, "svg"),
		filepath.Join(root, plotsDir, "jpg"),
	}
	for _, a := range sort.Names() {
		dirs = append(dirs, filepath.Join(root, a.OutputDir()))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create %s with error: %w", d, err)
		}
	}
	glog.Infof("output tree prepared under %s", root)

	return nil
}
