package check

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	MissLog  = "miss.log"
	DiffLog  = "diff.log"
	ExtraLog = "extra.log"
)

// LogFiles lists the files produced by WriteLogs.
var LogFiles = []string{MissLog, DiffLog, ExtraLog}

// RenderMisses writes one miss.log record per miss.
func RenderMisses(w io.Writer, misses []Miss) error {
	for _, m := range misses {
		if _, err := fmt.Fprintln(w, NewMissRecord(m).Line()); err != nil {
			return err
		}
	}
	return nil
}

// RenderDiffs writes two diff.log lines per diff.
func RenderDiffs(w io.Writer, diffs []Diff) error {
	for _, d := range diffs {
		for _, line := range DiffLines(d) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderExtras writes one extra.log line per extra.
func RenderExtras(w io.Writer, extras []Extra) error {
	for _, e := range extras {
		if _, err := fmt.Fprintln(w, ExtraLine(e)); err != nil {
			return err
		}
	}
	return nil
}

// WriteLogs (re)creates miss.log, diff.log and extra.log in dir.
// All three files exist afterwards, empty when there is nothing to report.
func WriteLogs(dir string, o *Outcome) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log dir: %w", err)
	}
	if err := writeLog(filepath.Join(dir, MissLog), func(w io.Writer) error { return RenderMisses(w, o.Misses) }); err != nil {
		return err
	}
	if err := writeLog(filepath.Join(dir, DiffLog), func(w io.Writer) error { return RenderDiffs(w, o.Diffs) }); err != nil {
		return err
	}
	return writeLog(filepath.Join(dir, ExtraLog), func(w io.Writer) error { return RenderExtras(w, o.Extras) })
}

func writeLog(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// RemoveLogs deletes the check logs from dir and returns the removed paths.
// Missing files are skipped.
func RemoveLogs(dir string) ([]string, error) {
	var removed []string
	for _, name := range LogFiles {
		p := filepath.Join(dir, name)
		err := os.Remove(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}
