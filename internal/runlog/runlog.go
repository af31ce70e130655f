// Package runlog keeps a JSON-lines audit trail of report runs.
package runlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var mu sync.Mutex

type Entry struct {
	Time            string `json:"time"`
	Input           string `json:"input"`
	Instructions    int    `json:"instructions"`
	SettlementDates int    `json:"settlement_dates"`
	Lines           int    `json:"lines"`
	Format          string `json:"format"`
	Output          string `json:"output,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Log appends entries under dir/runs, one file per day.
type Log struct {
	dir string
	now func() time.Time
}

func New(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

func (l *Log) dailyFilepath(t time.Time) string {
	return filepath.Join(l.dir, "runs", t.Format("2006-01-02")+".txt")
}

// Append stamps e with the current time and writes it as one JSON line.
func (l *Log) Append(e Entry) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	now := l.now()
	e.Time = now.Format(time.RFC3339)
	p := l.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	_, err = fmt.Fprintln(f, string(b))
	return p, err
}

// CompressOlder gzips run logs last modified more than retentionDays ago and
// removes the originals. A retention of 0 keeps everything.
func (l *Log) CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	cutoff := l.now().AddDate(0, 0, -retentionDays)
	root := filepath.Join(l.dir, "runs")
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != ".txt" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !info.ModTime().Before(cutoff) {
			return nil
		}
		// an earlier run already produced the archive
		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			return os.Remove(p)
		}
		return compress(p, gz)
	})
}

func compress(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		_ = gw.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := gw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	in.Close()
	return os.Remove(src)
}
