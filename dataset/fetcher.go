// Package dataset acquires the raw monthly demand series, caches it on disk and windows it into
// the recent history handed to the forecaster.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aouyang1/go-holtwinters/timedataset"
	"github.com/spf13/afero"
)

const (
	DefaultURL      = "https://raw.githubusercontent.com/selva86/datasets/master/AirPassengers.csv"
	DefaultDataDir  = "data"
	DefaultFilename = "air_passengers.csv"
	DefaultTimeout  = 30 * time.Second

	// upper bound on a downloaded dataset
	maxDownloadBytes = 16 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected http status")

// Fetcher downloads the raw dataset and keeps a copy under DataDir
type Fetcher struct {
	URL     string
	DataDir string
	Client  *http.Client
	Fs      afero.Fs
}

// NewFetcher returns a fetcher for url caching under dataDir on the host filesystem. Empty
// arguments fall back to the defaults.
func NewFetcher(url, dataDir string) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	return &Fetcher{
		URL:     url,
		DataDir: dataDir,
		Client:  &http.Client{Timeout: DefaultTimeout},
		Fs:      afero.NewOsFs(),
	}
}

func (f *Fetcher) fs() afero.Fs {
	if f.Fs == nil {
		return afero.NewOsFs()
	}
	return f.Fs
}

func (f *Fetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

// CachePath is where the raw dataset is stored
func (f *Fetcher) CachePath() string {
	return filepath.Join(f.DataDir, DefaultFilename)
}

// Load returns the parsed raw dataset. The cached copy is used unless it is missing or force is
// set, in which case the dataset is downloaded and the cache replaced.
func (f *Fetcher) Load(ctx context.Context, force bool) (*timedataset.TimeDataset, error) {
	fs := f.fs()
	path := f.CachePath()

	cached, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("unable to check cache %s, %w", path, err)
	}

	if cached && !force {
		slog.Debug("loading cached dataset", "path", path)
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("unable to read cache %s, %w", path, err)
		}
		td, err := ParseCSV(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("unable to parse %s, %w", path, err)
		}
		return td, nil
	}

	raw, err := f.Download(ctx)
	if err != nil {
		return nil, err
	}
	// a bad download never replaces the cache
	td, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("downloaded dataset is invalid, %w", err)
	}
	if err := f.writeCache(raw); err != nil {
		return nil, err
	}
	return td, nil
}

// Download fetches the raw csv without touching the cache
func (f *Fetcher) Download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for %s, %w", f.URL, err)
	}

	start := time.Now()
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download %s, %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d, %w", f.URL, resp.StatusCode, ErrUnexpectedStatus)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("unable to read response from %s, %w", f.URL, err)
	}
	slog.Info("downloaded dataset", "url", f.URL, "bytes", len(raw), "elapsed", time.Since(start).String())
	return raw, nil
}

func (f *Fetcher) writeCache(raw []byte) error {
	fs := f.fs()
	if err := fs.MkdirAll(f.DataDir, 0o755); err != nil {
		return fmt.Errorf("unable to create data directory %s, %w", f.DataDir, err)
	}
	if err := afero.WriteFile(fs, f.CachePath(), raw, 0o644); err != nil {
		return fmt.Errorf("unable to write cache %s, %w", f.CachePath(), err)
	}
	return nil
}

// WriteFile creates path on the fetcher's filesystem, including missing parent directories,
// and fills it with write
func (f *Fetcher) WriteFile(path string, write func(io.Writer) error) error {
	fs := f.fs()
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory %s, %w", dir, err)
		}
	}
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open %s, %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("unable to write %s, %w", path, err)
	}
	return file.Close()
}

// SaveCSV writes the dataset as csv to path on the fetcher's filesystem
func (f *Fetcher) SaveCSV(path string, td *timedataset.TimeDataset) error {
	return f.WriteFile(path, func(w io.Writer) error {
		return WriteCSV(w, td)
	})
}
