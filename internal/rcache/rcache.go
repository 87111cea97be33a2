// Package rcache is a disk cache that maps a build log's raw content hash to
// its already-parsed report.Result, so re-running `parse` on the same log
// skips the detector and dialect parser entirely. It is adapted from the
// teacher's module disk cache: same on-disk layout (sha256-named MessagePack
// files under a results/ subdirectory, each payload carrying its schema
// version, atomic temp-then-rename writes), generalized from caching
// project.ModuleMeta to caching report.Result. Timing.StartTime and
// Timing.EndTime are not stored; a cached result comes back with both zero.
package rcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"buildreport/internal/report"
)

// schemaVersion increments whenever DiskPayload's shape changes, so stale
// entries from an older binary are ignored rather than misdecoded.
const schemaVersion uint16 = 1

// Digest is a raw-input content hash, used as the cache key.
type Digest [sha256.Size]byte

// HashInput computes the cache key for a raw build log. Per SPEC_FULL.md,
// the key covers only the input bytes — CLI flags like --format or --jobs do
// not affect the parsed result and so are excluded from the key.
func HashInput(input string) Digest {
	return sha256.Sum256([]byte(input))
}

// DiskPayload is the on-disk encoding of a cached report.Result.
type DiskPayload struct {
	Schema      uint16
	Format      uint8
	Status      uint8
	Diagnostics []diagnosticPayload
	Metrics     metricsPayload
	Timing      timingPayload
	SPMInfo     *spmInfoPayload
}

type diagnosticPayload struct {
	Severity uint8
	Category uint8
	Message  string
	Location string
	FilePath string
	Line     int
	Column   int
}

type metricsPayload struct {
	ErrorCount    int
	WarningCount  int
	InfoCount     int
	CompiledFiles []string
	TargetCount   int
	TotalDuration float64
}

type timingPayload struct {
	TotalDuration float64
}

type targetPayload struct {
	Name         string
	Type         string
	Dependencies []string
}

type dependencyPayload struct {
	Name    string
	Version string
	Type    uint8
	URL     string
}

type spmInfoPayload struct {
	Command      string
	Success      bool
	PackageName  string
	Version      string
	Targets      []targetPayload
	Dependencies []dependencyPayload
}

// Cache is a thread-safe on-disk store of report.Result, keyed by Digest.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache rooted at dir, creating it if necessary.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "buildreport")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "results", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes res under key.
func (c *Cache) Put(key Digest, res report.Result) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(toPayload(res)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes the result stored under key, if any.
func (c *Cache) Get(key Digest) (report.Result, bool, error) {
	if c == nil {
		return report.Result{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return report.Result{}, false, nil
		}
		return report.Result{}, false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return report.Result{}, false, err
	}
	if payload.Schema != schemaVersion {
		return report.Result{}, false, nil
	}
	return fromPayload(payload), true, nil
}

func toPayload(res report.Result) DiskPayload {
	p := DiskPayload{
		Schema: schemaVersion,
		Format: uint8(res.Format),
		Status: uint8(res.Status),
		Metrics: metricsPayload{
			ErrorCount:    res.Metrics.ErrorCount,
			WarningCount:  res.Metrics.WarningCount,
			InfoCount:     res.Metrics.InfoCount,
			CompiledFiles: res.Metrics.CompiledFiles,
			TargetCount:   res.Metrics.TargetCount,
			TotalDuration: res.Metrics.TotalDuration,
		},
		Timing: timingPayload{TotalDuration: res.Timing.TotalDuration},
	}
	for _, d := range res.Diagnostics {
		p.Diagnostics = append(p.Diagnostics, diagnosticPayload{
			Severity: uint8(d.Severity),
			Category: uint8(d.Category),
			Message:  d.Message,
			Location: d.Location,
			FilePath: d.FilePath,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	if res.SPMInfo != nil {
		info := &spmInfoPayload{
			Command:     res.SPMInfo.Command,
			Success:     res.SPMInfo.Success,
			PackageName: res.SPMInfo.PackageName,
			Version:     res.SPMInfo.Version,
		}
		for _, t := range res.SPMInfo.Targets {
			info.Targets = append(info.Targets, targetPayload{Name: t.Name, Type: t.Type, Dependencies: t.Dependencies})
		}
		for _, d := range res.SPMInfo.Dependencies {
			info.Dependencies = append(info.Dependencies, dependencyPayload{Name: d.Name, Version: d.Version, Type: uint8(d.Type), URL: d.URL})
		}
		p.SPMInfo = info
	}
	return p
}

func fromPayload(p DiskPayload) report.Result {
	res := report.New(report.Format(p.Format))
	res.Status = report.Status(p.Status)
	res.Metrics.ErrorCount = p.Metrics.ErrorCount
	res.Metrics.WarningCount = p.Metrics.WarningCount
	res.Metrics.InfoCount = p.Metrics.InfoCount
	res.Metrics.CompiledFiles = p.Metrics.CompiledFiles
	res.Metrics.TargetCount = p.Metrics.TargetCount
	res.Metrics.TotalDuration = p.Metrics.TotalDuration
	res.Timing.TotalDuration = p.Timing.TotalDuration

	for _, d := range p.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, report.Diagnostic{
			Severity: report.Severity(d.Severity),
			Category: report.Category(d.Category),
			Message:  d.Message,
			Location: d.Location,
			FilePath: d.FilePath,
			Line:     d.Line,
			Column:   d.Column,
		})
	}
	if p.SPMInfo != nil {
		info := &report.SPMInfo{
			Command:     p.SPMInfo.Command,
			Success:     p.SPMInfo.Success,
			PackageName: p.SPMInfo.PackageName,
			Version:     p.SPMInfo.Version,
		}
		for _, t := range p.SPMInfo.Targets {
			info.Targets = append(info.Targets, report.Target{Name: t.Name, Type: t.Type, Dependencies: t.Dependencies})
		}
		for _, d := range p.SPMInfo.Dependencies {
			info.Dependencies = append(info.Dependencies, report.Dependency{Name: d.Name, Version: d.Version, Type: report.DependencyType(d.Type), URL: d.URL})
		}
		res.SPMInfo = info
	}
	return res
}
