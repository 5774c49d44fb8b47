package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ArchiveStore persists timetable snapshots on disk under a base directory.
// Snapshots are flat files; names are generated by the caller.
type ArchiveStore struct {
	baseDir string
}

// SnapshotInfo describes one archived snapshot file.
type SnapshotInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// NewArchiveStore ensures the base directory exists and returns a handle.
func NewArchiveStore(baseDir string) (*ArchiveStore, error) {
	if baseDir == "" {
		baseDir = "./archives"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &ArchiveStore{baseDir: baseDir}, nil
}

// Save writes a snapshot and returns the stored name.
func (s *ArchiveStore) Save(name string, data []byte) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return name, nil
}

// Read returns the contents of a stored snapshot.
func (s *ArchiveStore) Read(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}

// Delete removes a snapshot if present.
func (s *ArchiveStore) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// List returns the stored snapshots, newest first.
func (s *ArchiveStore) List() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	infos := make([]SnapshotInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat snapshot: %w", err)
		}
		infos = append(infos, SnapshotInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ModTime.After(infos[j].ModTime) })
	return infos, nil
}

// CleanupOlderThan removes snapshots older than ttl and returns deleted names.
func (s *ArchiveStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	infos, err := s.List()
	if err != nil {
		return nil, err
	}
	deleted := make([]string, 0)
	for _, info := range infos {
		if info.ModTime.After(cutoff) {
			continue
		}
		if err := s.Delete(info.Name); err != nil {
			return deleted, err
		}
		deleted = append(deleted, info.Name)
	}
	return deleted, nil
}

// resolve rejects anything that would escape the base directory.
func (s *ArchiveStore) resolve(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.Contains(name, "..") || strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("invalid snapshot name %q", name)
	}
	return filepath.Join(s.baseDir, name), nil
}
