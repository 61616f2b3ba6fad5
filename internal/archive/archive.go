package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// sidecarSuffixes are files SQLite keeps next to a database
var sidecarSuffixes = []string{"-journal", "-wal", "-shm"}

// ArchiveStore moves the local store file into an archive directory next to
// it, so the next run starts with no saved sets. It returns the archive path.
func ArchiveStore(storePath string) (string, error) {
	if _, err := os.Stat(storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store file does not exist: %s", storePath)
	}

	parentDir := filepath.Dir(storePath)
	archiveDir := filepath.Join(parentDir, "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(storePath)
	base := strings.TrimSuffix(filepath.Base(storePath), ext)

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, timestamp, ext))

	// Add microseconds when archiving twice within a second
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", base, timestamp, ext))
	}

	if err := os.Rename(storePath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive store: %w", err)
	}
	for _, suffix := range sidecarSuffixes {
		if _, err := os.Stat(storePath + suffix); err == nil {
			if err := os.Rename(storePath+suffix, archivePath+suffix); err != nil {
				return archivePath, fmt.Errorf("failed to archive %s: %w", filepath.Base(storePath+suffix), err)
			}
		}
	}

	return archivePath, nil
}
