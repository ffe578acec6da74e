// Package backup makes point-in-time copies of the sqlite database and
// prunes old ones.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Manager copies the database file into a backup directory and keeps
// only the newest N copies.
type Manager struct {
	DBPath string
	Dir    string
	Keep   int
}

// New builds a Manager. keep <= 0 disables pruning.
func New(dbPath, dir string, keep int) *Manager {
	return &Manager{DBPath: dbPath, Dir: dir, Keep: keep}
}

// Run takes one backup and prunes. Returns the path of the new copy.
// The timestamped name sorts chronologically; the uuid suffix keeps two
// backups in the same second from colliding.
func (m *Manager) Run() (string, error) {
	if err := os.MkdirAll(m.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	stamp := time.Now().Format("20060102-150405")
	name := fmt.Sprintf("dailyroll-%s-%s.db", stamp, uuid.NewString()[:8])
	dest := filepath.Join(m.Dir, name)

	if err := copyFile(m.DBPath, dest); err != nil {
		return "", err
	}

	if err := m.prune(); err != nil {
		return dest, err
	}
	return dest, nil
}

// List returns existing backup paths, newest first.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "dailyroll-") || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		paths = append(paths, filepath.Join(m.Dir, e.Name()))
	}
	// Timestamped names sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func (m *Manager) prune() error {
	if m.Keep <= 0 {
		return nil
	}
	paths, err := m.List()
	if err != nil {
		return err
	}
	for _, p := range paths[min(m.Keep, len(paths)):] {
		if err := os.Remove(p); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dest)
		return fmt.Errorf("copy database: %w", err)
	}
	return out.Sync()
}
