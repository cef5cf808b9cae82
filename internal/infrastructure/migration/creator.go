package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	migrationFileRe = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)
	nonWordRe       = regexp.MustCompile(`[^a-z0-9]+`)
)

// MigrationFile is a created up/down pair
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down pair numbered after the highest existing version
func CreateMigration(migrationsDir, name string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(migrationsDir)
	if err != nil {
		return nil, err
	}
	next := 1
	if len(existing) > 0 {
		last := migrationFileRe.FindStringSubmatch(existing[len(existing)-1] + ".up.sql")
		n, _ := strconv.Atoi(last[1])
		next = n + 1
	}

	version := fmt.Sprintf("%06d", next)
	base := filepath.Join(migrationsDir, version+"_"+slug)
	mf := &MigrationFile{
		Version:  version,
		Name:     slug,
		UpPath:   base + ".up.sql",
		DownPath: base + ".down.sql",
	}

	if err := os.WriteFile(mf.UpPath, []byte("-- "+name+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := os.WriteFile(mf.DownPath, []byte("-- rollback "+name+"\n"), 0o644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

// ListMigrations returns migration base names (version_name) in version order
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !migrationFileRe.MatchString(entry.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}

func sanitizeName(name string) string {
	return strings.Trim(nonWordRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
}
