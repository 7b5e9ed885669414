package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/domain/repository"

	"gopkg.in/yaml.v3"
)

// FileTimezoneRepository reads airport timezones from a mapping file.
// Files ending in .yaml or .yml hold a CODE: Zone/Name mapping; any other file
// holds one "CODE Zone/Name" pair per line.
type FileTimezoneRepository struct {
	path string
}

// NewFileTimezoneRepository creates a new file-backed timezone repository
func NewFileTimezoneRepository(path string) repository.TimezoneRepository {
	return &FileTimezoneRepository{path: path}
}

// ListAll parses the whole mapping file
func (r *FileTimezoneRepository) ListAll(ctx context.Context) ([]entity.Timezone, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open timezone map: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".yaml", ".yml":
		return ParseTimezoneYAML(f)
	default:
		return ParseTimezoneText(f)
	}
}

// ParseTimezoneText reads whitespace separated "CODE Zone/Name" lines.
// Blank lines, lines starting with '#' and lines without exactly two fields are ignored.
func ParseTimezoneText(r io.Reader) ([]entity.Timezone, error) {
	var zones []entity.Timezone

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		zones = append(zones, entity.Timezone{
			AirportCode: strings.ToUpper(parts[0]),
			TzName:      parts[1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read timezone map: %w", err)
	}
	return zones, nil
}

// ParseTimezoneYAML reads a YAML mapping of airport code to zone name
func ParseTimezoneYAML(r io.Reader) ([]entity.Timezone, error) {
	var mapping map[string]string
	if err := yaml.NewDecoder(r).Decode(&mapping); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode timezone map: %w", err)
	}

	zones := make([]entity.Timezone, 0, len(mapping))
	for code, tz := range mapping {
		zones = append(zones, entity.Timezone{
			AirportCode: strings.ToUpper(strings.TrimSpace(code)),
			TzName:      strings.TrimSpace(tz),
		})
	}
	return zones, nil
}
