package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
)

// MaterialMeta is the optional YAML frontmatter a material file may carry.
type MaterialMeta struct {
	Description string `yaml:"description"`
	Company     string `yaml:"company,omitempty"`
	Category    string `yaml:"category,omitempty"`
}

// Material is a parsed material file: metadata plus the body without
// frontmatter.
type Material struct {
	Name string
	Path string
	Meta MaterialMeta
	Body string
}

// ParseMaterial reads a material file and splits optional frontmatter from
// the body. Files without frontmatter parse as all-body with empty meta.
func ParseMaterial(path string) (Material, error) {
	content, err := ReadTextFile(path)
	if err != nil {
		return Material{}, fmt.Errorf("failed to read material: %w", err)
	}

	m := Material{
		Name: filepath.Base(path),
		Path: path,
		Body: content,
	}

	var meta MaterialMeta
	body, err := frontmatter.Parse(bytes.NewReader([]byte(content)), &meta)
	if err != nil {
		// Malformed frontmatter: treat the whole file as body
		return m, nil
	}
	m.Meta = meta
	m.Body = string(body)
	return m, nil
}

// ReadTextFile reads a file as UTF-8, decoding as Latin-1 when the bytes
// are not valid UTF-8. Older exported materials are sometimes Latin-1.
func ReadTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// ResolveMaterial finds a file in dir by name: exact match first, then
// with a .txt suffix added, then a case-insensitive substring match over
// the directory. The fuzzy step lets "fanduel" find
// "Resume_FanDuel_2026.txt".
func ResolveMaterial(dir, filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	exact := filepath.Join(dir, filepath.Base(filename))
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".txt") {
		withExt := exact + ".txt"
		if _, err := os.Stat(withExt); err == nil {
			return withExt, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", dir, err)
	}

	needle := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".txt") && strings.Contains(strings.ToLower(e.Name()), needle) {
			matches = append(matches, e.Name())
		}
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		return "", fmt.Errorf("no file matching %q in %s", filename, filepath.Base(dir))
	}
	return filepath.Join(dir, matches[0]), nil
}
