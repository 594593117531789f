package data

import (
	"bufio"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/width"
	"gopkg.in/yaml.v3"
)

//go:embed schema/level_list.schema.json
var levelListSchema string

// LevelInfo holds metadata for a single level, loaded from level_list.yaml.
type LevelInfo struct {
	ID     int    `yaml:"id"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Level is a level's metadata plus its marker layout.
type Level struct {
	Info   LevelInfo
	layout []int // row-major, index = y*width + x
}

// Title returns the level title folded to narrow width for terminal display.
func (l *Level) Title() string {
	return width.Fold.String(l.Info.Title)
}

// Layout returns a copy of the row-major marker layout.
func (l *Level) Layout() []int {
	out := make([]int, len(l.layout))
	copy(out, l.layout)
	return out
}

// LevelTable provides level lookups by ID.
type LevelTable struct {
	levels map[int]*Level
}

type levelListFile struct {
	Levels []LevelInfo `yaml:"levels"`
}

// LoadLevels loads level metadata from YAML and layouts from text files.
// listPath: path to level_list.yaml
// tilesDir: directory containing {id}.txt layout files
func LoadLevels(listPath, tilesDir string) (*LevelTable, error) {
	raw, err := os.ReadFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read level list %s: %w", listPath, err)
	}
	file, err := parseLevelList(raw)
	if err != nil {
		return nil, fmt.Errorf("level list %s: %w", listPath, err)
	}

	table := &LevelTable{levels: make(map[int]*Level, len(file.Levels))}
	for _, info := range file.Levels {
		if _, dup := table.levels[info.ID]; dup {
			return nil, fmt.Errorf("level list %s: duplicate level id %d", listPath, info.ID)
		}
		layout, err := loadLayoutFile(tilesDir, info)
		if err != nil {
			return nil, err
		}
		table.levels[info.ID] = &Level{Info: info, layout: layout}
	}
	return table, nil
}

// parseLevelList validates raw against the level list schema and decodes it.
func parseLevelList(raw []byte) (*levelListFile, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	// The validator wants JSON value types.
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	schema, err := jsonschema.CompileString("level_list.schema.json", levelListSchema)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var file levelListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &file, nil
}

func loadLayoutFile(dir string, info LevelInfo) ([]int, error) {
	path := filepath.Join(dir, strconv.Itoa(info.ID)+".txt")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	layout, err := ParseLayout(f, info.Width, info.Height)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

// ParseLayout reads a comma separated marker layout: one line per grid row,
// the first row being y = 0. Blank lines and lines starting with '#' are
// skipped. Every row must hold exactly w values and there must be h rows.
func ParseLayout(r io.Reader, w, h int) ([]int, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("layout size %dx%d must be positive", w, h)
	}
	layout := make([]int, 0, w*h)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	y := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if y >= h {
			return nil, fmt.Errorf("more than %d rows", h)
		}
		toks := strings.Split(line, ",")
		if len(toks) != w {
			return nil, fmt.Errorf("row %d: %d values, want %d", y, len(toks), w)
		}
		for x, tok := range toks {
			v, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			layout = append(layout, v)
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if y != h {
		return nil, fmt.Errorf("%d rows, want %d", y, h)
	}
	return layout, nil
}

// Count returns the number of levels loaded.
func (t *LevelTable) Count() int {
	return len(t.levels)
}

// Get returns the level with the given ID.
func (t *LevelTable) Get(id int) (*Level, bool) {
	l, ok := t.levels[id]
	return l, ok
}

// IDs returns the loaded level IDs in ascending order.
func (t *LevelTable) IDs() []int {
	ids := make([]int, 0, len(t.levels))
	for id := range t.levels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
