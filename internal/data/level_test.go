package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLevels(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "levels.yaml", `levels:
  - id: 4
    title: "ＡＮＤ Gate"
    width: 3
    height: 2
  - id: 2
    title: Plain
    width: 2
    height: 1
`)
	writeFile(t, dir, "4.txt", "# bottom row first\n2,0,3\n\n1, 1 ,1\n")
	writeFile(t, dir, "2.txt", "2,3\n")

	levels, err := LoadLevels(list, dir)
	if err != nil {
		t.Fatal(err)
	}
	if levels.Count() != 2 {
		t.Fatalf("Count = %d, want 2", levels.Count())
	}
	if ids := levels.IDs(); len(ids) != 2 || ids[0] != 2 || ids[1] != 4 {
		t.Errorf("IDs = %v, want [2 4]", ids)
	}

	l, ok := levels.Get(4)
	if !ok {
		t.Fatal("level 4 missing")
	}
	if l.Title() != "AND Gate" {
		t.Errorf("Title = %q, want folded %q", l.Title(), "AND Gate")
	}
	want := []int{2, 0, 3, 1, 1, 1}
	got := l.Layout()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Layout = %v, want %v", got, want)
		}
	}
	got[0] = 9
	if l.Layout()[0] != 2 {
		t.Error("Layout returned shared storage")
	}

	if _, ok := levels.Get(3); ok {
		t.Error("Get(3) found a level")
	}
}

func TestLoadLevels_rejects(t *testing.T) {
	for name, list := range map[string]string{
		"unknown field":  "levels:\n  - {id: 1, title: a, width: 1, height: 1, color: red}\n",
		"zero width":     "levels:\n  - {id: 1, title: a, width: 0, height: 1}\n",
		"too tall":       "levels:\n  - {id: 1, title: a, width: 1, height: 513}\n",
		"missing title":  "levels:\n  - {id: 1, width: 1, height: 1}\n",
		"no levels key":  "stages: []\n",
		"duplicate id":   "levels:\n  - {id: 1, title: a, width: 1, height: 1}\n  - {id: 1, title: b, width: 1, height: 1}\n",
		"missing layout": "levels:\n  - {id: 7, title: a, width: 1, height: 1}\n",
		"bad yaml":       "levels: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "1.txt", "0\n")
			path := writeFile(t, dir, "levels.yaml", list)
			if _, err := LoadLevels(path, dir); err == nil {
				t.Error("LoadLevels succeeded")
			}
		})
	}
}

func TestParseLayout_errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		msg  string
	}{
		{"short row", "0,0\n0\n", "row 1: 1 values"},
		{"too many rows", "0,0\n0,0\n0,0\n", "more than 2 rows"},
		{"too few rows", "0,0\n", "1 rows, want 2"},
		{"not a number", "0,x\n0,0\n", "row 0 col 1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout(strings.NewReader(tc.in), 2, 2)
			if err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error = %v, want it to mention %q", err, tc.msg)
			}
		})
	}
}

func TestParseLayout_badSize(t *testing.T) {
	for _, size := range [][2]int{{0, 2}, {2, 0}, {-1, 3}, {3, -4}} {
		_, err := ParseLayout(strings.NewReader("0\n"), size[0], size[1])
		if err == nil || !strings.Contains(err.Error(), "must be positive") {
			t.Errorf("ParseLayout(%dx%d) error = %v", size[0], size[1], err)
		}
	}
}

func TestShippedLevels(t *testing.T) {
	root := filepath.Join("..", "..", "data")
	levels, err := LoadLevels(filepath.Join(root, "yaml", "level_list.yaml"), filepath.Join(root, "levels"))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range levels.IDs() {
		l, _ := levels.Get(id)
		if n := len(l.Layout()); n != l.Info.Width*l.Info.Height {
			t.Errorf("level %d: %d cells for %dx%d", id, n, l.Info.Width, l.Info.Height)
		}
	}
}
