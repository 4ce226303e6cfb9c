package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/grindlemire/iconforge/internal/catalog"
)

func TestParseArgs(t *testing.T) {
	type tc struct {
		args     []string
		wantPos  []string
		wantAuto bool
		wantOut  string
	}

	tests := map[string]tc{
		"flags first": {
			args:     []string{"--auto", "-o", "dist", "in.json"},
			wantPos:  []string{"in.json"},
			wantAuto: true,
			wantOut:  "dist",
		},
		"flags after positional": {
			args:     []string{"in.json", "--auto"},
			wantPos:  []string{"in.json"},
			wantAuto: true,
			wantOut:  "output",
		},
		"interspersed": {
			args:    []string{"a", "-o", "x", "b"},
			wantPos: []string{"a", "b"},
			wantOut: "x",
		},
		"no args": {
			wantOut: "output",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			auto := fs.Bool("auto", false, "")
			out := fs.String("o", "output", "")

			pos, err := parseArgs(fs, tt.args)
			if err != nil {
				t.Fatalf("parseArgs() error = %v", err)
			}
			if !slices.Equal(pos, tt.wantPos) {
				t.Errorf("positional = %v, want %v", pos, tt.wantPos)
			}
			if *auto != tt.wantAuto {
				t.Errorf("auto = %v, want %v", *auto, tt.wantAuto)
			}
			if *out != tt.wantOut {
				t.Errorf("o = %q, want %q", *out, tt.wantOut)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "src", "App.vue"), "")
	writeFile(t, filepath.Join(dir, "src", "deep", "Button.tsx"), "")
	writeFile(t, filepath.Join(dir, "node_modules", "lib", "x.js"), "")
	writeFile(t, filepath.Join(dir, ".cache", "y.html"), "")

	type tc struct {
		paths []string
		want  []string
	}

	tests := map[string]tc{
		"directory is one level": {
			paths: []string{dir},
			want:  []string{filepath.Join(dir, "index.html")},
		},
		"recursive skips vendored and hidden": {
			paths: []string{dir + "/..."},
			want: []string{
				filepath.Join(dir, "index.html"),
				filepath.Join(dir, "src", "App.vue"),
				filepath.Join(dir, "src", "deep", "Button.tsx"),
			},
		},
		"explicit file of any extension": {
			paths: []string{filepath.Join(dir, "notes.txt")},
			want:  []string{filepath.Join(dir, "notes.txt")},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := collectFiles(tt.paths)
			if err != nil {
				t.Fatalf("collectFiles() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("collectFiles() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := collectFiles([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("collectFiles() on a missing path should fail")
	}
}

func TestCheckFile(t *testing.T) {
	cat, err := catalog.Parse([]byte(`[
		{"name": "if-home", "paths": ["M0 0"]},
		{"name": "if-star", "paths": ["M0 0"]},
		{"name": "is-red", "color": "#ff0000"}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	type tc struct {
		content string
		strict  bool
		want    int
	}

	tests := map[string]tc{
		"clean":                {content: `<i class="if-home is-red"></i>`},
		"unknown class":        {content: `<i class="if-home is-blue"></i>`, want: 1},
		"duplicate is a hint":  {content: `<i class="if-home if-star"></i>`},
		"strict counts hints":  {content: `<i class="if-home if-star"></i>`, strict: true, want: 1},
		"text outside markup":  {content: `if-nothing is-here`},
		"two unknown on lines": {content: "<i class=\"is-a\"></i>\n<i class=\"is-b\"></i>", want: 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "page.html")
			writeFile(t, path, tt.content)

			got, err := checkFile(path, cat, tt.strict)
			if err != nil {
				t.Fatalf("checkFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("checkFile() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "utilities.css")
	writeFile(t, input, ".is-red { color: #f00; }\n.is-size-2 { font-size: 2em; }")
	out := filepath.Join(dir, "out")

	if err := runConvert([]string{input, "-o", out}); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "output.json"))
	if err != nil {
		t.Fatal(err)
	}
	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "is-red" || records[0].Color != "#f00" {
		t.Errorf("records[0] = %+v", records[0])
	}

	if err := runConvert([]string{filepath.Join(dir, "x.txt")}); err == nil {
		t.Error("runConvert() on a missing file should fail")
	}
}

func TestMergeRecords(t *testing.T) {
	base, err := catalog.Parse([]byte(`[
		{"name": "if-home", "paths": ["M0 0"]},
		{"name": "is-red", "color": "#ff0000"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	icons := []catalog.Record{
		{Name: "if-home", Paths: []string{"M1 1"}},
		{Name: "if-star", Paths: []string{"M2 2"}},
	}

	got := mergeRecords(base, icons)
	names := make([]string, len(got))
	for i, r := range got {
		names[i] = r.Name
	}
	if want := []string{"if-home", "is-red", "if-star"}; !slices.Equal(names, want) {
		t.Fatalf("mergeRecords() names = %v, want %v", names, want)
	}
	if got[0].Paths[0] != "M0 0" {
		t.Errorf("existing if-home was replaced: %+v", got[0])
	}
}
