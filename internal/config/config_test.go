package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"ICONFORGE_DATA", "ICONFORGE_DEBOUNCE", "ICONFORGE_LANGUAGES", "ICONFORGE_DIAGNOSTICS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.DataPath != "data/iconforge.data.json" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if !reflect.DeepEqual(cfg.Languages, DefaultLanguages) {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.PreviewSize != 64 || cfg.PreviewPadding != 8 {
		t.Errorf("preview = %d/%d", cfg.PreviewSize, cfg.PreviewPadding)
	}
	if !cfg.Diagnostics {
		t.Error("Diagnostics default should be true")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ICONFORGE_DATA", "/srv/icons.json")
	t.Setenv("ICONFORGE_DEBOUNCE", "250ms")
	t.Setenv("ICONFORGE_LANGUAGES", "html,templ")
	t.Setenv("ICONFORGE_DIAGNOSTICS", "false")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.DataPath != "/srv/icons.json" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"html", "templ"}) {
		t.Errorf("Languages = %v", cfg.Languages)
	}
	if cfg.Diagnostics {
		t.Error("Diagnostics should be false")
	}
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("ICONFORGE_DEBOUNCE", "soon")
	if _, err := FromEnv(); err == nil {
		t.Error("expected an error for an invalid duration")
	}
}

func TestMergeSources(t *testing.T) {
	type tc struct {
		file     string
		initOpts string
		want     func(Config) bool
		wantErr  bool
	}

	tests := map[string]tc{
		"no file": {
			want: func(c Config) bool { return c.DataPath == "data/iconforge.data.json" },
		},
		"file overrides env": {
			file: "data: assets/classes.json\ndebounce: 1s\nlanguages: [html]\n",
			want: func(c Config) bool {
				return c.DataPath == "assets/classes.json" && c.Debounce == time.Second && len(c.Languages) == 1
			},
		},
		"init options override file": {
			file:     "data: assets/classes.json\n",
			initOpts: `{"dataPath": "/abs/data.json", "debounce": "100ms", "previewSize": 48}`,
			want: func(c Config) bool {
				return c.DataPath == "/abs/data.json" && c.Debounce == 100*time.Millisecond && c.PreviewSize == 48
			},
		},
		"null init options": {
			initOpts: `null`,
			want:     func(c Config) bool { return c.DataPath == "data/iconforge.data.json" },
		},
		"bad yaml": {
			file:    "data: [unterminated\n",
			wantErr: true,
		},
		"bad init debounce": {
			initOpts: `{"debounce": "later"}`,
			wantErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("ICONFORGE_DATA", "")
			t.Setenv("ICONFORGE_DEBOUNCE", "")
			os.Unsetenv("ICONFORGE_DATA")
			os.Unsetenv("ICONFORGE_DEBOUNCE")
			root := t.TempDir()
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(root, FileName), []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := Load(root)
			if err == nil && tt.initOpts != "" {
				err = cfg.MergeJSON([]byte(tt.initOpts))
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.want(cfg) {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}

func TestResolveDataPath(t *testing.T) {
	type tc struct {
		path string
		root string
		want string
	}

	tests := map[string]tc{
		"relative":    {path: "data/x.json", root: "/ws", want: "/ws/data/x.json"},
		"absolute":    {path: "/opt/x.json", root: "/ws", want: "/opt/x.json"},
		"no root":     {path: "data/x.json", root: "", want: "data/x.json"},
		"empty stays": {path: "", root: "/ws", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := Config{DataPath: tt.path}
			c.ResolveDataPath(tt.root)
			if c.DataPath != tt.want {
				t.Errorf("DataPath = %q, want %q", c.DataPath, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type tc struct {
		cfg     Config
		wantErr bool
	}

	tests := map[string]tc{
		"ok":               {cfg: Config{DataPath: "x.json", Debounce: time.Second}},
		"missing data":     {cfg: Config{}, wantErr: true},
		"negative delay":   {cfg: Config{DataPath: "x", Debounce: -1}, wantErr: true},
		"negative preview": {cfg: Config{DataPath: "x", PreviewSize: -1}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
