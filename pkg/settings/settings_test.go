package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir) // Linux
	t.Setenv("HOME", tmpDir)            // macOS fallback
	t.Setenv("APPDATA", tmpDir)         // Windows
	return tmpDir
}

func TestPath(t *testing.T) {
	isolateConfigDir(t)

	path, err := NewStore("testapp").Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("Path is not absolute: %q", path)
	}
	want := filepath.Join("testapp", "settings.json")
	if !strings.HasSuffix(path, want) {
		t.Errorf("Path should end with %q, got %q", want, path)
	}
}

func TestPath_Explicit(t *testing.T) {
	want := filepath.Join(t.TempDir(), "prefs.json")
	got, err := NewStoreAt(want).Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPath_Unconfigured(t *testing.T) {
	if _, err := (&Store{}).Path(); err == nil {
		t.Error("Path() should fail without app name or path")
	}
}

func TestSettings_FileNotExists(t *testing.T) {
	isolateConfigDir(t)

	got, err := NewStore("nonexistent").Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v, want nil for missing file", err)
	}
	if got.AutoStart {
		t.Error("AutoStart should default to false")
	}
}

func TestSettings_BadContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "corrupted", content: "not valid json {{{"},
		{name: "empty", content: ""},
		{name: "wrong type", content: `{"auto_start": "yes"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("Failed to write settings file: %v", err)
			}
			if _, err := NewStoreAt(path).Settings(); err == nil {
				t.Error("Settings() should return error")
			}
		})
	}
}

func TestSaveAndSettings(t *testing.T) {
	isolateConfigDir(t)
	s := NewStore("testapp")

	for _, want := range []bool{true, false, true} {
		if err := s.Save(Settings{AutoStart: want}); err != nil {
			t.Fatalf("Save(%v) error = %v", want, err)
		}
		got, err := s.Settings()
		if err != nil {
			t.Fatalf("Settings() error = %v", err)
		}
		if got.AutoStart != want {
			t.Errorf("AutoStart = %v, want %v", got.AutoStart, want)
		}
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")
	if err := NewStoreAt(path).Save(Settings{AutoStart: true}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Logf("Warning: File permissions are %o, expected 0o600", info.Mode().Perm())
	}
}

func TestSetAutoStart_KeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	initial := `{"theme": "dark", "hidden_orgs": {"acme": true}, "auto_start": false}`
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}

	s := NewStoreAt(path)
	if err := s.SetAutoStart(true); err != nil {
		t.Fatalf("SetAutoStart() error = %v", err)
	}

	got, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if !got.AutoStart {
		t.Error("AutoStart = false after SetAutoStart(true)")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if fields["theme"] != "dark" {
		t.Errorf("theme = %v, want %q", fields["theme"], "dark")
	}
	if _, ok := fields["hidden_orgs"]; !ok {
		t.Error("hidden_orgs was dropped")
	}
}

func TestSetAutoStart_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewStoreAt(path)
	if err := s.SetAutoStart(true); err != nil {
		t.Fatalf("SetAutoStart() error = %v", err)
	}
	got, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if !got.AutoStart {
		t.Error("AutoStart = false, want true")
	}
}

func TestSetAutoStart_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("[1, 2"), 0o600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	if err := NewStoreAt(path).SetAutoStart(true); err == nil {
		t.Error("SetAutoStart() should refuse to overwrite a corrupted file")
	}
}
