package scenefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrigankad/bvhtracer/shading"
)

func writeTempScene(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.rtscene")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing temp scene: %v", err)
	}
	return path
}

const minimalScene = `{
  "version": "1",
  "name": "test",
  "camera": {"origin": [0, 0, 0], "yaw": 0, "pitch": 0, "fov": 60},
  "materials": [
    {"name": "red", "kind": "solid", "diffuse_color": [1, 0, 0]}
  ],
  "lights": [
    {"type": "directional", "direction": [0, -1, 0], "color": [1, 1, 1], "intensity": 1}
  ],
  "objects": [
    {"type": "sphere", "material": "red", "center": [0, 0, 5], "radius": 1}
  ],
  "settings": {"width": 64, "height": 48, "mode": "observed_area", "shadows_enabled": true}
}`

func TestLoadMinimalScene(t *testing.T) {
	path := writeTempScene(t, minimalScene)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Scene.Spheres) != 1 {
		t.Errorf("expected 1 sphere, got %d", len(loaded.Scene.Spheres))
	}
	if len(loaded.Scene.Materials) != 1 {
		t.Errorf("expected 1 material, got %d", len(loaded.Scene.Materials))
	}
	if len(loaded.Scene.Lights) != 1 {
		t.Errorf("expected 1 light, got %d", len(loaded.Scene.Lights))
	}
	if loaded.Settings.Width != 64 || loaded.Settings.Height != 48 {
		t.Errorf("unexpected settings: %+v", loaded.Settings)
	}
	if loaded.Pipeline.Mode != shading.ObservedArea || !loaded.Pipeline.ShadowsEnabled {
		t.Errorf("unexpected pipeline: %+v", loaded.Pipeline)
	}
}

func TestLoadRejectsUnknownMaterialReference(t *testing.T) {
	broken := `{
  "version": "1", "name": "t",
  "camera": {"origin": [0,0,0], "yaw": 0, "pitch": 0, "fov": 60},
  "materials": [],
  "lights": [],
  "objects": [{"type": "sphere", "material": "missing", "center": [0,0,5], "radius": 1}],
  "settings": {"width": 4, "height": 4, "mode": "observed_area"}
}`
	path := writeTempScene(t, broken)
	if _, err := Load(path); err == nil {
		t.Error("expected an unknown material reference to be rejected")
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	broken := `{
  "version": "1", "name": "t",
  "camera": {"origin": [0,0,0], "yaw": 0, "pitch": 0, "fov": 60},
  "materials": [{"name": "m", "kind": "solid", "diffuse_color": [1,1,1]}],
  "lights": [],
  "objects": [],
  "settings": {"width": 4, "height": 4, "mode": "glorious"}
}`
	path := writeTempScene(t, broken)
	if _, err := Load(path); err == nil {
		t.Error("expected an unrecognized shading mode to be rejected")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := writeTempScene(t, minimalScene)
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sf := &SceneFile{
		Version: "1", Name: "round-trip",
		Camera:    CameraData{FOV: 60},
		Materials: []MaterialData{{Name: "red", Kind: "solid", DiffuseColor: [3]float32{1, 0, 0}}},
		Settings:  RenderSettings{Width: loaded.Settings.Width, Height: loaded.Settings.Height, Mode: "observed_area"},
	}
	out := filepath.Join(t.TempDir(), "out.rtscene")
	if err := Save(out, sf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(out); err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
}
