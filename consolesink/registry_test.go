package consolesink

import (
	"encoding/json"
	"testing"

	"padcore/tinycompress"
)

func TestBuildProducesDecompressibleDictionary(t *testing.T) {
	reg := NewRegistry()
	compressed, err := reg.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatal("Build returned empty blob")
	}

	enc := tinycompress.NewZlib(4096)
	raw, _, err := enc.Decompress(compressed, len(compressed))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	var frames map[string]frameSchema
	if err := json.Unmarshal(raw, &frames); err != nil {
		t.Fatalf("decompressed blob is not valid JSON: %v", err)
	}

	want := map[string]uint16{
		"profile_state": FrameProfileState,
		"mode_status":   FrameModeStatus,
		"combo_event":   FrameComboEvent,
	}
	for name, id := range want {
		got, ok := frames[name]
		if !ok {
			t.Fatalf("dictionary missing frame %q", name)
		}
		if got.ID != id {
			t.Errorf("frame %q id = %d, want %d", name, got.ID, id)
		}
	}
}

func TestNewRegistryDeclaresAllThreeFrames(t *testing.T) {
	reg := NewRegistry()
	if len(reg.frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(reg.frames))
	}
}
