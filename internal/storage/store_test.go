package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/postviz/internal/layout"
)

func sampleRun() (layout.Input, []layout.Option) {
	in := layout.Input{
		PostSize:       3.5,
		PanelMaxLength: 96,
		RunHorLength:   480,
		Obstructions: []layout.Obstruction{
			{Size: 6, Location: 24, Type: layout.MustAvoid},
			{Size: 2, Location: 300, Type: layout.PlacePost},
		},
	}
	opts := []layout.Option{
		{PostLocations: []float64{0, 48, 96}, Description: layout.Description{AdditionalPosts: 1, EvenLayout: 1}},
		{PostLocations: []float64{0, 50}},
	}
	return in, opts
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	in, opts := sampleRun()
	runID, err := st.Save("backyard", "http://solver", in, opts)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	run, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if run.Meta.Name != "backyard" {
		t.Errorf("expected name 'backyard', got '%s'", run.Meta.Name)
	}

	if run.Meta.Options != 2 || run.Meta.Obstructions != 2 {
		t.Errorf("expected 2 options and 2 obstructions, got %d and %d", run.Meta.Options, run.Meta.Obstructions)
	}

	if run.Input.Obstructions[0].Type != layout.MustAvoid {
		t.Errorf("expected MUST_AVOID, got %v", run.Input.Obstructions[0].Type)
	}

	if len(run.Options) != 2 || run.Options[0].Description.AdditionalPosts != 1 {
		t.Errorf("unexpected options: %+v", run.Options)
	}

	posts, err := st.LoadPosts(runID)
	if err != nil {
		t.Fatalf("load posts failed: %v", err)
	}

	if len(posts[0]) != 3 || len(posts[1]) != 2 {
		t.Errorf("expected 3 and 2 posts, got %v", posts)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list of a missing dir failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	in, opts := sampleRun()
	first, err := st.Save("first", "", in, opts)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := st.Save("second", "", in, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := os.Mkdir(filepath.Join(tmpDir, "partial"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("expected newest first, got %s then %s", runs[0].Name, runs[1].Name)
	}

	latest, err := st.Latest()
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}

	if latest.Meta.ID != second {
		t.Errorf("expected latest %s, got %s", second, latest.Meta.ID)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, id := range []string{"missing", "", "../escape"} {
		if _, err := st.Load(id); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Load(%q): expected ErrRunNotFound, got %v", id, err)
		}
	}

	if _, err := st.Latest(); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound from an empty store, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	in, opts := sampleRun()
	runID, err := st.Save("test", "", in, opts)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{inputFile, optionsFile, metadataFile, postsFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	in, opts := sampleRun()
	run := &Run{Meta: RunMetadata{ID: "id", Name: "n"}, Input: in, Options: opts}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, run); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(got.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(got.Options))
	}

	if c := got.Options[0].CenterToCenter; len(c) != 2 || c[0] != 48 || c[1] != 48 {
		t.Errorf("expected spacing [48 48], got %v", c)
	}

	if got.Options[0].Spacing.Mean != 48 {
		t.Errorf("expected mean spacing 48, got %f", got.Options[0].Spacing.Mean)
	}

	if got.Obstructions[1].Type != layout.PlacePost {
		t.Errorf("expected PLACE_POST, got %v", got.Obstructions[1].Type)
	}
}
