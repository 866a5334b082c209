package subtitle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"plexsubs/internal/config"
	"plexsubs/internal/subtitle"
	"plexsubs/internal/testsupport"
)

const sampleSRT = "1\r\n00:00:01,000 --> 00:00:02,000\r\nHi\r\n"

func newRecord(t *testing.T, id int64, body []byte, meta *subtitle.Metadata) *subtitle.Record {
	t.Helper()
	return &subtitle.Record{StreamID: id, Payload: testsupport.Gzip(t, body), Meta: meta}
}

func fooMeta() *subtitle.Metadata {
	return &subtitle.Metadata{SourcePath: "/movies/Foo/Foo.mkv", Codec: "srt", Language: "eng"}
}

func TestMaterializeWritesNormalizedText(t *testing.T) {
	out := t.TempDir()
	m := subtitle.NewMaterializer(subtitle.MaterializerOptions{OutputDir: out})

	var stats subtitle.Stats
	outcome := m.Materialize(context.Background(), newRecord(t, 7, []byte(sampleSRT), fooMeta()), &stats)
	if outcome != subtitle.OutcomeSaved {
		t.Fatalf("expected saved outcome, got %s", outcome)
	}

	got, err := os.ReadFile(filepath.Join(out, "Foo.eng.srt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "1\n00:00:01,000 --> 00:00:02,000\nHi\n" {
		t.Fatalf("unexpected content %q", got)
	}
	want := subtitle.Stats{Total: 1, Saved: 1}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
}

func TestMaterializeWritesBinaryUnchanged(t *testing.T) {
	out := t.TempDir()
	m := subtitle.NewMaterializer(subtitle.MaterializerOptions{OutputDir: out})

	body := []byte{0x00, 0x01, '\r', '\n', 0xff}
	meta := &subtitle.Metadata{SourcePath: "/movies/Foo.mkv", Codec: "vobsub", Language: "eng", Forced: true}
	var stats subtitle.Stats
	m.Materialize(context.Background(), newRecord(t, 1, body, meta), &stats)

	got, err := os.ReadFile(filepath.Join(out, "Foo.eng.forced.vobsub"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("binary payload altered: %v", got)
	}
}

func TestMaterializeInlineUsesSourceDirectory(t *testing.T) {
	mediaDir := t.TempDir()
	meta := &subtitle.Metadata{SourcePath: filepath.Join(mediaDir, "Foo.mkv"), Codec: "srt", Language: "eng"}
	m := subtitle.NewMaterializer(subtitle.MaterializerOptions{})

	var stats subtitle.Stats
	m.Materialize(context.Background(), newRecord(t, 1, []byte("x"), meta), &stats)

	if _, err := os.Stat(filepath.Join(mediaDir, "Foo.eng.srt")); err != nil {
		t.Fatalf("expected inline subtitle: %v", err)
	}
}

func TestMaterializeConflictPolicies(t *testing.T) {
	tests := []struct {
		name        string
		policy      config.OverwritePolicy
		confirms    []bool
		wantOutcome subtitle.Outcome
		wantContent string
		wantStats   subtitle.Stats
	}{
		{
			name:        "skip keeps existing file",
			policy:      config.OverwriteSkip,
			wantOutcome: subtitle.OutcomeSkipped,
			wantContent: "old",
			wantStats:   subtitle.Stats{Total: 1, Skipped: 1},
		},
		{
			name:        "force replaces file",
			policy:      config.OverwriteForce,
			wantOutcome: subtitle.OutcomeOverwritten,
			wantContent: "new\n",
			wantStats:   subtitle.Stats{Total: 1, Saved: 1, Overwritten: 1},
		},
		{
			name:        "confirm yes replaces file",
			policy:      config.OverwriteConfirm,
			confirms:    []bool{true},
			wantOutcome: subtitle.OutcomeOverwritten,
			wantContent: "new\n",
			wantStats:   subtitle.Stats{Total: 1, Saved: 1, Overwritten: 1},
		},
		{
			name:        "confirm no keeps file",
			policy:      config.OverwriteConfirm,
			confirms:    []bool{false},
			wantOutcome: subtitle.OutcomeSkipped,
			wantContent: "old",
			wantStats:   subtitle.Stats{Total: 1, Skipped: 1},
		},
		{
			name:        "confirm without answer keeps file",
			policy:      config.OverwriteConfirm,
			wantOutcome: subtitle.OutcomeSkipped,
			wantContent: "old",
			wantStats:   subtitle.Stats{Total: 1, Skipped: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			target := filepath.Join(out, "Foo.eng.srt")
			if err := os.WriteFile(target, []byte("old"), 0o644); err != nil {
				t.Fatalf("seed existing file: %v", err)
			}
			prompter := testsupport.NewScriptedPrompter(nil, tt.confirms)
			m := subtitle.NewMaterializer(subtitle.MaterializerOptions{
				OutputDir: out,
				Policy:    tt.policy,
				Confirmer: prompter,
			})

			var stats subtitle.Stats
			outcome := m.Materialize(context.Background(), newRecord(t, 7, []byte("new\r\n"), fooMeta()), &stats)
			if outcome != tt.wantOutcome {
				t.Fatalf("outcome = %s, want %s", outcome, tt.wantOutcome)
			}
			got, err := os.ReadFile(target)
			if err != nil {
				t.Fatalf("read target: %v", err)
			}
			if string(got) != tt.wantContent {
				t.Fatalf("content = %q, want %q", got, tt.wantContent)
			}
			if stats != tt.wantStats {
				t.Fatalf("stats = %+v, want %+v", stats, tt.wantStats)
			}
			if tt.policy == config.OverwriteConfirm && len(prompter.Questions) != 1 {
				t.Fatalf("expected exactly one confirmation question, got %v", prompter.Questions)
			}
		})
	}
}

func TestMaterializeIsolatesFailures(t *testing.T) {
	out := t.TempDir()
	m := subtitle.NewMaterializer(subtitle.MaterializerOptions{OutputDir: out})
	ctx := context.Background()
	var stats subtitle.Stats

	unmatched := newRecord(t, 1, []byte("x"), nil)
	if got := m.Materialize(ctx, unmatched, &stats); got != subtitle.OutcomeUnmatched {
		t.Fatalf("expected unmatched, got %s", got)
	}

	badGzip := &subtitle.Record{StreamID: 2, Payload: []byte("nope"), Meta: fooMeta()}
	if got := m.Materialize(ctx, badGzip, &stats); got != subtitle.OutcomeFailed {
		t.Fatalf("expected failed for invalid gzip, got %s", got)
	}

	badText := newRecord(t, 3, []byte{0xff, 0xfe, 0xfd}, fooMeta())
	if got := m.Materialize(ctx, badText, &stats); got != subtitle.OutcomeFailed {
		t.Fatalf("expected failed for invalid utf-8, got %s", got)
	}

	missingDir := &subtitle.Metadata{SourcePath: filepath.Join(out, "gone", "Foo.mkv"), Codec: "srt", Language: "eng"}
	inline := subtitle.NewMaterializer(subtitle.MaterializerOptions{})
	if got := inline.Materialize(ctx, newRecord(t, 4, []byte("x"), missingDir), &stats); got != subtitle.OutcomeFailed {
		t.Fatalf("expected failed for missing directory, got %s", got)
	}
	if _, err := os.Stat(filepath.Join(out, "gone")); !os.IsNotExist(err) {
		t.Fatalf("materializer must not create directories, stat err=%v", err)
	}

	good := newRecord(t, 5, []byte("ok"), fooMeta())
	if got := m.Materialize(ctx, good, &stats); got != subtitle.OutcomeSaved {
		t.Fatalf("expected later record to succeed, got %s", got)
	}

	want := subtitle.Stats{Total: 5, Saved: 1, Failed: 4, Unmatched: 1}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
}

func TestRecordSetMetadataForcedIsNonzero(t *testing.T) {
	rec := &subtitle.Record{StreamID: 1}
	if rec.Correlated() {
		t.Fatal("new record should not be correlated")
	}
	rec.SetMetadata("/m/Foo.mkv", "srt", "eng", 2)
	if !rec.Correlated() || !rec.Meta.Forced {
		t.Fatalf("expected forced metadata, got %+v", rec.Meta)
	}
	rec.SetMetadata("/m/Foo.mkv", "srt", "eng", 0)
	if rec.Meta.Forced {
		t.Fatal("zero forced flag should be false")
	}
}
