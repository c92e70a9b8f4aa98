package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validFlow = `{
  "nodes": [
    {"id": "n1", "class_path": "langchain.llms.openai.OpenAI", "data": {"label": "First"}},
    {"id": "n2", "class_path": "langchain.chains.llm.LLMChain", "data": {"label": "Second"}}
  ],
  "edges": [{"source": "n1", "target": "n2"}]
}`

const brokenFlow = `{
  "nodes": [{"id": "n1", "class_path": "langchain.llms.openai.OpenAI"}],
  "edges": [{"source": "n1", "target": "ghost"}]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestConvert_Directory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFile(t, inDir, "good.json", validFlow)
	writeFile(t, inDir, "bad.json", brokenFlow)
	writeFile(t, inDir, "ignored.txt", "not a flow")

	summary, err := Convert(context.Background(), Options{
		InputDir:  inDir,
		OutputDir: outDir,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if summary.Converted != 1 {
		t.Errorf("Converted = %d, want 1", summary.Converted)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if _, ok := summary.Failures[filepath.Join(inDir, "bad.json")]; !ok {
		t.Errorf("Failures = %v, missing bad.json", summary.Failures)
	}

	if _, err := os.Stat(filepath.Join(outDir, "good.py")); err != nil {
		t.Errorf("good.py not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "bad.py")); err == nil {
		t.Error("bad.py written despite failed conversion")
	}
	if _, err := os.Stat(filepath.Join(outDir, "ignored.py")); err == nil {
		t.Error("non-flow file was converted")
	}
}

func TestConvert_RequiresInputDir(t *testing.T) {
	if _, err := Convert(context.Background(), Options{}); err == nil {
		t.Fatal("Convert() succeeded without an input directory")
	}
}

func TestConvert_OutputDefaultsToInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flow.json", validFlow)

	_, err := Convert(context.Background(), Options{InputDir: dir})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "flow.py")); err != nil {
		t.Errorf("flow.py not written next to the input: %v", err)
	}
}

func TestConvert_InvalidSchedule(t *testing.T) {
	dir := t.TempDir()
	_, err := Convert(context.Background(), Options{
		InputDir: dir,
		Schedule: "CRON_TZ=UTC * * * * *",
	})
	if err == nil {
		t.Fatal("Convert() accepted a timezone-prefixed schedule")
	}
}

func TestConvert_RecordsLedger(t *testing.T) {
	inDir := t.TempDir()
	writeFile(t, inDir, "good.json", validFlow)
	writeFile(t, inDir, "bad.json", brokenFlow)
	dsn := filepath.Join(t.TempDir(), "ledger.db")

	_, err := Convert(context.Background(), Options{
		InputDir:  inDir,
		LedgerDSN: dsn,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	ledger, err := OpenLedger(dsn)
	if err != nil {
		t.Fatalf("OpenLedger() error = %v", err)
	}
	defer ledger.Close()

	recent, err := ledger.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("records = %d, want 2", len(recent))
	}

	byStatus := make(map[string]int)
	for _, rec := range recent {
		byStatus[rec.Status]++
		if rec.ID == "" {
			t.Error("record has empty id")
		}
	}
	if byStatus[StatusOK] != 1 || byStatus[StatusFailed] != 1 {
		t.Errorf("status counts = %v, want one ok and one failed", byStatus)
	}
}

func TestIsFlowDocument(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"flow.json", true},
		{"flow.yaml", true},
		{"flow.YML", true},
		{"flow.py", false},
		{"flow", false},
	}
	for _, tt := range tests {
		if got := isFlowDocument(tt.path); got != tt.want {
			t.Errorf("isFlowDocument(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestOutputPathFor(t *testing.T) {
	got := outputPathFor("/out", "/in/nested/flow.yaml")
	want := filepath.Join("/out", "flow.py")
	if got != want {
		t.Errorf("outputPathFor() = %q, want %q", got, want)
	}
}

func TestLedger_AppendAndHistory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := OpenLedger(dsn)
	if err != nil {
		t.Fatalf("OpenLedger() error = %v", err)
	}
	defer ledger.Close()

	now := time.Now().UTC().Truncate(time.Millisecond)
	first := Record{
		ID:          "conv-1",
		InputPath:   "/flows/a.json",
		OutputPath:  "/flows/a.py",
		Status:      StatusOK,
		Repaired:    true,
		Duration:    125 * time.Millisecond,
		ConvertedAt: now,
	}
	second := Record{
		ID:          "conv-2",
		InputPath:   "/flows/a.json",
		Status:      StatusFailed,
		Error:       "boom",
		ConvertedAt: now.Add(time.Second),
	}
	for _, rec := range []Record{first, second} {
		if err := ledger.Append(rec); err != nil {
			t.Fatalf("Append(%s) error = %v", rec.ID, err)
		}
	}

	history, err := ledger.History("/flows/a.json")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d records, want 2", len(history))
	}
	// Newest first.
	if history[0].ID != "conv-2" || history[1].ID != "conv-1" {
		t.Errorf("order = %s, %s; want conv-2, conv-1", history[0].ID, history[1].ID)
	}

	got := history[1]
	if !got.Repaired {
		t.Error("Repaired flag lost")
	}
	if got.Duration != 125*time.Millisecond {
		t.Errorf("Duration = %v, want 125ms", got.Duration)
	}
	if !got.ConvertedAt.Equal(now) {
		t.Errorf("ConvertedAt = %v, want %v", got.ConvertedAt, now)
	}
	if history[0].Error != "boom" {
		t.Errorf("Error = %q, want boom", history[0].Error)
	}
}

func TestLedger_DuplicateID(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := OpenLedger(dsn)
	if err != nil {
		t.Fatalf("OpenLedger() error = %v", err)
	}
	defer ledger.Close()

	rec := Record{ID: "dup", InputPath: "/a.json", Status: StatusOK, ConvertedAt: time.Now()}
	if err := ledger.Append(rec); err != nil {
		t.Fatalf("first Append() error = %v", err)
	}
	if err := ledger.Append(rec); err == nil {
		t.Fatal("second Append() with the same id succeeded, want unique violation")
	}
}

func TestParseCronExpressionUTC(t *testing.T) {
	if _, err := parseCronExpressionUTC("*/5 * * * *"); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
	for _, expr := range []string{
		"",
		"not a cron",
		"* * * * * *",
		"TZ=America/New_York * * * * *",
		"CRON_TZ=UTC 0 * * * *",
	} {
		if _, err := parseCronExpressionUTC(expr); err == nil {
			t.Errorf("parseCronExpressionUTC(%q) succeeded, want error", expr)
		}
	}
}

func TestNextCronRunUTC(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	next, err := nextCronRunUTC("0 * * * *", now)
	if err != nil {
		t.Fatalf("nextCronRunUTC() error = %v", err)
	}
	want := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}
