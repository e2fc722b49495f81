// Package logging provides tests for JSONL journals and tail output.
package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewJournal tests creating a new session journal.
func TestNewJournal(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		journal, err := NewJournal(t.TempDir(), t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer journal.Close()

		if journal.Dir == "" || journal.RunID == "" || journal.LogPath == "" {
			t.Errorf("expected Dir, RunID and LogPath to be set: %+v", journal)
		}
		if _, err := os.Stat(journal.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewJournal("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates log directory if missing", func(t *testing.T) {
		newLogDir := filepath.Join(t.TempDir(), "new-logs", "nested")
		journal, err := NewJournal(newLogDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer journal.Close()

		if !strings.HasPrefix(journal.Dir, newLogDir) {
			t.Errorf("journal dir %s not under %s", journal.Dir, newLogDir)
		}
	})
}

func TestJournalRecord(t *testing.T) {
	journal, err := NewJournal(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	events := []Event{
		{Command: "add", Outcome: "ok", Records: 1},
		{Command: "load", Args: []string{"нет.json"}, Outcome: "error", Error: "trains file not found"},
	}
	for _, ev := range events {
		if err := journal.Record(ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := journal.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	file, err := os.Open(journal.LogPath)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var got []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Time.IsZero() {
		t.Error("Record() did not stamp the event time")
	}
	if got[1].Args[0] != "нет.json" || got[1].Error == "" {
		t.Errorf("second event = %+v", got[1])
	}
}

func TestNilJournal(t *testing.T) {
	var journal *Journal
	if err := journal.Record(Event{Command: "list"}); err != nil {
		t.Errorf("nil Record() error = %v", err)
	}
	if err := journal.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-project", "my-project"},
		{"My Project", "My_Project"},
		{"поезда", "project"},
		{"trains/поезда", "trains"},
		{"   ", "project"},
		{"a..b__c", "a..b__c"},
	}
	for _, tt := range tests {
		if got := slugify(tt.input); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHashPath(t *testing.T) {
	a := hashPath("/home/user/trains")
	b := hashPath("/home/user/trains")
	c := hashPath("/home/user/other")
	if len(a) != 8 {
		t.Errorf("hashPath length = %d, want 8", len(a))
	}
	if a != b {
		t.Error("hashPath is not deterministic")
	}
	if a == c {
		t.Error("hashPath collided for different inputs")
	}
}

func TestResolveBaseDir(t *testing.T) {
	if got := resolveBaseDir("/abs/logs", "/work"); got != filepath.Clean("/abs/logs") {
		t.Errorf("absolute base dir changed: %s", got)
	}
	if got := resolveBaseDir("logs", "/work"); got != filepath.Join("/work", "logs") {
		t.Errorf("relative base dir = %s", got)
	}
}

func TestFindLogDir(t *testing.T) {
	base := t.TempDir()
	work := t.TempDir()

	dir1, err := FindLogDir(base, work)
	if err != nil {
		t.Fatal(err)
	}
	dir2, err := FindLogDir(base, work)
	if err != nil {
		t.Fatal(err)
	}
	if dir1 != dir2 {
		t.Errorf("FindLogDir not stable: %s vs %s", dir1, dir2)
	}
	if filepath.Dir(dir1) != base {
		t.Errorf("FindLogDir = %s, want a child of %s", dir1, base)
	}

	if _, err := FindLogDir("", work); err == nil {
		t.Error("FindLogDir with empty base should fail")
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "nope"))
		if err != nil || got != "" {
			t.Errorf("FindLatestLog() = %q, %v; want empty, nil", got, err)
		}
	})

	t.Run("picks newest jsonl", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "20240101-000000-1.jsonl")
		newer := filepath.Join(dir, "20240102-000000-2.jsonl")
		other := filepath.Join(dir, "notes.txt")
		for _, p := range []string{older, newer, other} {
			if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		past := time.Now().Add(-time.Hour)
		os.Chtimes(older, past, past)
		os.Chtimes(other, time.Now().Add(time.Hour), time.Now().Add(time.Hour))

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != newer {
			t.Errorf("FindLatestLog() = %s, want %s", got, newer)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	content := "one\ntwo\nthree\nfour\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("all lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, 0, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != content {
			t.Errorf("TailLog() = %q, want %q", buf.String(), content)
		}
	})

	t.Run("last two lines", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, 2, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "three\nfour\n" {
			t.Errorf("TailLog() = %q", buf.String())
		}
	})

	t.Run("follow stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
		defer cancel()
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 1, true); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "four\n" {
			t.Errorf("TailLog() = %q", buf.String())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path+".missing", 0, false); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
