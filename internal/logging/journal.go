// Package logging writes console diagnostics and JSONL session journals.
package logging

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Event is one journal line, written after a REPL command completes.
type Event struct {
	Time    time.Time `json:"time"`
	Command string    `json:"command"`
	Args    []string  `json:"args,omitempty"`
	Outcome string    `json:"outcome"`
	Records int       `json:"records"`
	Error   string    `json:"error,omitempty"`
}

// Journal manages a per-session JSONL file.
type Journal struct {
	Dir     string
	RunID   string
	LogPath string
	file    *os.File
	enc     *json.Encoder
}

// NewJournal creates the project log directory and a JSONL file for this run.
func NewJournal(baseDir, workDir string) (*Journal, error) {
	logDir, err := FindLogDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	logPath := filepath.Join(logDir, fmt.Sprintf("%s.jsonl", id))
	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	return &Journal{
		Dir:     logDir,
		RunID:   id,
		LogPath: logPath,
		file:    file,
		enc:     enc,
	}, nil
}

// Record appends an event. A nil journal discards it.
func (j *Journal) Record(ev Event) error {
	if j == nil || j.enc == nil {
		return nil
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	if err := j.enc.Encode(ev); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Close closes the journal file.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	return j.file.Close()
}

// FindLogDir returns the journal directory for a given work directory:
// baseDir/<project-slug>.
func FindLogDir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}

	resolvedWorkDir := workDir
	if resolvedWorkDir == "" {
		resolvedWorkDir = "."
	}
	if abs, err := filepath.Abs(resolvedWorkDir); err == nil {
		resolvedWorkDir = abs
	}

	baseDir = resolveBaseDir(baseDir, resolvedWorkDir)
	projectRoot := resolveProjectRoot(resolvedWorkDir)
	return filepath.Join(baseDir, projectSlug(projectRoot)), nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

// resolveProjectRoot returns the enclosing git work tree of workDir, so
// journals from subdirectories land together. Without git it is workDir.
func resolveProjectRoot(workDir string) string {
	if workDir == "" {
		return "."
	}
	out, err := exec.Command("git", "-C", workDir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return workDir
	}
	if root := strings.TrimSpace(string(out)); root != "" {
		return root
	}
	return workDir
}

func projectSlug(projectRoot string) string {
	return slugify(filepath.Base(projectRoot)) + "-" + hashPath(projectRoot)
}

// unsafeSlugChars matches runs of bytes outside the portable file name set.
var unsafeSlugChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// slugify makes a directory-safe name; "project" when nothing usable remains.
func slugify(input string) string {
	slug := strings.Trim(unsafeSlugChars.ReplaceAllString(input, "_"), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// FindLatestLog returns the journal in logDir with the newest modification
// time, or "" when the directory is missing or holds no journals.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var journals []fs.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		if info, err := entry.Info(); err == nil {
			journals = append(journals, info)
		}
	}
	if len(journals) == 0 {
		return "", nil
	}

	newest := slices.MaxFunc(journals, func(a, b fs.FileInfo) int {
		return a.ModTime().Compare(b.ModTime())
	})
	return filepath.Join(logDir, newest.Name()), nil
}

// TailLog writes the last n lines of path to w (all lines when n <= 0).
// With follow set it keeps copying appended data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if err := writeLastLines(w, file, n); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// writeLastLines copies the last n lines of r to w, leaving r at EOF.
func writeLastLines(w io.Writer, r io.Reader, n int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
