package renamer_test

// Notes:
// - Preview runs against mockLoader/mockInvoker; Apply works on real files in t.TempDir()

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/renamer"
	"github.com/alnah/airename/internal/source"
)

// echoInvoker answers with the first content line after "Content:".
func echoInvoker() *mockInvoker {
	return &mockInvoker{respond: func(_ int, prompt string, images [][]byte) (string, error) {
		if len(images) > 0 {
			return "Picture Of A Cat", nil
		}
		_, after, ok := strings.Cut(prompt, "Content:\n")
		if !ok {
			return "", errors.New("no content in prompt")
		}
		return strings.SplitN(after, "\n", 2)[0], nil
	}}
}

// ---------------------------------------------------------------------------
// TestPreview - order, isolation of failures, request fields
// ---------------------------------------------------------------------------

func TestPreview(t *testing.T) {
	t.Parallel()

	loader := &mockLoader{
		materials: map[string]source.Material{
			"/in/a.txt": {Kind: source.KindText, Content: "Alpha Report"},
			"/in/b.jpg": {Kind: source.KindImage, Images: [][]byte{{1}}},
			"/in/d.md":  {Kind: source.KindText, Content: "Answer: Therefore"},
			"/in/e.txt": {Kind: source.KindText, Content: "Delta Notes"},
		},
		errs: map[string]error{
			"/in/c.txt": source.ErrNoText,
		},
	}
	paths := []string{"/in/a.txt", "/in/b.jpg", "/in/c.txt", "/in/d.md", "/in/e.txt", "/in/f.xyz"}

	r := renamer.New(renamer.WithInvokerFactory(factoryFor(echoInvoker(), nil)))
	base := baseRequest()
	base.Case = casing.SnakeStyle

	sum := r.Preview(context.Background(), paths, loader, base)

	if sum.Total != 6 || sum.Successful != 3 || sum.Failed != 3 {
		t.Fatalf("summary = %d/%d/%d, want 6 total, 3 ok, 3 failed", sum.Total, sum.Successful, sum.Failed)
	}

	want := []struct {
		name     string
		success  bool
		category renamer.Category
	}{
		{"alpha_report", true, renamer.CategoryNone},
		{"picture_of_a_cat", true, renamer.CategoryNone},
		{"", false, renamer.CategoryInput},
		{"", false, renamer.CategoryEmptyResult},
		{"delta_notes", true, renamer.CategoryNone},
		{"", false, renamer.CategoryInput},
	}
	for i, w := range want {
		got := sum.Results[i]
		if got.Path != paths[i] || got.OriginalName != filepath.Base(paths[i]) {
			t.Errorf("result[%d] path = %q/%q, out of order", i, got.Path, got.OriginalName)
		}
		if got.NewName != w.name || got.Success != w.success || got.Category != w.category {
			t.Errorf("result[%d] = {%q %v %q}, want {%q %v %q}",
				i, got.NewName, got.Success, got.Category, w.name, w.success, w.category)
		}
		if !got.Success && (got.Error == "" || got.Err() == nil) {
			t.Errorf("result[%d] failed without an error message", i)
		}
	}
}

func TestPreview_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	materials := make(map[string]source.Material)
	var paths []string
	for i := range 12 {
		p := fmt.Sprintf("/in/file-%02d.txt", i)
		paths = append(paths, p)
		materials[p] = source.Material{Kind: source.KindText, Content: fmt.Sprintf("Note %d", i)}
	}

	inv := echoInvoker()
	inv.delay = 20 * time.Millisecond
	r := renamer.New(renamer.WithInvokerFactory(factoryFor(inv, nil)), renamer.WithConcurrency(3))

	sum := r.Preview(context.Background(), paths, &mockLoader{materials: materials}, baseRequest())

	if sum.Successful != 12 {
		t.Fatalf("Successful = %d, want 12", sum.Successful)
	}
	if got := inv.MaxInFlight(); got > 3 {
		t.Errorf("max concurrent model calls = %d, want <= 3", got)
	}
	for i, res := range sum.Results {
		if want := fmt.Sprintf("note-%d", i); res.NewName != want {
			t.Errorf("result[%d] = %q, want %q", i, res.NewName, want)
		}
	}
}

func TestPreview_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv := echoInvoker()
	loader := &mockLoader{materials: map[string]source.Material{
		"/in/a.txt": {Kind: source.KindText, Content: "Alpha"},
		"/in/b.txt": {Kind: source.KindText, Content: "Beta"},
	}}
	r := renamer.New(renamer.WithInvokerFactory(factoryFor(inv, nil)))

	sum := r.Preview(ctx, []string{"/in/a.txt", "/in/b.txt"}, loader, baseRequest())

	if sum.Failed != 2 {
		t.Fatalf("Failed = %d, want 2", sum.Failed)
	}
	for _, res := range sum.Results {
		if res.Category != renamer.CategoryCanceled {
			t.Errorf("%s category = %q, want canceled", res.Path, res.Category)
		}
	}
	if inv.CallCount() != 0 {
		t.Errorf("model called %d times after cancellation", inv.CallCount())
	}
}

func TestPreview_Logging(t *testing.T) {
	t.Parallel()

	loader := &mockLoader{
		materials: map[string]source.Material{
			"/in/a.txt": {Kind: source.KindText, Content: "Alpha Report"},
			"/in/b.jpg": {Kind: source.KindImage, Images: [][]byte{make([]byte, 2048)}},
			"/in/d.md":  {Kind: source.KindText, Content: "Answer: Therefore"},
		},
		errs: map[string]error{"/in/c.txt": source.ErrNoText},
	}
	paths := []string{"/in/a.txt", "/in/b.jpg", "/in/c.txt", "/in/d.md"}

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: slog.LevelDebug, Format: logger.FormatJSON, Writer: &buf})
	r := renamer.New(
		renamer.WithInvokerFactory(factoryFor(echoInvoker(), nil)),
		renamer.WithLogger(log),
		renamer.WithConcurrency(1),
	)
	r.Preview(context.Background(), paths, loader, baseRequest())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	find := func(msg, file string) string {
		for _, l := range lines {
			if strings.Contains(l, `"msg":"`+msg+`"`) && strings.Contains(l, `"file":"`+file+`"`) {
				return l
			}
		}
		return ""
	}

	tests := []struct {
		msg  string
		file string
		want []string
	}{
		{"file loaded", "/in/a.txt", []string{`"level":"DEBUG"`, `"size":"12 bytes"`}},
		{"file loaded", "/in/b.jpg", []string{`"kind":"image"`, `"size":"2 KB"`}},
		{"cannot read file", "/in/c.txt", []string{`"level":"ERROR"`, `"error":"`}},
		{"no name computed", "/in/d.md", []string{`"level":"ERROR"`, `"category":"empty-result"`}},
		{"name computed", "/in/a.txt", []string{`"level":"INFO"`, `"name":"alpha-report"`}},
	}
	for _, tt := range tests {
		line := find(tt.msg, tt.file)
		if line == "" {
			t.Errorf("no %q log line for %s in:\n%s", tt.msg, tt.file, buf.String())
			continue
		}
		for _, w := range tt.want {
			if !strings.Contains(line, w) {
				t.Errorf("%q line for %s = %s, want %s", tt.msg, tt.file, line, w)
			}
		}
	}
}

func TestPreview_Empty(t *testing.T) {
	t.Parallel()

	sum := renamer.New().Preview(context.Background(), nil, &mockLoader{}, baseRequest())
	if sum.Total != 0 || len(sum.Results) != 0 {
		t.Errorf("Preview(nil) = %+v, want empty summary", sum)
	}
}

// ---------------------------------------------------------------------------
// TestApply - renames on disk
// ---------------------------------------------------------------------------

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func previewed(path, name string) renamer.Result {
	return renamer.Result{Path: path, OriginalName: filepath.Base(path), NewName: name, Success: true}
}

func TestApply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "IMG_0001.JPG", "a")
	b := writeFile(t, dir, "scan.txt", "b")
	c := writeFile(t, dir, "other.txt", "c")
	failedPreview := renamer.Result{Path: filepath.Join(dir, "bad.txt"), Success: false, Error: "boom"}

	sum := renamer.New().Apply([]renamer.Result{
		previewed(a, "harbor-at-dawn"),
		previewed(b, "meeting-notes"),
		previewed(c, "meeting-notes"), // same target as b
		failedPreview,
	})

	if sum.Total != 4 || sum.Successful != 2 || sum.Failed != 2 {
		t.Fatalf("summary = %d/%d/%d, want 4/2/2", sum.Total, sum.Successful, sum.Failed)
	}

	if got := sum.Results[0]; got.NewName != "harbor-at-dawn.JPG" || got.NewPath != filepath.Join(dir, "harbor-at-dawn.JPG") {
		t.Errorf("result[0] = %q at %q", got.NewName, got.NewPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "harbor-at-dawn.JPG")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Errorf("original file still present: %v", err)
	}

	conflict := sum.Results[2]
	if conflict.Success || !errors.Is(conflict.Err(), renamer.ErrTargetExists) {
		t.Errorf("result[2] = %+v, want ErrTargetExists", conflict)
	}
	if conflict.Category != renamer.CategoryConflict {
		t.Errorf("result[2] category = %q, want conflict", conflict.Category)
	}
	if data, err := os.ReadFile(filepath.Join(dir, "meeting-notes.txt")); err != nil || string(data) != "b" {
		t.Errorf("meeting-notes.txt = %q, %v; want content of scan.txt", data, err)
	}
	if _, err := os.Stat(c); err != nil {
		t.Errorf("conflicting source must stay in place: %v", err)
	}

	if sum.Results[3].Error != "boom" {
		t.Errorf("failed preview not carried over: %+v", sum.Results[3])
	}
}

func TestApply_ExistingTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "a.txt", "new")
	writeFile(t, dir, "taken.txt", "old")

	sum := renamer.New().Apply([]renamer.Result{previewed(src, "taken")})

	if sum.Failed != 1 || !strings.Contains(sum.Results[0].Error, "target already exists") {
		t.Fatalf("result = %+v, want target already exists", sum.Results[0])
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "taken.txt")); string(data) != "old" {
		t.Errorf("existing target overwritten: %q", data)
	}
}

func TestApply_SameName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "notes.txt", "x")

	sum := renamer.New().Apply([]renamer.Result{previewed(src, "notes")})

	if sum.Successful != 1 {
		t.Fatalf("result = %+v, want success", sum.Results[0])
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("file gone: %v", err)
	}
}

func TestApply_ExtensionNotDoubled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "x.txt", "x")

	sum := renamer.New().Apply([]renamer.Result{previewed(src, "report.txt")})

	if got := sum.Results[0].NewName; got != "report.txt" {
		t.Errorf("NewName = %q, want report.txt", got)
	}
}

func TestApply_RejectsSeparator(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "x.txt", "x")

	sum := renamer.New().Apply([]renamer.Result{previewed(src, "mountain/lake/photo")})

	if !errors.Is(sum.Results[0].Err(), renamer.ErrInvalidTarget) {
		t.Fatalf("error = %v, want ErrInvalidTarget", sum.Results[0].Err())
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("file moved: %v", err)
	}
}

func TestTargetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, name, want string
	}{
		{"/a/IMG_1.JPG", "harbor", "harbor.JPG"},
		{"/a/notes.txt", "notes.txt", "notes.txt"},
		{"/a/README", "project-overview", "project-overview"},
		{"/a/archive.tar.gz", "backup", "backup.gz"},
	}
	for _, tt := range tests {
		if got := renamer.TargetName(tt.path, tt.name); got != tt.want {
			t.Errorf("TargetName(%q, %q) = %q, want %q", tt.path, tt.name, got, tt.want)
		}
	}
}
