package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/nao1215/reimage/internal/model"
)

// newBatchItems builds items named a.png, b.png, c.png under dir.
func newBatchItems(dir string) []*Item {
	names := []string{"a.png", "b.png", "c.png"}
	items := make([]*Item, 0, len(names))
	for _, name := range names {
		items = append(items, NewItem(filepath.Join(dir, name), filepath.Join(dir, "out", name)))
	}
	return items
}

// TestBatchProcessorFailureIsolation verifies that one image's failure
// never aborts the batch and that manifest order matches enumeration
// order.
func TestBatchProcessorFailureIsolation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	items := newBatchItems(dir)
	boom := errors.New("synthesize (json): upstream exploded")

	// The middle image fails during its pipeline; the others succeed.
	factory := func() *Pipeline {
		p := New()
		p.AddSteps(&fakeStep{
			name: "work",
			do:   func(item *Item) { item.ReportPath = filepath.Join(item.WorkDir, ReportFile) },
		}, &failOnName{name: "maybe-fail", target: "b.png", err: boom})
		return p
	}

	bp := NewBatchProcessor(factory, filepath.Join(dir, "out"))
	results := bp.Process(context.Background(), items)

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	if results[0].Failed() || results[2].Failed() {
		t.Errorf("images a and c should succeed: %+v", results)
	}
	if !results[1].Failed() {
		t.Fatal("image b should fail")
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("failure cause = %v, want recorded error", results[1].Err)
	}

	manifest := model.Manifest(results)
	if len(manifest) != 2 {
		t.Fatalf("manifest = %+v, want 2 entries", manifest)
	}
	if manifest[0].Image != "a.png" || manifest[1].Image != "c.png" {
		t.Errorf("manifest order = %+v, want a.png then c.png", manifest)
	}
	if manifest[0].Report != "a.png/report.html" {
		t.Errorf("report link = %q, want relative to batch dir", manifest[0].Report)
	}
}

// failOnName fails only for the item with the given name.
type failOnName struct {
	name   string
	target string
	err    error
}

func (s *failOnName) Name() string { return s.name }

func (s *failOnName) Do(_ context.Context, item *Item) error {
	if item.Name == s.target {
		return s.err
	}
	return nil
}

// TestBatchProcessorOrderUnderConcurrency verifies that results keep
// enumeration order even with parallel processing.
func TestBatchProcessorOrderUnderConcurrency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	items := newBatchItems(dir)

	var executions atomic.Int32
	factory := func() *Pipeline {
		p := New()
		p.AddSteps(&fakeStep{
			name: "work",
			do: func(item *Item) {
				executions.Add(1)
				item.ReportPath = filepath.Join(item.WorkDir, ReportFile)
			},
		})
		return p
	}

	bp := NewBatchProcessor(factory, filepath.Join(dir, "out"), WithConcurrency(3))
	results := bp.Process(context.Background(), items)

	if executions.Load() != 3 {
		t.Errorf("executions = %d, want 3", executions.Load())
	}

	want := []string{"a.png", "b.png", "c.png"}
	for i, r := range results {
		if r.Image != want[i] {
			t.Errorf("results[%d].Image = %q, want %q", i, r.Image, want[i])
		}
		if r.Failed() {
			t.Errorf("results[%d] unexpectedly failed: %v", i, r.Err)
		}
	}
}

// TestBatchProcessorCancelledContext verifies that cancellation marks
// remaining items failed rather than hanging.
func TestBatchProcessorCancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	items := newBatchItems(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factory := func() *Pipeline {
		return New()
	}

	bp := NewBatchProcessor(factory, dir)
	results := bp.Process(ctx, items)

	for i, r := range results {
		if !r.Failed() {
			t.Errorf("results[%d] should fail under cancelled context", i)
		}
	}
}
