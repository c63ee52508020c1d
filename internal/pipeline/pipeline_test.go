package pipeline

import (
	"context"
	"errors"
	"testing"
)

// fakeStep is a configurable Step for pipeline tests.
type fakeStep struct {
	name string
	err  error
	do   func(item *Item)
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Do(_ context.Context, item *Item) error {
	if s.do != nil {
		s.do(item)
	}
	return s.err
}

// TestPipelineExecute tests sequential step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		p := New()
		p.AddSteps(
			&fakeStep{name: "first", do: func(*Item) { order = append(order, "first") }},
			&fakeStep{name: "second", do: func(*Item) { order = append(order, "second") }},
			&fakeStep{name: "third", do: func(*Item) { order = append(order, "third") }},
		)

		item := NewItem("photo.png", t.TempDir())
		if err := p.Execute(context.Background(), item); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		if len(order) != len(want) {
			t.Fatalf("order = %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
			}
		}
		if len(item.PerformedSteps) != 3 {
			t.Errorf("PerformedSteps = %v", item.PerformedSteps)
		}
	})

	t.Run("first failure stops the item", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("analyze failed")
		var ran []string
		p := New()
		p.AddSteps(
			&fakeStep{name: "ok", do: func(*Item) { ran = append(ran, "ok") }},
			&fakeStep{name: "bad", err: boom},
			&fakeStep{name: "never", do: func(*Item) { ran = append(ran, "never") }},
		)

		item := NewItem("photo.png", t.TempDir())
		err := p.Execute(context.Background(), item)

		if !errors.Is(err, boom) {
			t.Errorf("error = %v, want the step's error", err)
		}
		if !errors.Is(item.Err, boom) {
			t.Errorf("item.Err = %v, want recorded cause", item.Err)
		}
		for _, name := range ran {
			if name == "never" {
				t.Error("steps after the failure must not run")
			}
		}
	})

	t.Run("cancellation stops between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		p := New()
		p.AddSteps(
			&fakeStep{name: "canceller", do: func(*Item) { cancel() }},
			&fakeStep{name: "after", do: func(*Item) { t.Error("step ran after cancellation") }},
		)

		item := NewItem("photo.png", t.TempDir())
		if err := p.Execute(ctx, item); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

// TestItem tests Item helpers.
func TestItem(t *testing.T) {
	t.Parallel()

	item := NewItem("/inputs/sunset_beach.png", "/out/sunset_beach")

	if item.Name != "sunset_beach.png" {
		t.Errorf("Name = %q", item.Name)
	}
	if item.Stem() != "sunset_beach" {
		t.Errorf("Stem() = %q", item.Stem())
	}
}

// TestStepNames tests name listing.
func TestStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(&fakeStep{name: "a"}, &fakeStep{name: "b"})

	names := p.StepNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("StepNames() = %v", names)
	}
}
