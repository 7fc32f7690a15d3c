package reducer

import (
	"strings"
	"testing"
	"time"

	"tform/internal/appstate"
	"tform/internal/binding"
	"tform/internal/event"
	"tform/internal/flow"
	"tform/internal/node"
	"tform/internal/nodeid"
	"tform/internal/validation"
	"tform/internal/value"
	"tform/internal/widget"
)

// newTextInput builds an Input whose key handler appends printable runes and
// handles Backspace, emitting ValueProduced on every edit — the minimal
// widget needed to exercise the reducer without a concrete widget catalog.
func newTextInput(id nodeid.ID) *node.Input {
	in := node.NewInput(id, value.Text(""))
	in.WithKeyHandler(func(i *node.Input, k event.Key) event.InteractionResult {
		switch k.Code {
		case event.CodeRune:
			buf := i.Buffer() + string(k.Rune)
			i.SetBuffer(buf, len([]rune(buf)))
			return event.InteractionResult{
				Handled: true,
				Events:  []event.WidgetEvent{{Kind: event.EventValueProduced, Source: id, Value: value.Text(buf)}},
			}
		case event.CodeBackspace:
			runes := []rune(i.Buffer())
			if len(runes) > 0 {
				runes = runes[:len(runes)-1]
			}
			i.SetBuffer(string(runes), len(runes))
			return event.InteractionResult{
				Handled: true,
				Events:  []event.WidgetEvent{{Kind: event.EventValueProduced, Source: id, Value: value.Text(string(runes))}},
			}
		}
		return event.Unhandled
	})
	return in
}

func nonEmptyRule(v value.Value, _ validation.Ctx) []validation.Issue {
	txt, _ := v.AsText()
	if strings.TrimSpace(txt) == "" {
		return []validation.Issue{{Rule: "non-empty", Message: "value is required"}}
	}
	return nil
}

func typeRunes(t *testing.T, s *appstate.State, now time.Time, text string) {
	t.Helper()
	for _, r := range text {
		Dispatch(s, event.Key{Code: event.CodeRune, Rune: r}, now)
	}
}

func TestBasicSubmitAdvancesStep(t *testing.T) {
	name := newTextInput("name")
	stepA := &flow.Step{ID: "A", Roots: []node.Node{name}}
	stepB := &flow.Step{ID: "B", Roots: []node.Node{newTextInput("other")}}
	f := flow.New([]*flow.Step{stepA, stepB})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	now := time.Time{}

	typeRunes(t, s, now, "abc")
	Dispatch(s, event.Key{Code: event.CodeEnter}, now)

	if s.Flow.Current != 1 {
		t.Fatalf("expected step index 1, got %d", s.Flow.Current)
	}
	got := s.Store.Get("name")
	txt, ok := got.AsText()
	if !ok || txt != "abc" {
		t.Fatalf("expected store[name] = Text(abc), got %v", got)
	}
	if s.Flow.StatusOf(0) != flow.Done {
		t.Fatalf("expected step A Done, got %v", s.Flow.StatusOf(0))
	}
	if s.Flow.StatusOf(1) != flow.Active {
		t.Fatalf("expected step B Active, got %v", s.Flow.StatusOf(1))
	}
}

func TestBlockingValidationOnSubmit(t *testing.T) {
	n := node.NewInput("n", value.Text(""))
	n.WithValidators(nonEmptyRule)
	stepA := &flow.Step{ID: "A", Roots: []node.Node{n}}
	f := flow.New([]*flow.Step{stepA})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	now := time.Time{}

	effects := Dispatch(s, event.Key{Code: event.CodeEnter}, now)

	if s.Flow.Current != 0 {
		t.Fatalf("expected step index to remain 0, got %d", s.Flow.Current)
	}
	issues, vis := s.Validation.NodeIssues("n")
	if len(issues) != 1 || issues[0].Rule != "non-empty" {
		t.Fatalf("expected one non-empty issue, got %v", issues)
	}
	if vis != validation.Inline {
		t.Fatalf("expected Inline visibility, got %v", vis)
	}
	found := false
	for _, e := range effects {
		if e.Kind == EffSchedule && e.Schedule.Kind == SchedDebounce && e.Schedule.Key == ErrorDebounceKeyFor("n") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Debounce(clear-error(n)) effect, got %+v", effects)
	}
}

func TestTabCyclesCompletionBeforeFocus(t *testing.T) {
	q := newTextInput("q")
	q.WithCandidates(func(token string) []string { return []string{"alpha", "alice", "apple"} })
	q.SetBuffer("al", 2)

	step := &flow.Step{ID: "A", Roots: []node.Node{q}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	now := time.Time{}

	wantSequence := []string{"alpha", "alice", "apple", "alpha"}
	for _, want := range wantSequence {
		Dispatch(s, event.Key{Code: event.CodeTab}, now)
		if q.Buffer() != want {
			t.Fatalf("expected buffer %q, got %q", want, q.Buffer())
		}
	}

	Dispatch(s, event.Key{Code: event.CodeRune, Rune: 'x'}, now)
	if s.Completion != nil {
		t.Fatalf("expected completion session destroyed after non-Tab key")
	}
	if q.Buffer() != "alphax" {
		t.Fatalf("expected buffer alphax after commit+type, got %q", q.Buffer())
	}

	Dispatch(s, event.Key{Code: event.CodeTab}, now)
	if s.Completion != nil {
		t.Fatalf("expected ordinary focus traversal, not a new completion session")
	}
}

func TestBindingPropagatesWithTransformation(t *testing.T) {
	registry := binding.NewRegistry()
	g := binding.NewGraph(registry)
	if err := g.Bind("tags_raw", nodeid.DefaultPort, "tags", nodeid.DefaultPort, "CsvToList"); err != nil {
		t.Fatalf("unexpected Bind error: %v", err)
	}

	tagsRaw := newTextInput("tags_raw")
	tags := node.NewInput("tags", value.None)
	step := &flow.Step{ID: "A", Roots: []node.Node{tagsRaw, tags}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, g)
	now := time.Time{}

	typeRunes(t, s, now, "a,b,c")

	got := s.Store.Get("tags")
	list, ok := got.AsList()
	if !ok {
		t.Fatalf("expected store[tags] to be a List, got %v", got)
	}
	want := []string{"a", "b", "c"}
	if len(list) != len(want) {
		t.Fatalf("expected %v, got %v", want, list)
	}
	for i := range want {
		if list[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, list)
		}
	}
	if txt, _ := tags.Value().AsText(); txt != "" {
		// tags target was written via SetValue(List(...)), not AsText; this
		// branch only guards against an accidental Text fallback.
		t.Fatalf("expected tags node value to be a List, got Text(%q)", txt)
	}
}

func TestOverlayLifecycleEventSequence(t *testing.T) {
	inputA := newTextInput("a")
	inputB := newTextInput("b")
	inner := newTextInput("inner")
	modal := node.NewComponent("modal", inner)
	modal.MarkOverlayRoot(widget.OverlayMeta{Mode: widget.Exclusive})

	step := &flow.Step{ID: "A", Roots: []node.Node{inputA, inputB}, Overlays: []node.Node{modal}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	now := time.Time{}

	Reduce(s, Command{Kind: CmdNextFocus}, now)

	var lifecycle []string
	var valueProduced []string
	collect := func(effects []Effect) {
		for _, e := range effects {
			if e.Kind != EffEmitWidget {
				continue
			}
			switch e.WidgetEvent.Kind {
			case event.EventOverlayLifecycle:
				lifecycle = append(lifecycle, e.WidgetEvent.Name)
			case event.EventValueProduced:
				txt, _ := e.WidgetEvent.Value.AsText()
				valueProduced = append(valueProduced, txt)
			}
		}
	}

	collect(Reduce(s, Command{Kind: CmdOpenOverlay, OverlayID: "modal"}, now))
	collect(Dispatch(s, event.Key{Code: event.CodeRune, Rune: 'x'}, now))
	collect(Reduce(s, Command{Kind: CmdCloseOverlay}, now))

	wantLifecycle := []string{"BeforeOpen", "Opened", "BeforeClose", "Closed", "AfterClose"}
	if len(lifecycle) != len(wantLifecycle) {
		t.Fatalf("lifecycle sequence = %v, want %v", lifecycle, wantLifecycle)
	}
	for i, want := range wantLifecycle {
		if lifecycle[i] != want {
			t.Fatalf("lifecycle sequence = %v, want %v", lifecycle, wantLifecycle)
		}
	}
	if len(valueProduced) != 1 || valueProduced[0] != "x" {
		t.Fatalf("expected inner value 'x' produced between Opened and BeforeClose, got %v", valueProduced)
	}
	if id, ok := s.Focus.Current(); !ok || id != "b" {
		t.Fatalf("expected focus restored to b, got %q ok=%v", id, ok)
	}
}

func TestOverlayOpenCloseRestoresFocus(t *testing.T) {
	inputA := newTextInput("a")
	inputB := newTextInput("b")
	inner := newTextInput("inner")
	modal := node.NewComponent("modal", inner)
	modal.MarkOverlayRoot(widget.OverlayMeta{Mode: widget.Exclusive})

	step := &flow.Step{ID: "A", Roots: []node.Node{inputA, inputB}, Overlays: []node.Node{modal}}
	f := flow.New([]*flow.Step{step})
	s := appstate.New(f, binding.NewGraph(binding.NewRegistry()))
	now := time.Time{}

	Reduce(s, Command{Kind: CmdNextFocus}, now)
	if id, _ := s.Focus.Current(); id != "b" {
		t.Fatalf("expected focus on b before opening overlay, got %q", id)
	}

	Reduce(s, Command{Kind: CmdOpenOverlay, OverlayID: "modal"}, now)
	if s.Overlays.Len() != 1 {
		t.Fatalf("expected one open overlay, got %d", s.Overlays.Len())
	}
	if id, ok := s.Focus.Current(); !ok || id != "inner" {
		t.Fatalf("expected focus on inner after open, got %q ok=%v", id, ok)
	}

	Dispatch(s, event.Key{Code: event.CodeRune, Rune: 'x'}, now)
	if inner.Buffer() != "x" {
		t.Fatalf("expected inner buffer x, got %q", inner.Buffer())
	}

	Reduce(s, Command{Kind: CmdCloseOverlay}, now)
	if s.Overlays.Len() != 0 {
		t.Fatalf("expected overlay closed")
	}
	if id, ok := s.Focus.Current(); !ok || id != "b" {
		t.Fatalf("expected focus restored to b, got %q ok=%v", id, ok)
	}
}
