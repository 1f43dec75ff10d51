package crashlight

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type stubIter struct {
	frames []Frame
	i      int
}

func (it *stubIter) Next() (Frame, bool) {
	if it.i >= len(it.frames) {
		return Frame{}, false
	}
	fr := it.frames[it.i]
	it.i++
	return fr, true
}

type stubUnwinder struct {
	calls  int
	frames []Frame
}

func (u *stubUnwinder) Unwind(skip int) FrameIter {
	u.calls++
	return &stubIter{frames: u.frames}
}

func newTestHandler(out *bytes.Buffer, u Unwinder) *Handler {
	return &Handler{out: out, unwinder: u}
}

func TestHandle_MinimalPrintsSummaryOnly(t *testing.T) {
	t.Setenv(EnvVerbosity, "")

	u := &stubUnwinder{frames: []Frame{{Func: "main.work", Path: "/src/app.go", Line: 42}}}
	var buf bytes.Buffer
	h := newTestHandler(&buf, u)

	if err := h.Handle(PanicInfo{Value: "boom", Path: "/src/app.go", Line: 42}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Oh noez! Panic!", "Message:  boom", "Location: /src/app.go:42"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "BACKTRACE") {
		t.Fatalf("minimal verbosity printed a backtrace:\n%s", out)
	}
	if u.calls != 0 {
		t.Fatalf("minimal verbosity captured the stack %d times, want 0", u.calls)
	}
}

func TestHandle_MediumPrintsBacktraceWithoutSource(t *testing.T) {
	t.Setenv(EnvVerbosity, "1")

	path := writeNumberedFile(t, 50)
	u := &stubUnwinder{frames: []Frame{{Func: "main.work", Path: path, Line: 42}}}
	var buf bytes.Buffer
	h := newTestHandler(&buf, u)

	if err := h.Handle(PanicInfo{Value: "boom", Path: path, Line: 42}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "[ BACKTRACE ]") {
		t.Fatalf("medium verbosity missing backtrace header:\n%s", out)
	}
	if !strings.Contains(out, " 0: main.work") {
		t.Fatalf("missing indexed frame line:\n%s", out)
	}
	if !strings.Contains(out, "    "+path+":42") {
		t.Fatalf("missing frame location line:\n%s", out)
	}
	if strings.Contains(out, ">>") {
		t.Fatalf("medium verbosity rendered source excerpts:\n%s", out)
	}
	if u.calls != 1 {
		t.Fatalf("stack captured %d times, want 1", u.calls)
	}
}

func TestHandle_FullAnnotatesFramesWithSource(t *testing.T) {
	t.Setenv(EnvVerbosity, "full")

	path := writeNumberedFile(t, 50)
	u := &stubUnwinder{frames: []Frame{{Func: "main.work", Path: path, Line: 42}}}
	var buf bytes.Buffer
	h := newTestHandler(&buf, u)

	if err := h.Handle(PanicInfo{Value: "boom", Path: path, Line: 42}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"      40 line 40", ">>    42 line 42", "      44 line 44"} {
		if !strings.Contains(out, want) {
			t.Fatalf("full verbosity missing %q:\n%s", want, out)
		}
	}
}

func TestHandle_TopLevelLocationNeverGetsAnExcerpt(t *testing.T) {
	t.Setenv(EnvVerbosity, "full")

	path := writeNumberedFile(t, 50)
	u := &stubUnwinder{}
	var buf bytes.Buffer
	h := newTestHandler(&buf, u)

	// No frames: any excerpt in the output would belong to the
	// top-level location, which stays excerpt-free at all levels.
	if err := h.Handle(PanicInfo{Value: "boom", Path: path, Line: 42}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if strings.Contains(buf.String(), ">>") {
		t.Fatalf("top-level location was annotated with source:\n%s", buf.String())
	}
}

func TestHandle_NonStringPayloadPlaceholder(t *testing.T) {
	t.Setenv(EnvVerbosity, "")

	var buf bytes.Buffer
	h := newTestHandler(&buf, &stubUnwinder{})
	if err := h.Handle(PanicInfo{Value: errors.New("boom")}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(buf.String(), "Message:  <non string panic payload>") {
		t.Fatalf("placeholder missing for non-string payload:\n%s", buf.String())
	}
}

func TestHandle_UnknownLocationPlaceholder(t *testing.T) {
	t.Setenv(EnvVerbosity, "")

	var buf bytes.Buffer
	h := newTestHandler(&buf, &stubUnwinder{})
	if err := h.Handle(PanicInfo{Value: "boom"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(buf.String(), "Location: <unknown>") {
		t.Fatalf("missing location placeholder:\n%s", buf.String())
	}
}

func TestHandle_DuplicateFramesStayDistinct(t *testing.T) {
	t.Setenv(EnvVerbosity, "1")

	fr := Frame{Func: "main.recurse", Path: "/src/app.go", Line: 7}
	u := &stubUnwinder{frames: []Frame{fr, fr, fr}}
	var buf bytes.Buffer
	h := newTestHandler(&buf, u)

	if err := h.Handle(PanicInfo{Value: "boom"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := buf.String()
	for _, want := range []string{" 0: main.recurse", " 1: main.recurse", " 2: main.recurse"} {
		if !strings.Contains(out, want) {
			t.Fatalf("recursive frame collapsed, missing %q:\n%s", want, out)
		}
	}
}

// failAfterWriter fails every write once the budget is spent.
type failAfterWriter struct {
	budget int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.budget == 0 {
		return 0, errors.New("sink gone")
	}
	w.budget--
	return len(p), nil
}

func TestHandle_WriteFailureAbortsReport(t *testing.T) {
	t.Setenv(EnvVerbosity, "1")

	u := &stubUnwinder{frames: []Frame{
		{Func: "main.a"}, {Func: "main.b"}, {Func: "main.c"},
	}}
	h := &Handler{out: &failAfterWriter{budget: 5}, unwinder: u}

	if err := h.Handle(PanicInfo{Value: "boom"}); err == nil {
		t.Fatal("expected the sink failure to abort the report")
	}
}

func TestHandle_ResolvesVerbosityPerFault(t *testing.T) {
	u := &stubUnwinder{frames: []Frame{{Func: "main.work"}}}
	var buf bytes.Buffer
	h := newTestHandler(&buf, u)

	t.Setenv(EnvVerbosity, "")
	if err := h.Handle(PanicInfo{Value: "boom"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if u.calls != 0 {
		t.Fatalf("stack captured at minimal, calls = %d", u.calls)
	}

	t.Setenv(EnvVerbosity, "1")
	if err := h.Handle(PanicInfo{Value: "boom"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if u.calls != 1 {
		t.Fatalf("verbosity not re-resolved on second fault, calls = %d", u.calls)
	}
}

func TestNew_ColorOffForNonTerminalWriter(t *testing.T) {
	t.Setenv(EnvVerbosity, "")

	var buf bytes.Buffer
	h := New(&buf)
	if err := h.Handle(PanicInfo{Value: "boom"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("ANSI escapes written to a non-terminal sink:\n%q", buf.String())
	}
}

func TestPalette_EnabledEmitsAnsi(t *testing.T) {
	t.Parallel()

	pal := newPalette(true)
	s := pal.banner("x")
	if !strings.Contains(s, "\x1b[31m") || !strings.Contains(s, "\x1b[0m") {
		t.Fatalf("enabled palette did not wrap text in set/reset codes: %q", s)
	}
}

func TestCenter(t *testing.T) {
	t.Parallel()

	got := center("[ BACKTRACE ]", 80, '-')
	if len(got) != 80 {
		t.Fatalf("centered header length = %d, want 80", len(got))
	}
	if !strings.Contains(got, "---[ BACKTRACE ]---") {
		t.Fatalf("header not surrounded by dashes: %q", got)
	}
	if got := center("toolongtocenter", 4, '-'); got != "toolongtocenter" {
		t.Fatalf("over-wide text mangled: %q", got)
	}
}
