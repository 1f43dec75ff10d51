package crashlight

import "runtime"

// FrameIter is a lazy, non-restartable walk over symbolicated frames,
// outermost capture first. Next returns false once exhausted.
type FrameIter interface {
	Next() (Frame, bool)
}

// Unwinder captures the calling goroutine's stack at the moment of
// failure. One raw program counter may expand to several frames
// (inlined calls) or to none; every resolved record is yielded in
// capture order.
type Unwinder interface {
	Unwind(skip int) FrameIter
}

const defaultMaxDepth = 64

// callersUnwinder is the production Unwinder, built on runtime.Callers
// and runtime.CallersFrames. CallersFrames handles the inlining
// expansion for us.
type callersUnwinder struct {
	maxDepth int
}

func (u callersUnwinder) Unwind(skip int) FrameIter {
	depth := u.maxDepth
	if depth <= 0 {
		depth = defaultMaxDepth
	}
	pc := make([]uintptr, depth)
	// +2 skips runtime.Callers and Unwind itself.
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return &callersIter{}
	}
	return &callersIter{frames: runtime.CallersFrames(pc[:n])}
}

type callersIter struct {
	frames *runtime.Frames
}

func (it *callersIter) Next() (Frame, bool) {
	if it.frames == nil {
		return Frame{}, false
	}
	fr, more := it.frames.Next()
	if !more {
		it.frames = nil
		if fr.PC == 0 && fr.Function == "" && fr.File == "" {
			return Frame{}, false
		}
	}
	return Frame{Path: fr.File, Line: fr.Line, Func: fr.Function}, true
}
