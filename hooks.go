package patternlock

// Hooks are optional callbacks fired after a Session changes.
//
// They run on the calling goroutine after the session lock is released, so a
// hook may read the session or call Reset. OnChange fires after every mutation
// and is the host's cue to re-render.
//
// OnErrorCleared, and the OnChange that follows it, come from the auto-clear
// timer: they run on the timer goroutine unless WithDispatcher is set.
type Hooks struct {
	OnSelect       func(DotEvent)
	OnBacktrack    func(DotEvent)
	OnComplete     func(Completion)
	OnError        func(reason string)
	OnErrorCleared func()
	OnChange       func(Snapshot)
}

// CombineHooks returns Hooks that call every non-nil callback of hs in order.
func CombineHooks(hs ...Hooks) Hooks {
	var out Hooks
	for _, h := range hs {
		out.OnSelect = chain1(out.OnSelect, h.OnSelect)
		out.OnBacktrack = chain1(out.OnBacktrack, h.OnBacktrack)
		out.OnComplete = chain1(out.OnComplete, h.OnComplete)
		out.OnError = chain1(out.OnError, h.OnError)
		out.OnChange = chain1(out.OnChange, h.OnChange)
		out.OnErrorCleared = chain0(out.OnErrorCleared, h.OnErrorCleared)
	}
	return out
}

func chain1[T any](prev, next func(T)) func(T) {
	switch {
	case next == nil:
		return prev
	case prev == nil:
		return next
	default:
		return func(v T) { prev(v); next(v) }
	}
}

func chain0(prev, next func()) func() {
	switch {
	case next == nil:
		return prev
	case prev == nil:
		return next
	default:
		return func() { prev(); next() }
	}
}
