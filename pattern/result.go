package pattern

// Outcome tags a Result.
type Outcome int

const (
	// Succeeded marks an accepted pattern.
	Succeeded Outcome = iota
	// Failed marks a rejected pattern.
	Failed
)

// String returns "success" or "failure".
func (o Outcome) String() string {
	if o == Succeeded {
		return "success"
	}
	return "failure"
}

// Result is the immutable outcome of validating a pattern.
// The zero value is a success.
type Result struct {
	outcome Outcome
	reason  string
	err     error
}

// Success returns an accepting Result.
func Success() Result {
	return Result{outcome: Succeeded}
}

// Failure returns a rejecting Result whose reason is err's message.
// A nil err is reported with InvalidMessage.
func Failure(err error) Result {
	if err == nil {
		return Result{outcome: Failed, reason: InvalidMessage}
	}
	return Result{outcome: Failed, reason: err.Error(), err: err}
}

// OK reports whether the pattern was accepted.
func (r Result) OK() bool { return r.outcome == Succeeded }

// Outcome returns the tag.
func (r Result) Outcome() Outcome { return r.outcome }

// Reason returns the failure message, or "" on success.
func (r Result) Reason() string { return r.reason }

// Err returns the underlying error for failures, or nil.
func (r Result) Err() error { return r.err }

// String returns "success" or "failure: <reason>".
func (r Result) String() string {
	if r.OK() {
		return r.outcome.String()
	}
	return r.outcome.String() + ": " + r.reason
}
