package crawl

import "github.com/fwojciec/staffdir"

// Frontier is a LIFO worklist of prefixes still to be queried.
//
// Expanding a stem pushes its children in reverse charset order, so
// popping visits prefixes in the same depth-first, charset-ordered
// sequence a recursive walk would, without a depth limit.
type Frontier struct {
	stack []string
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// Expand queues stem+c for every character c of the charset that follows stem.
func (f *Frontier) Expand(stem string) {
	cs := staffdir.Charset(stem)
	for i := len(cs) - 1; i >= 0; i-- {
		f.stack = append(f.stack, stem+cs[i:i+1])
	}
}

// Pop returns the next prefix to query.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	n := len(f.stack)
	if n == 0 {
		return "", false
	}
	prefix := f.stack[n-1]
	f.stack = f.stack[:n-1]
	return prefix, true
}

// Len returns the number of queued prefixes.
func (f *Frontier) Len() int {
	return len(f.stack)
}
