package fileguard

import "sort"

// DefaultContext is the context label used when the caller supplies none.
const DefaultContext = "upload"

// defaultAllowlist is the built-in policy applied when the caller passes a
// nil allow-list: common image, video, transcript, JSON, and PDF types.
var defaultAllowlist = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/webm",
	"application/json",
	"text/plain",
	"text/vtt", // transcripts
	"application/pdf",
}

// defaultAllowSet is shared across calls and never mutated.
var defaultAllowSet = newAllowSet(defaultAllowlist)

// DefaultAllowlist returns a fresh copy of the built-in allow-list.
// Mutating the returned slice has no effect on subsequent validations.
func DefaultAllowlist() []string {
	out := make([]string, len(defaultAllowlist))
	copy(out, defaultAllowlist)
	return out
}

// allowSet is a resolved allow-list: exact MIME types plus any wildcard
// patterns ("image/*", "*/*"). The snapshot keeps the normalized entries
// sorted so every Decision built from the same policy is identical.
type allowSet struct {
	exact    map[string]struct{}
	prefixes []string // "image/" for an "image/*" entry
	all      bool     // "*/*" present
	snapshot []string
}

func newAllowSet(types []string) allowSet {
	s := allowSet{exact: make(map[string]struct{}, len(types))}
	for _, t := range types {
		t = normalizeMIME(t)
		if t == "" {
			continue
		}
		switch {
		case t == "*/*":
			s.all = true
		case len(t) > 2 && t[len(t)-2:] == "/*":
			s.prefixes = append(s.prefixes, t[:len(t)-1])
		default:
			s.exact[t] = struct{}{}
		}
		s.snapshot = append(s.snapshot, t)
	}
	sort.Strings(s.snapshot)
	s.snapshot = dedupeSorted(s.snapshot)
	return s
}

// contains reports whether mime is permitted by the set. mime must already
// be normalized.
func (s allowSet) contains(mime string) bool {
	if s.all {
		return true
	}
	if _, ok := s.exact[mime]; ok {
		return true
	}
	for _, p := range s.prefixes {
		if len(mime) > len(p) && mime[:len(p)] == p {
			return true
		}
	}
	return false
}

// list returns a fresh copy of the sorted snapshot.
func (s allowSet) list() []string {
	out := make([]string, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// empty reports whether the set permits nothing at all.
func (s allowSet) empty() bool {
	return len(s.snapshot) == 0
}

func dedupeSorted(in []string) []string {
	out := in[:0]
	for i, v := range in {
		if i == 0 || in[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}
