/*
Responsibilities
- Track MD5 digests of full response bodies already seen this run
- Short-circuit mirror pages and near-duplicate content hubs: a body whose
  digest has been seen before yields no new links and no persisted text
  artifact, but the URL that produced it remains claimed.
*/
package contenthash

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
)

// Set is component C: the Content Hash Set.
type Set struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Digest computes the MD5 hex digest of body. This is the ContentDigest of
// the data model (§3): the spec mandates MD5 of the raw decoded HTML body.
func Digest(body []byte) string {
	sum := md5.Sum(body)
	return hex.EncodeToString(sum[:])
}

// CheckAndAdd returns true if digest has not been seen before, recording it
// atomically in the same step (test-and-set, mirroring the Visited Store's
// Claim contract).
func (s *Set) CheckAndAdd(digest string) (isNew bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[digest]; exists {
		return false
	}
	s.seen[digest] = struct{}{}
	return true
}

func (s *Set) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
