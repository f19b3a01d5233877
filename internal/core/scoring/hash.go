package scoring

import "hash/fnv"

// seedHash is the content-addressed index used when a track has no audio
// features: the same seed text always maps to the same label, without storage.
// It is not a source of randomness.
func seedHash(seed string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return h.Sum32()
}
