package caches

import "time"

// BlobCache is a read-through cache for stored blob bytes sitting in front
// of the object store. The content type recorded at upload time travels
// with the bytes so cached responses keep their original headers.
type BlobCache interface {
	Get(name string) (data []byte, contentType string, ok bool)
	Set(name string, data []byte, contentType string)
	Stats() (hits, misses int64)
}

// DefaultTTL is how long cached blob bytes stay valid. Blobs are immutable
// after upload so the TTL only bounds memory, not staleness.
const DefaultTTL = 15 * time.Minute
