// Package pathtree implements the PathTree round-robin index spec.md §4.6
// describes: plain paths fall into one length-sorted bucket, middlebox
// paths fall into one bucket per middlebox they traverse, and Next()
// advances a cyclic iterator over buckets then draws from that bucket's
// own cyclic iterator, producing a fair round-robin across middleboxes.
//
// The design note in spec.md §9 calls for "an explicit index-pair state
// (bucket_cursor, per_bucket_cursors[]) advanced in lock-step" in place of
// an iterator-of-iterators with a shared mutable cursor; that is exactly
// the bucket/PathTree split below.
package pathtree

import (
	"sort"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/selerr"
)

// bucket holds the candidate indices for one key (a middlebox node id, or
// 0 for the single plain-path bucket) along with its own cyclic cursor.
type bucket struct {
	key     int
	indices []int
	cursor  int
}

// next returns the bucket's next index and advances its cursor, wrapping
// around.
func (b *bucket) next() int {
	v := b.indices[b.cursor]
	b.cursor = (b.cursor + 1) % len(b.indices)
	return v
}

// PathTree is the round-robin index over a single traffic class's
// candidate paths.
type PathTree struct {
	buckets      []*bucket
	bucketCursor int
}

// plainBucketKey is the single bucket key used when every path in the
// sequence is a plain path.
const plainBucketKey = 0

// Build classifies paths into buckets and returns the PathTree. Every path
// must be either a *pptc.PlainPath or a *pptc.MboxPath; any other concrete
// type is an unknown variant and Build returns a *selerr.TypeError (spec
// §7).
func Build(paths []pptc.Path) (*PathTree, error) {
	if len(paths) == 0 {
		return &PathTree{}, nil
	}

	anyMbox := false
	for _, p := range paths {
		switch p.(type) {
		case *pptc.PlainPath:
		case *pptc.MboxPath:
			anyMbox = true
		default:
			return nil, selerr.NewTypeError("pathtree.Build", typeName(p))
		}
	}

	if !anyMbox {
		return buildPlainBucket(paths), nil
	}
	return buildMboxBuckets(paths)
}

func buildPlainBucket(paths []pptc.Path) *PathTree {
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		la, lb := paths[idx[a]].Length(), paths[idx[b]].Length()
		if la != lb {
			return la < lb
		}
		return idx[a] < idx[b]
	})
	return &PathTree{buckets: []*bucket{{key: plainBucketKey, indices: idx}}}
}

func buildMboxBuckets(paths []pptc.Path) (*PathTree, error) {
	byKey := make(map[int][]int)
	var keys []int
	for i, p := range paths {
		mboxes, ok := p.Middleboxes()
		if !ok || len(mboxes) == 0 {
			continue
		}
		for _, m := range mboxes {
			key := int(m)
			if _, seen := byKey[key]; !seen {
				keys = append(keys, key)
			}
			byKey[key] = append(byKey[key], i)
		}
	}
	sort.Ints(keys)

	t := &PathTree{}
	for _, k := range keys {
		t.buckets = append(t.buckets, &bucket{key: k, indices: byKey[k]})
	}
	return t, nil
}

// Empty reports whether the tree has no buckets to draw from.
func (t *PathTree) Empty() bool {
	return len(t.buckets) == 0
}

// Next advances the outer (bucket) cursor by one bucket, then returns the
// next index from that bucket's own cursor. Panics if the tree is empty;
// callers must check Empty first.
func (t *PathTree) Next() int {
	if t.Empty() {
		panic("pathtree: Next called on empty tree")
	}
	b := t.buckets[t.bucketCursor]
	t.bucketCursor = (t.bucketCursor + 1) % len(t.buckets)
	return b.next()
}

func typeName(p pptc.Path) string {
	if p == nil {
		return "<nil>"
	}
	switch p.(type) {
	case *pptc.PlainPath:
		return "PlainPath"
	case *pptc.MboxPath:
		return "MboxPath"
	default:
		return "unknown"
	}
}
