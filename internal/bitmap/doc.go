// Package bitmap provides the rank/select bitmap that backs bitmap row maps.
//
// # Architecture
//
// Memory layout:
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│  Block 0 (64B)  │  Block 1 (64B)  │  Block 2 (64B)  │ ...           │
//	│  8 × uint64     │  8 × uint64     │  8 × uint64     │               │
//	│  bits [0,511]   │  bits [512,1023]│  bits [1024,1535]│              │
//	└─────────────────────────────────────────────────────────────────────┘
//
// Rank directory ([]uint32, one entry per block plus a trailing total):
//
//	blockRank[b]         = set bits in blocks [0, b)
//	blockRank[numBlocks] = cardinality
//
// Active block mask ([]uint64): bit b is set when block b has any set bit.
//
// # Complexity
//
//   - Contains: O(1)
//   - Rank: O(1) (directory lookup plus at most 8 word popcounts)
//   - Select: O(log blocks) binary search over the directory plus an in-block scan
//   - Set: O(blocks after the touched block) to shift the directory;
//     O(1) when appending at the end, which is the common path
//   - RemoveIf/AddMany/And/AndNot: one directory rebuild, O(words)
//
// The directory is maintained eagerly on every mutation, so read operations
// never write and a Bitmap may be read from several goroutines at once as
// long as nobody mutates it.
package bitmap
