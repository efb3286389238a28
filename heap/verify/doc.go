// Package verify checks the structural invariants of a heap arena and its
// free list.
//
// The checks read the arena bytes directly and never mutate them, so they
// can run after every operation in tests or from a diagnostic tool:
//
//	if err := verify.AllInvariants(arena, head); err != nil {
//		var ve *verify.ValidationError
//		if errors.As(err, &ve) {
//			log.Printf("%s at 0x%X: %v", ve.Type, ve.Offset, ve.Details)
//		}
//	}
//
// NoAdjacentFree is not part of AllInvariants because it only holds for
// allocators that coalesce on free.
package verify
