// Package cuuid generates RFC 4122 version 4 (random) UUIDs and converts
// them between a 128-bit binary representation and seven fixed-width
// string formats at different radixes.
//
// Besides the canonical hyphenated form, a UUID can be rendered compactly
// in base-62 (22 characters) or base-36 (25 characters), with optional
// hyphenated variants of each. The format of a string is identified by
// its length alone, so decoding never needs a format argument:
//
//	Length  Base  Layout
//	22      62    no hyphens (case-sensitive)
//	24      62    7-7-8 groups
//	25      36    no hyphens
//	29      36    5-5-5-5-5 groups
//	32      16    no hyphens
//	36      16    canonical 8-4-4-4-12
//	39      16    groups of 4
//
// Every format is fixed-width: renderings are left-padded with the base's
// zero digit, so round-tripping is lossless for any 128-bit value.
//
// Basic Usage:
//
//	// Generate a new UUIDv4
//	id, err := cuuid.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(id.String())
//
//	// Render the short base-62 form
//	short, err := id.Encode(cuuid.FormatBase62)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode any supported format, auto-detected by length
//	id, matched, err := cuuid.Decode(short)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(matched) // 22
//
// Custom Generator:
//
//	// Inject a deterministic entropy source, e.g. for tests
//	gen := cuuid.NewGeneratorWithReader(myReader)
//	id, err := gen.New()
//
// Thread Safety:
//
// All operations are thread-safe. The library keeps no mutable state; the
// default generator draws from crypto/rand, which is safe for concurrent
// use, so no additional synchronization is needed.
//
// Standards Compliance:
//
// Generated UUIDs follow the RFC 4122 version 4 construction: 122 bits of
// entropy with the version nibble forced to 0100 and the variant bits to
// 10. Decoding does not enforce the version or variant, so identifiers
// produced by other schemes parse as long as they are well-formed.
//
// The base-62 and base-36 forms are not standard UUID representations;
// they exist purely for compact string encoding. For the hyphenated
// lengths 24, 29 and 39, hyphens are stripped on decode without
// validating their positions (only the count is enforced); the canonical
// 36-character form is parsed strictly.
package cuuid
