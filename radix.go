package cuuid

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
	"strings"
)

// Supported format lengths. The length of a rendered string fully
// identifies its format, so these constants double as format descriptors.
const (
	FormatBase62        = 22 // base-62, no hyphens, case-sensitive
	FormatBase62Hyphens = 24 // base-62 in 7-7-8 groups
	FormatBase36        = 25 // base-36, no hyphens
	FormatBase36Hyphens = 29 // base-36 in 5-5-5-5-5 groups
	FormatHex           = 32 // lowercase hex, no hyphens
	FormatCanonical     = 36 // canonical 8-4-4-4-12 hex
	FormatHexHyphens    = 39 // hex in groups of 4
)

const (
	alphabet62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	alphabet36 = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// SupportedFormats returns the supported format lengths in ascending order.
func SupportedFormats() []int {
	return []int{
		FormatBase62,
		FormatBase62Hyphens,
		FormatBase36,
		FormatBase36Hyphens,
		FormatHex,
		FormatCanonical,
		FormatHexHyphens,
	}
}

// Encode renders the UUID at the given format length. The rendered string
// has exactly that length for every UUID value, including Nil; shorter
// renderings are left-padded with the base's zero digit. Lengths outside
// the supported set fail with ErrInvalidFormat.
func (u UUID) Encode(length int) (string, error) {
	switch length {
	case FormatBase62:
		return u.formatRadix(62, 22, alphabet62), nil
	case FormatBase62Hyphens:
		return insertHyphens(u.formatRadix(62, 22, alphabet62), 7, 2), nil
	case FormatBase36:
		return u.formatRadix(36, 25, alphabet36), nil
	case FormatBase36Hyphens:
		return insertHyphens(u.formatRadix(36, 25, alphabet36), 5, 4), nil
	case FormatHex:
		return hex.EncodeToString(u[:]), nil
	case FormatCanonical:
		return u.String(), nil
	case FormatHexHyphens:
		return insertHyphens(hex.EncodeToString(u[:]), 4, 7), nil
	default:
		return "", ErrInvalidFormat
	}
}

// EncodeAll renders the UUID in every supported format, keyed by format
// length. Each base conversion runs once; the hyphenated variants are
// derived from their un-hyphenated siblings.
func (u UUID) EncodeAll() map[int]string {
	b62 := u.formatRadix(62, 22, alphabet62)
	b36 := u.formatRadix(36, 25, alphabet36)
	hx := hex.EncodeToString(u[:])

	return map[int]string{
		FormatBase62:        b62,
		FormatBase62Hyphens: insertHyphens(b62, 7, 2),
		FormatBase36:        b36,
		FormatBase36Hyphens: insertHyphens(b36, 5, 4),
		FormatHex:           hx,
		FormatCanonical:     u.String(),
		FormatHexHyphens:    insertHyphens(hx, 4, 7),
	}
}

// Decode parses s into a UUID, detecting the format from the string
// length alone. It returns the matched format length alongside the UUID.
func Decode(s string) (UUID, int, error) {
	return decode(s, 0)
}

// DecodeFormat is like Decode but additionally checks s against an
// expected format length. Zero means auto-detect; a negative length fails
// with ErrInvalidFormat, and a positive length that differs from len(s)
// fails with ErrLengthMismatch before any format dispatch.
func DecodeFormat(s string, length int) (UUID, int, error) {
	return decode(s, length)
}

func decode(s string, expected int) (UUID, int, error) {
	if expected < 0 {
		return Nil, 0, ErrInvalidFormat
	}
	if expected > 0 && expected != len(s) {
		return Nil, 0, ErrLengthMismatch
	}

	switch len(s) {
	case FormatBase62Hyphens:
		return decodeStripped(s, FormatBase62, FormatBase62Hyphens)
	case FormatBase36Hyphens:
		return decodeStripped(s, FormatBase36, FormatBase36Hyphens)
	case FormatHexHyphens:
		return decodeStripped(s, FormatHex, FormatHexHyphens)
	case FormatBase62:
		uuid, err := parseRadix(s, 62, digit62)
		if err != nil {
			return Nil, 0, err
		}
		return uuid, FormatBase62, nil
	case FormatBase36:
		uuid, err := parseRadix(s, 36, digit36)
		if err != nil {
			return Nil, 0, err
		}
		return uuid, FormatBase36, nil
	case FormatHex:
		uuid, err := parseHex(s)
		if err != nil {
			return Nil, 0, err
		}
		return uuid, FormatHex, nil
	case FormatCanonical:
		uuid, err := parseCanonical(s)
		if err != nil {
			return Nil, 0, err
		}
		return uuid, FormatCanonical, nil
	default:
		return Nil, 0, ErrUnsupportedLength
	}
}

// decodeStripped handles the loosely hyphenated formats: every hyphen is
// removed regardless of position, then the bare rendering is decoded.
// Hyphen count is still enforced, because a wrong count leaves the wrong
// bare length and fails with ErrLengthMismatch.
func decodeStripped(s string, bare, matched int) (UUID, int, error) {
	uuid, _, err := decode(strings.ReplaceAll(s, "-", ""), bare)
	if err != nil {
		return Nil, 0, err
	}
	return uuid, matched, nil
}

// parseHex parses the 32-character un-hyphenated hex form.
// Both hex cases are accepted.
func parseHex(s string) (UUID, error) {
	var uuid UUID
	if _, err := hex.Decode(uuid[:], []byte(s)); err != nil {
		return Nil, ErrParse
	}
	return uuid, nil
}

// parseCanonical parses the canonical 8-4-4-4-12 layout, validating the
// hyphen positions as part of the fixed-format parse.
func parseCanonical(s string) (UUID, error) {
	var uuid UUID

	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return Nil, ErrParse
	}
	if err := decodeHexSegment(uuid[0:4], s[0:8]); err != nil {
		return Nil, err
	}
	if err := decodeHexSegment(uuid[4:6], s[9:13]); err != nil {
		return Nil, err
	}
	if err := decodeHexSegment(uuid[6:8], s[14:18]); err != nil {
		return Nil, err
	}
	if err := decodeHexSegment(uuid[8:10], s[19:23]); err != nil {
		return Nil, err
	}
	if err := decodeHexSegment(uuid[10:16], s[24:36]); err != nil {
		return Nil, err
	}
	return uuid, nil
}

// decodeHexSegment decodes a hex string segment into a byte slice
func decodeHexSegment(dst []byte, src string) error {
	if _, err := hex.Decode(dst, []byte(src)); err != nil {
		return ErrParse
	}
	return nil
}

// words splits the UUID into big-endian hi/lo 64-bit halves.
func (u UUID) words() (hi, lo uint64) {
	return binary.BigEndian.Uint64(u[0:8]), binary.BigEndian.Uint64(u[8:16])
}

func fromWords(hi, lo uint64) UUID {
	var uuid UUID
	binary.BigEndian.PutUint64(uuid[0:8], hi)
	binary.BigEndian.PutUint64(uuid[8:16], lo)
	return uuid
}

// formatRadix renders the 128-bit value in the given base, left-padded
// with the base's zero digit to exactly width characters. Digits are
// collected least-significant-first by repeated division of the hi/lo
// halves, so the fixed-width loop pads naturally. 62^22 and 36^25 both
// exceed 2^128, so the value is always exhausted within width digits.
func (u UUID) formatRadix(base uint64, width int, alphabet string) string {
	hi, lo := u.words()
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		var rem uint64
		if hi == 0 {
			lo, rem = lo/base, lo%base
		} else {
			qhi, rhi := hi/base, hi%base
			var qlo uint64
			qlo, rem = bits.Div64(rhi, lo, base)
			hi, lo = qhi, qlo
		}
		buf[i] = alphabet[rem]
	}
	return string(buf)
}

// parseRadix parses a digit string in the given base into a 128-bit
// value via multiply-accumulate over the hi/lo halves. Characters outside
// the base's alphabet fail with ErrParse, as do strings encoding values
// of 2^128 or more (possible at the base-62 and base-36 widths).
func parseRadix(s string, base uint64, digit func(byte) (uint64, bool)) (UUID, error) {
	var hi, lo uint64
	for i := 0; i < len(s); i++ {
		d, ok := digit(s[i])
		if !ok {
			return Nil, ErrParse
		}
		mulHi, mulLo := bits.Mul64(lo, base)
		newLo, carry := bits.Add64(mulLo, d, 0)
		overflow, hiMul := bits.Mul64(hi, base)
		newHi, carry2 := bits.Add64(hiMul, mulHi, carry)
		if overflow != 0 || carry2 != 0 {
			return Nil, ErrParse
		}
		hi, lo = newHi, newLo
	}
	return fromWords(hi, lo), nil
}

// digit62 maps a base-62 character to its value. Case is significant:
// '0'-'9' are 0-9, 'A'-'Z' are 10-35, 'a'-'z' are 36-61.
func digit62(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 10, true
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 36, true
	}
	return 0, false
}

// digit36 maps a base-36 character to its value, ignoring case.
func digit36(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}

// insertHyphens inserts a hyphen after every group of size group,
// stopping after count insertions so the final group never ends with a
// trailing hyphen.
func insertHyphens(s string, group, count int) string {
	var b strings.Builder
	b.Grow(len(s) + count)
	for i := 0; i < len(s); i++ {
		if i > 0 && i%group == 0 && i/group <= count {
			b.WriteByte('-')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
