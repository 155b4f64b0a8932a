// Package pathcodec implements the percent-encoding codec and the
// path+query splitter that every other navstate package builds on.
//
// Grounded on router/query.go's QueryParser (percent-decoding, "+"→space,
// deterministic query-string building) and router/pattern.go's segment
// tokenizer, generalized to the round-trip-safe double-encoding scheme the
// spec requires: a string that already contains a "%xx" sequence survives
// an EncodePath/Decode round trip bit-for-bit instead of being interpreted
// as an escape on the way back.
package pathcodec
