// Package imaging provides image decoding and color utilities for the
// floor plan analysis service.
//
// This package handles the byte-level image plumbing shared by the HTTP
// handlers and upstream clients: decoding uploads in any supported
// format, round-tripping base64 payloads (including data URI prefixed
// and unpadded variants returned by external services), PNG encoding,
// and media type normalization. It also extracts dominant color
// palettes and resolves hex colors to human-readable names for
// shopping queries.
//
// # Supported Formats
//
// Decoding supports PNG, JPEG, GIF, WebP, and BMP. Format detection is
// content-based via the registered decoders, never by file extension.
// Encoding is always PNG, the wire format for annotated output images.
//
// # Color Naming
//
// ColorName maps arbitrary hex colors onto a fixed reference palette
// using CIE Lab distance, so nearby shades resolve to stable names
// ("#FAFAFA" -> "white"). The palette covers the color vocabulary used
// when composing furniture search queries.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package imaging
