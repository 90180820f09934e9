// Package codec implements the binary container decoders of the texture
// subsystem: KTX v1, legacy DDS, Radiance HDR and the Basis universal
// format. Each decoder takes a raw byte buffer and produces a normalized
// tex.DecodedImage; Decode sniffs the container from its magic bytes and
// dispatches to the right one, transparently unwrapping gzip.
//
// The decoders share no state and perform no I/O; fetching bytes belongs
// to the asset pipeline. A decoder either succeeds completely or returns
// an error with no image, with one exception: an unrecognized DDS
// variant yields a small placeholder image alongside the error, so a
// single odd legacy file does not abort a whole scene load.
package codec
