// Package plan turns the directives of annotated classes into a fully
// resolved description of every output file.
//
// Pipeline:
//  1. Each source file is parsed and scanned for directives (mapping).
//  2. Builder creates one ClassMetadata per requested view, honoring
//     ignore, rename and retype directives, and groups the classes by
//     output filename in an Accumulator.
//  3. TransformerResolver resolves converter references into the
//     modules they are imported from, collecting async flags and the
//     shared context parameter type of each mapper direction.
//  4. After every source file has been processed, ImportResolver
//     computes the minimal import list of each view file and of its
//     companion mapper.
//
// The resulting Plan is consumed by gen, which renders and writes it.
package plan
