// Package gen renders resolved plans into TypeScript view and mapper
// files and writes them.
//
// Generation uses text/template over precomputed template data: every
// assignment expression is built in Go, templates only lay them out.
//
// View constructor patterns:
//   - Direct copy of primitive fields
//   - String(...) for fields retyped to string
//   - JSON deep copy of other complex fields
//   - new View(...) for fields whose type is a generated view
//   - Per-element map for arrays, one level per array dimension
//
// Mapper patterns:
//   - Converter calls (awaited when async, with the context argument when declared)
//   - Literal assignments for references that match no import
//   - Nested mapper calls, Promise.all over arrays when async
package gen
