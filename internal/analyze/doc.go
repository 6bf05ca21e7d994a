// Package analyze provides source discovery, structural parsing of
// TypeScript model files and module loading.
//
// The parser is structural only: it recognizes import statements, class
// declarations with their decorators and property declarations, and
// top-level function declarations (including arrow functions bound to
// const). Function and method bodies, initializers and every other
// statement are skipped without being interpreted.
//
// Key types:
//   - File: the parsed structure of one source file
//   - ImportNode: one import statement with its clauses and resolved path
//   - TypeRef: a declared property type with array nesting unwrapped
//   - Loader: reads and parses files, resolving referenced modules with
//     the "<path>.ts, then <path>/index.ts" lookup policy
package analyze
