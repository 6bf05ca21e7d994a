// Package mapping decodes the generation decorators of parsed source
// files into a closed set of typed directives.
//
// # Decorators
//
// Class decorators:
//
//	@GenerateView({ model: "heroViewModel", filePath: "../views", mapperPath: "../mappers" })
//	@NeedMapper()        // request the mapper
//	@NeedMapper(false)   // suppress the mapper of every class sharing the output file
//
// Field decorators, each optionally scoped to one model:
//
//	@IgnoreViewModel()                     // drop the field
//	@IgnoreViewModel("heroViewModel")
//	@ViewModelName("detail")               // rename the field
//	@ViewModelName("detail", "heroViewModel")
//	@ViewModelType({ type: "string", transformer: { toView: "format" } })
//	@ViewModelType("PowerView", "../views", "heroViewModel")
//
// A class may carry several @GenerateView decorators; each produces its
// own view class. Unknown decorators are ignored.
//
// # Decoding
//
// Decorator arguments are converted into a yaml.Node tree (objects become
// mapping nodes, argument lists and arrays sequence nodes) and decoded
// with yaml.Node.Decode into the directive structs. Each directive
// implements yaml.Unmarshaler to accept both its positional and its
// object form.
package mapping
