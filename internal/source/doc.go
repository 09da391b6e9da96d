// Package source loads configuration documents and builds the ordered list
// of (file, path expression) pairs that feed resolution.
//
// # Formats
//
// Files ending in .yaml or .yml are decoded as YAML. Everything else is
// decoded as JSON after stripping comments and trailing commas, so a
// .env.json may carry notes:
//
//	{
//	  // local development only
//	  "NODE_ENV": "development",
//	  "PORT": 3000,
//	}
//
// Both formats produce the same tree: map[string]any, []any, string,
// json.Number, bool and nil.
//
// # Errors
//
// [IOError] means the file could not be opened or read. [ParseError] means
// its content is not a single well-formed document. Both carry the path.
package source
