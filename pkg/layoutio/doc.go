// Package layoutio reads and writes dashboard layout documents.
//
// A document carries a named layout: the grid configuration plus the
// component bounds. Two encodings are supported, JSON and TOML, chosen
// by file extension in Import and Export. The document types are
// plain serialization structs; convert to and from engine types with
// Document.GridConfig, Document.Layout, and FromLayout.
package layoutio
