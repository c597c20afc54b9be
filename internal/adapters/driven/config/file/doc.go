// Package file loads application configuration from a TOML file.
//
// Configuration lives at ~/.pdfvector/config.toml by default. Every
// field has a working default, so a missing file is not an error; an
// unreadable or malformed file is.
package file
