// Package formatter renders playlist tracks through placeholder templates and writes the text listing.
//
// Templates use %name%, %artist% and %yt% tokens. [Render] makes a single pass over the template, so a
// substituted value is never scanned for further tokens.
package formatter
