// Package mangle encodes managed identifiers into legal native symbol names.
//
// The encoding is byte-exact: native libraries export functions under the
// names produced here, so any change to the output breaks binding of every
// library built against it.
//
// Per UTF-16 code unit of the input:
//
//	'.' or '/'        -> "_"
//	'_'               -> "_1"
//	';'               -> "_2"
//	'['               -> "_3"
//	[A-Za-z0-9]       -> itself
//	anything else     -> "_0" + 4 lowercase hex digits
//
// A code point outside the BMP is written as two escapes, the low
// (trailing) surrogate first and the high (leading) surrogate second.
package mangle
