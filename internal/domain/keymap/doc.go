// Package keymap loads per-application key binding files.
//
// Files are named <appName>_<layout>.kbd under the extensions root and hold
// one binding per line:
//
//	# comment line (ignored)
//	<key-chord> = <script-name>
//
// A missing file for the requested layout falls back to the desktop layout.
// An application with no key-map file is not an error.
package keymap
