// Package upload turns files on disk into chart images the controller can accept.
//
// Inspect reads only what a browser file picker would know about a file: its
// name, size and declared content type. Validate applies the type and size
// limits, and Decoder produces the preview shown once a file is accepted.
package upload
