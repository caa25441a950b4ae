package model

import (
	"io"
)

// File is a binary part of a multipart form body.
type File struct {
	// Name is the file name sent in the part's Content-Disposition.
	Name string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Reader supplies the part contents.
	Reader io.Reader
}
