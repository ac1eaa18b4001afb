package utils

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

var pictureExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// MaxPictureSize caps uploaded artifact pictures.
const MaxPictureSize = 5 * 1024 * 1024

// IsPicture reports whether the upload looks like an image we accept.
func IsPicture(fileHeader *multipart.FileHeader) bool {
	if fileHeader == nil || fileHeader.Size > MaxPictureSize {
		return false
	}
	return pictureExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))]
}
