package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsAllowedFileType(filename string, allowedTypes []string) bool {
	ext := strings.TrimPrefix(GetFileExtension(filename), ".")

	for _, allowedType := range allowedTypes {
		if ext == allowedType {
			return true
		}
	}

	return false
}

func IsImageFile(filename string) bool {
	return IsAllowedFileType(filename, AllowedImageTypes)
}

// GenerateUniqueFilename keeps the original extension and prefixes a
// millisecond timestamp so names sort by upload time.
func GenerateUniqueFilename(originalFilename string) string {
	ext := GetFileExtension(originalFilename)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

func ValidateImageHeader(header *multipart.FileHeader) error {
	if !IsImageFile(header.Filename) {
		return fmt.Errorf("%s is not an allowed image type", header.Filename)
	}
	if header.Size > MaxImageSize {
		return fmt.Errorf("%s exceeds maximum allowed size of %d bytes", header.Filename, MaxImageSize)
	}
	return nil
}

func GetContentType(filename string) string {
	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
	}

	if contentType, exists := contentTypes[GetFileExtension(filename)]; exists {
		return contentType
	}

	return "application/octet-stream"
}
