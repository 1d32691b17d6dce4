package filestore

// Common MIME content types for file operations.
const (
	// Images.
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
	ContentTypeSVG  = "image/svg+xml"
	ContentTypeBMP  = "image/bmp"

	// Documents.
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml"
	ContentTypeCSV  = "text/csv"

	// Archives.
	ContentTypeZIP  = "application/zip"
	ContentTypeTAR  = "application/x-tar"
	ContentTypeGZIP = "application/gzip"

	// Other.
	ContentTypeOctetStream = "application/octet-stream"
)
