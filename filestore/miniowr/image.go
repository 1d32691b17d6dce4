package miniowr

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/code19m/errx"
	"github.com/disintegration/imaging"

	"github.com/forja-labs/pkg/filestore"
)

const (
	mediumWidth = 800
	smallWidth  = 300
)

// UploadImage uploads an image and its resized variants.
//
// The original image is stored at the given path; medium and small variants
// are stored next to it with the size label appended before the extension
// (e.g. "avatars/u1.jpg" -> "avatars/u1_small.jpg"). Returns the stored
// paths keyed by image size.
func (c *Client) UploadImage(ctx context.Context, path string, reader io.Reader) (map[filestore.ImageSize]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errx.New("file is not an image",
			errx.WithCode(filestore.CodeUnsupportedContentType),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"content_type": contentType}),
		)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errx.Wrap(err,
			errx.WithCode(filestore.CodeUnsupportedContentType),
			errx.WithType(errx.T_Validation),
		)
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = imaging.JPEG
	}

	variants := map[filestore.ImageSize]image.Image{
		filestore.Original: img,
		filestore.Medium:   imaging.Resize(img, mediumWidth, 0, imaging.Lanczos),
		filestore.Small:    imaging.Resize(img, smallWidth, 0, imaging.Lanczos),
	}

	paths := make(map[filestore.ImageSize]string, len(variants))
	for size, variant := range variants {
		variantPath := path
		if size != filestore.Original {
			variantPath = variantPathFor(path, size)
		}

		buf := new(bytes.Buffer)
		if err = imaging.Encode(buf, variant, format); err != nil {
			return nil, errx.Wrap(err)
		}

		if _, err = c.putObject(ctx, variantPath, buf.Bytes(), contentType); err != nil {
			return nil, errx.Wrap(err)
		}
		paths[size] = variantPath
	}

	return paths, nil
}

func variantPathFor(path string, size filestore.ImageSize) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + string(size) + ext
}
