package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"restoran-backoffice/internal/i18n"
	"restoran-backoffice/internal/media"
	"restoran-backoffice/internal/remote"
)

// ErrBadImage marks an upload that could not be decoded.
var ErrBadImage = errors.New("geçersiz görsel")

// Image reads and resizes the uploaded file field. A missing field yields an
// empty file and no error.
func Image(c *fiber.Ctx, field string, target media.Target) (remote.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return remote.File{}, nil
		}
		return remote.File{}, fmt.Errorf("%s okunamadı: %w", field, err)
	}
	return resize(fh, target)
}

// Images is Image for a repeated field.
func Images(c *fiber.Ctx, field string, target media.Target) ([]remote.File, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}
	var out []remote.File
	for _, fh := range mf.File[field] {
		f, err := resize(fh, target)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func resize(fh *multipart.FileHeader, target media.Target) (remote.File, error) {
	src, err := fh.Open()
	if err != nil {
		return remote.File{}, fmt.Errorf("%s açılamadı: %w", fh.Filename, err)
	}
	defer src.Close()

	res, err := media.Resize(src, target)
	if err != nil {
		if errors.Is(err, media.ErrDecode) {
			return remote.File{}, fmt.Errorf("%w: %s", ErrBadImage, fh.Filename)
		}
		return remote.File{}, err
	}

	name := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename)) + res.Ext
	return remote.File{Name: name, ContentType: res.ContentType, Data: res.Data}, nil
}

// File reads the uploaded field without transforming it. A missing field
// yields an empty file and no error.
func File(c *fiber.Ctx, field string) (remote.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return remote.File{}, nil
		}
		return remote.File{}, fmt.Errorf("%s okunamadı: %w", field, err)
	}
	src, err := fh.Open()
	if err != nil {
		return remote.File{}, fmt.Errorf("%s açılamadı: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return remote.File{}, fmt.Errorf("%s okunamadı: %w", fh.Filename, err)
	}
	return remote.File{Name: filepath.Base(fh.Filename), ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

// ImageFailed answers a failed upload read: 400 naming the field.
func ImageFailed(c *fiber.Ctx, field string, err error, form any) error {
	key := "common.field.invalid"
	if errors.Is(err, ErrBadImage) {
		key = "common.error.invalidImage"
	}
	return Invalid(c, map[string]string{field: i18n.Tc(c, key)}, form)
}

// Required adds a "required" message for field to fields when missing is true.
func Required(c *fiber.Ctx, fields map[string]string, field string, missing bool) map[string]string {
	if !missing {
		return fields
	}
	if fields == nil {
		fields = map[string]string{}
	}
	fields[field] = i18n.Tc(c, "common.field.required")
	return fields
}
