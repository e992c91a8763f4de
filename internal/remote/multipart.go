package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is one image part of a multipart upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Empty() bool { return len(f.Data) == 0 }

type formBody struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *formBody {
	f := &formBody{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *formBody) field(name, value string) *formBody {
	if f.err == nil {
		f.err = f.w.WriteField(name, value)
	}
	return f
}

// file adds one part; empty files are skipped.
func (f *formBody) file(name string, file File) *formBody {
	if f.err != nil || file.Empty() {
		return f
	}
	filename := file.Name
	if filename == "" {
		filename = name
	}
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", ct)

	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = part.Write(file.Data)
	return f
}

func (f *formBody) files(name string, files []File) *formBody {
	for _, file := range files {
		f.file(name, file)
	}
	return f
}

// finish closes the writer and returns the body and its content type.
func (f *formBody) finish() (*bytes.Reader, string, error) {
	if f.err != nil {
		return nil, "", fmt.Errorf("multipart gövde oluşturulamadı: %w", f.err)
	}
	if err := f.w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart gövde kapatılamadı: %w", err)
	}
	return bytes.NewReader(f.buf.Bytes()), f.w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (s *Store) callForm(ctx context.Context, r request, f *formBody, out any) error {
	body, ct, err := f.finish()
	if err != nil {
		return err
	}
	r.body = body
	r.contentType = ct
	return s.call(ctx, r, out)
}
