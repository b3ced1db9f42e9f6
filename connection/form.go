package connection

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"
)

// UploadFile is an uploaded file extracted from a multipart body. Body
// decoding passes it through untouched instead of JSON-decoding its content.
type UploadFile struct {
	Filename    string
	ContentType string
	Header      textproto.MIMEHeader
	Data        []byte
}

// FormItem is one decoded form entry. Value is either a string or an
// *UploadFile.
type FormItem struct {
	Key   string
	Value any
}

// FormData holds decoded form entries in the order they appeared on the wire.
type FormData struct {
	items []FormItem
}

// Items returns the form entries in wire order.
func (f *FormData) Items() []FormItem {
	return f.items
}

// Len returns the number of form entries.
func (f *FormData) Len() int {
	return len(f.items)
}

func parseMultipart(body []byte, boundary string) (*FormData, error) {
	if boundary == "" {
		return nil, fmt.Errorf("%w: multipart body without boundary", ErrInvalidForm)
	}
	form := &FormData{}
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		name := part.FormName()
		if name == "" {
			continue
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		if filename := part.FileName(); filename != "" {
			form.items = append(form.items, FormItem{
				Key: name,
				Value: &UploadFile{
					Filename:    filename,
					ContentType: part.Header.Get("Content-Type"),
					Header:      part.Header,
					Data:        data,
				},
			})
			continue
		}
		form.items = append(form.items, FormItem{Key: name, Value: string(data)})
	}
}

func parseURLEncoded(body []byte) (*FormData, error) {
	form := &FormData{}
	for _, pair := range strings.Split(string(body), "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		form.items = append(form.items, FormItem{Key: key, Value: value})
	}
	return form, nil
}
