package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	content  []byte
}

// Form описывает тело multipart/form-data запроса.
type Form struct {
	fields []formField
	files  []formFile
}

// NewForm создаёт пустую multipart-форму.
func NewForm() *Form {
	return &Form{}
}

// Field добавляет текстовое поле.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// JSONField добавляет поле, содержащее v в виде JSON.
func (f *Form) JSONField(name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode field %s: %w", name, err)
	}
	f.fields = append(f.fields, formField{name: name, value: string(b)})
	return nil
}

// File добавляет файл в поле field.
func (f *Form) File(field, filename string, content []byte) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return f
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		if err := mw.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", fld.name, err)
		}
	}

	for _, file := range f.files {
		w, err := mw.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", file.filename, err)
		}
		if _, err := w.Write(file.content); err != nil {
			return nil, "", fmt.Errorf("write file part %s: %w", file.filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}
