package output

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONWriter writes documents as JSON.
type JSONWriter struct {
	writer io.Writer
	pretty bool
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(w io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{writer: w, pretty: pretty}
}

// WriteResult writes doc followed by a newline.
func (j *JSONWriter) WriteResult(doc *Document) error {
	var data []byte
	var err error

	if j.pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return err
	}

	if _, err := j.writer.Write(data); err != nil {
		return err
	}
	_, err = j.writer.Write([]byte("\n"))
	return err
}

// Render returns doc as indented JSON.
func Render(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := NewJSONWriter(&buf, true).WriteResult(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
