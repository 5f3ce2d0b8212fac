package output

import (
	"bufio"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// jsonWriter buffers items and emits one JSON document on Flush: a bare
// object for a single result, an array otherwise.
type jsonWriter struct {
	w      io.Writer
	pretty bool
	indent string
	items  []any
}

func (w *jsonWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *jsonWriter) Flush() error {
	var payload any = w.items
	if len(w.items) == 1 {
		payload = w.items[0]
	}

	var out []byte
	var err error
	if w.pretty {
		out, err = json.MarshalIndent(payload, "", w.indent)
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(w.w)
	if _, err := buf.Write(out); err != nil {
		return err
	}
	if _, err := buf.WriteString("\n"); err != nil {
		return err
	}
	return buf.Flush()
}

// jsonlWriter emits each item immediately as one JSON line.
type jsonlWriter struct {
	w io.Writer
}

func (w *jsonlWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(append(out, '\n')); err != nil {
		return err
	}
	return nil
}

func (w *jsonlWriter) Flush() error {
	return nil
}

// yamlWriter buffers items and emits a single YAML document on Flush.
type yamlWriter struct {
	w     io.Writer
	items []any
}

func (w *yamlWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *yamlWriter) Flush() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)

	var payload any = w.items
	if len(w.items) == 1 {
		payload = w.items[0]
	}
	if err := enc.Encode(payload); err != nil {
		return err
	}
	return enc.Close()
}
