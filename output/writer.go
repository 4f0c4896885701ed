package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheCacophonyProject/battery-dva/validation"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

// Format is a result file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// Writer encodes a Document.
type Writer interface {
	Write(w io.Writer, doc *Document) error
	Extension() string
}

func NewWriter(format Format) (Writer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatJSON:
		return jsonWriter{}, nil
	case FormatYAML:
		return yamlWriter{}, nil
	case FormatXLSX:
		return xlsxWriter{}, nil
	}
	return nil, validation.New("format", string(format), "must be either json, yaml or xlsx")
}

// FileName derives the name of the result file for the measurement at source.
func FileName(source string, w Writer) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name := slug.Make(base)
	if name == "" {
		name = "result"
	}
	return name + w.Extension()
}

// WriteFile writes doc into dir and returns the path written.
func WriteFile(dir string, w Writer, doc *Document) (string, error) {
	path := filepath.Join(dir, FileName(doc.Source, w))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := w.Write(file, doc); err != nil {
		file.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, file.Close()
}

type jsonWriter struct{}

func (jsonWriter) Extension() string { return ".json" }

func (jsonWriter) Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type yamlWriter struct{}

func (yamlWriter) Extension() string { return ".yaml" }

func (yamlWriter) Write(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
