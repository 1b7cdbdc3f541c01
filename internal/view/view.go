package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageIndex = "index.html"
	PageHome  = "home.html"
)

// Field is a single input on the prediction form.
type Field struct {
	Name  string
	Value string
}

// FormData is the context passed to the home page. At most one of
// Prediction and Error is set.
type FormData struct {
	Fields     []Field
	Prediction string
	Error      string
}

// NewFormData builds the form context with fields in the given order,
// echoing submitted values.
func NewFormData(names []string, values map[string]string) FormData {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Value: values[name]})
	}
	return FormData{Fields: fields}
}

// WithPrediction sets the formatted prediction.
func (d FormData) WithPrediction(v float64) FormData {
	d.Prediction = strconv.FormatFloat(v, 'f', 2, 64)
	d.Error = ""
	return d
}

// WithError sets the error message.
func (d FormData) WithError(msg string) FormData {
	d.Error = msg
	d.Prediction = ""
	return d
}

type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{templates: t}, nil
}

// Render executes the named page into w. Output is buffered; on error
// nothing is written to w.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
