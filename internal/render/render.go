// Package render turns a finalized class model into Go source.
package render

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/usestring/jsonclass/internal/classgen"
)

// DefaultPackage is the package clause used when Options.Package is empty.
const DefaultPackage = "model"

// Banner is the generated-code marker written when Options.Banner is set.
const Banner = "// Code generated by jsonclass. DO NOT EDIT."

// Options configures Go.
type Options struct {
	Package string
	Banner  bool
}

type fileData struct {
	Banner  string
	Package string
	Classes []classgen.FinalizedClass
}

var fileTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"tag": func(key string) string { return fmt.Sprintf("`json:%q`", key) },
}).Parse(`{{if .Banner}}{{.Banner}}

{{end}}package {{.Package}}
{{range .Classes}}
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Type}} {{tag .Key}}
{{end}}}
{{end}}`))

// Go renders one struct per class, in the given order. When a class or field
// has no name, or the result does not parse as Go, the unformatted source is
// returned along with the error.
func Go(classes []classgen.FinalizedClass, opts Options) ([]byte, error) {
	data := fileData{
		Package: opts.Package,
		Classes: classes,
	}
	if data.Package == "" {
		data.Package = DefaultPackage
	}
	if opts.Banner {
		data.Banner = Banner
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	if err := checkNames(classes); err != nil {
		return buf.Bytes(), fmt.Errorf("%w (unformatted code returned)", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}
	return formatted, nil
}

// checkNames rejects empty identifiers, which would otherwise render as
// embedded fields.
func checkNames(classes []classgen.FinalizedClass) error {
	for _, c := range classes {
		if c.Name == "" {
			return fmt.Errorf("class with no name")
		}
		for _, f := range c.Fields {
			if f.Name == "" {
				return fmt.Errorf("%s: key %q has no identifier", c.Name, f.Key)
			}
		}
	}
	return nil
}
