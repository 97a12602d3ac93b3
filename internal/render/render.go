// Package render substitutes computed values into static page templates.
//
// Templates are plain documents containing $$$TOKEN$$$ placeholders. The
// renderer replaces each placeholder named in the supplied values verbatim;
// it never reorders or reinterprets the replacement text.
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// ErrUnknownTemplate is returned when rendering a name that was not loaded.
var ErrUnknownTemplate = errors.New("unknown template")

// Values maps placeholder names (without the $$$ delimiters) to replacement text.
type Values map[string]string

// Renderer holds templates loaded once at startup.
type Renderer struct {
	templates map[string]string
}

// Load reads every *.html file at the root of fsys. Template names are the
// file names without extension.
func Load(fsys fs.FS) (*Renderer, error) {
	matches, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}
	if len(matches) == 0 {
		return nil, errors.New("no templates found")
	}

	r := &Renderer{templates: make(map[string]string, len(matches))}
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, path.Ext(name))] = string(data)
	}
	return r, nil
}

// Has reports whether a template was loaded.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render returns the named template with every $$$KEY$$$ for each key in
// values replaced. Placeholders without a value are left as they are.
func (r *Renderer) Render(name string, values Values) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	if len(values) == 0 {
		return tmpl, nil
	}

	pairs := make([]string, 0, 2*len(values))
	for k, v := range values {
		pairs = append(pairs, placeholder(k), v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl), nil
}

func placeholder(key string) string {
	return "$$$" + key + "$$$"
}
