package namer

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplate reproduces the standard path layout. Custom templates may
// rearrange the fields freely, e.g. to collect all baselines under one
// project-level directory.
const DefaultTemplate = "{{.Dir}}/{{if .Subdir}}{{.Subdir}}/{{end}}{{.Name}}.{{.Mode}}{{.Ext}}"

// TemplateData is what a namer template is rendered with. Mode is either
// "approved" or "received"; Ext always carries its leading dot.
type TemplateData struct {
	Dir    string
	Subdir string
	Name   string
	Mode   string
	Ext    string
}

// TemplatedNamer renders artifact paths from a text/template with the sprig
// function set available, for projects whose baseline layout the standard
// namer cannot express.
type TemplatedNamer struct {
	tmpl *template.Template
	data TemplateData
}

// Templated wraps base, rendering paths from layout instead of the base
// namer's own path rules. The base still supplies directory, subdirectory
// and identity.
func Templated(layout string, base TestNamer) (TemplatedNamer, error) {
	tmpl, err := template.New("namer").Funcs(sprig.FuncMap()).Parse(layout)
	if err != nil {
		return TemplatedNamer{}, fmt.Errorf("parsing namer template: %w", err)
	}
	return TemplatedNamer{
		tmpl: tmpl,
		data: TemplateData{Dir: base.dir, Subdir: base.subdir, Name: base.name},
	}, nil
}

func (n TemplatedNamer) Name() string { return n.data.Name }

// ApprovedFile implements Namer.
func (n TemplatedNamer) ApprovedFile(extension string) string {
	return n.render("approved", extension)
}

// ReceivedFile implements Namer.
func (n TemplatedNamer) ReceivedFile(extension string) string {
	return n.render("received", extension)
}

func (n TemplatedNamer) render(mode, extension string) string {
	data := n.data
	data.Mode = mode
	data.Ext = dotted(extension)
	var sb strings.Builder
	if err := n.tmpl.Execute(&sb, data); err != nil {
		// Template was validated at construction; execution can only fail
		// on a function error, which deterministic path templates do not hit.
		panic(fmt.Sprintf("namer template execution: %v", err))
	}
	return filepath.FromSlash(sb.String())
}
