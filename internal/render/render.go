// Package render is the presentation adapter: it projects cart state into
// the cart panel. The core never touches the output surface directly.
package render

import (
	"io"
	"log"
	"text/template"

	"github.com/sakkelaaksonen/fab/internal/cart"
	"github.com/sakkelaaksonen/fab/internal/mail"
)

const panelTemplate = `--- Your cart ({{.Count}} item{{if ne .Count 1}}s{{end}}) ---
{{- if .Items}}
{{- range .Items}}
  {{.Name}}  x{{.Quantity}}  {{price .Price}}
{{- end}}
Total: {{amount .Total}}
{{- else}}
  (empty)
{{- end}}
`

// Panel renders the cart panel as text after every mutation.
type Panel struct {
	tmpl *template.Template
	out  io.Writer
}

func NewPanel(out io.Writer) *Panel {
	tmpl := template.Must(template.New("panel").Funcs(template.FuncMap{
		"price":  mail.FormatPrice,
		"amount": mail.FormatAmount,
	}).Parse(panelTemplate))
	return &Panel{tmpl: tmpl, out: out}
}

func (p *Panel) Render(s cart.State) {
	if err := p.tmpl.Execute(p.out, s); err != nil {
		log.Printf("cart panel render failed: %v", err)
	}
}
