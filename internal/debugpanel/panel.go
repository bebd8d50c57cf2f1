// Package debugpanel renders the manual-inspection overlay: every URL
// query parameter and every cookie on the request, no validation, no
// mutation.
package debugpanel

import (
	"html/template"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var panelTmpl = template.Must(template.New("panel").Parse(`<div id="tp_debug" style="position:fixed;top:0;right:0;max-width:40%;background:#222;color:#0f0;font:12px monospace;padding:8px;z-index:9999;overflow:auto;max-height:100%">
<strong>params</strong>
{{- range .Params}}
<div>{{.Key}}: {{.Value}}</div>
{{- end}}
<strong>cookies</strong>
{{- range .Cookies}}
<div>{{.Name}}={{.Value}}</div>
{{- end}}
</div>`))

type pair struct {
	Key   string
	Value string
}

type namedValue struct {
	Name  string
	Value string
}

// Render produces the overlay markup for one request.
func Render(params url.Values, cookies []*http.Cookie) template.HTML {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := struct {
		Params  []pair
		Cookies []namedValue
	}{}
	for _, k := range keys {
		for _, v := range params[k] {
			data.Params = append(data.Params, pair{Key: k, Value: v})
		}
	}
	for _, c := range cookies {
		data.Cookies = append(data.Cookies, namedValue{Name: c.Name, Value: c.Value})
	}

	var b strings.Builder
	if err := panelTmpl.Execute(&b, data); err != nil {
		return ""
	}
	return template.HTML(b.String())
}
