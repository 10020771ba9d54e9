package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"guicheck/pkg/verdict"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"symbol": symbol,
	"pretty": func(v any) string {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	},
	"percent": func(f float64) string { return fmt.Sprintf("%.1f%%", f) },
	"stamp":   func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"failed":  func(r verdict.Record) []verdict.Check { return failedChecks(r.Checks) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; margin: 0; padding: 20px; background-color: #f5f5f5; }
.container { max-width: 1200px; margin: 0 auto; background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); overflow: hidden; }
.header { background: #2c3e50; color: white; padding: 20px; text-align: center; }
.header h1 { margin: 0; font-size: 2em; }
.content { padding: 20px; }
.summary h2, .details h2 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
.summary-stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin-top: 20px; }
.stat { background: #f8f9fa; padding: 15px; border-radius: 5px; text-align: center; }
.stat-label { display: block; font-weight: bold; color: #666; margin-bottom: 5px; }
.stat-value { font-size: 1.5em; font-weight: bold; }
.stat-value.pass { color: #27ae60; }
.stat-value.fail { color: #e74c3c; }
.stat-value.warning { color: #f39c12; }
.result { border: 1px solid #ddd; border-radius: 5px; margin-bottom: 15px; overflow: hidden; }
.result.pass { border-left: 4px solid #27ae60; }
.result.fail { border-left: 4px solid #e74c3c; }
.result.warning { border-left: 4px solid #f39c12; }
.result-header { background: #f8f9fa; padding: 15px; display: flex; align-items: center; gap: 10px; }
.status-symbol { font-size: 1.2em; font-weight: bold; }
.check-name { font-weight: bold; flex: 1; }
.status-badge { background: #3498db; color: white; padding: 4px 8px; border-radius: 3px; font-size: 0.8em; font-weight: bold; }
.result-message, .result-details { padding: 0 15px 15px; }
.result-message { padding-top: 15px; }
.result-details pre { background: #f8f9fa; padding: 10px; border-radius: 3px; overflow-x: auto; font-size: 0.9em; }
.footer { text-align: center; padding: 20px; color: #666; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{.Title}}</h1></div>
<div class="content">
<div class="summary">
<h2>Summary</h2>
<div class="summary-stats">
<div class="stat"><span class="stat-label">Total</span><span class="stat-value">{{.Summary.Total}}</span></div>
<div class="stat"><span class="stat-label">Passed</span><span class="stat-value pass">{{.Summary.Passed}}</span></div>
<div class="stat"><span class="stat-label">Failed</span><span class="stat-value fail">{{.Summary.Failed}}</span></div>
<div class="stat"><span class="stat-label">Warnings</span><span class="stat-value warning">{{.Summary.Warnings}}</span></div>
<div class="stat"><span class="stat-label">Success rate</span><span class="stat-value">{{percent .Summary.SuccessRate}}</span></div>
<div class="stat"><span class="stat-label">Overall</span><span class="stat-value {{.Summary.Overall}}">{{.Summary.Overall}}</span></div>
</div>
</div>
<div class="details">
<h2>Details</h2>
{{range .Entries}}<div class="result {{.Result.Outcome}}">
<div class="result-header"><span class="status-symbol">{{symbol .Result.Outcome}}</span><span class="check-name">{{.Name}}</span><span class="status-badge">{{.Result.Check}}</span></div>
<div class="result-message">{{.Result.Message}}</div>
{{with failed .Result}}<div class="result-details"><ul>{{range .}}<li>{{.Name}}{{with .Row}} row {{.}}{{end}}{{with .Column}} column {{.}}{{end}}: {{.Message}}</li>{{end}}</ul></div>
{{end}}{{with .Result.Metrics}}<div class="result-details"><pre>{{pretty .}}</pre></div>
{{end}}</div>
{{end}}</div>
{{with .Config}}<div class="details">
<h2>Configuration</h2>
<div class="result-details"><pre>{{pretty .}}</pre></div>
</div>
{{end}}</div>
<div class="footer">Run {{.RunID}} generated at {{stamp .Timestamp}}</div>
</div>
</body>
</html>
`))

func failedChecks(cs []verdict.Check) []verdict.Check {
	var out []verdict.Check
	for _, c := range cs {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

func (r *Report) writeHTML(w io.Writer) error {
	view := *r
	if view.Title == "" {
		view.Title = "GUI Verification Report"
	}
	if err := htmlTemplate.Execute(w, &view); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}
