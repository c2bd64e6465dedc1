package dashboard

import "html/template"

type pageTemplate = *template.Template

const pageStyle = `
body { font-family: sans-serif; margin: 2em auto; max-width: 960px; color: #222; }
h1, h2 { color: #19376d; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f0f4fa; }
.score { font-weight: bold; }
.error { color: #a4133c; }
.muted { color: #777; }
`

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>systemBoam</title><style>` + pageStyle + `</style></head>
<body>
<h1>systemBoam</h1>

<h2>Today's CVE News</h2>
{{if .News}}
<table>
<tr><th>#</th><th>Title</th><th>CVE</th></tr>
{{range .News}}<tr><td>{{.Rank}}</td><td><a href="{{.Link}}">{{.Title}}</a></td><td>{{.CVE}}</td></tr>
{{end}}
</table>
{{else}}<p class="muted">No news today.</p>{{end}}

<h2>Rankings</h2>
{{if .Rankings}}
<table>
<tr><th>#</th><th>CVE</th><th>CVSS</th><th>EPSS</th><th>KVE</th><th>Activity</th><th>Score</th></tr>
{{range .Rankings}}<tr><td>{{.Rank}}</td><td><a href="{{.Link}}">{{.CVE}}</a></td>
<td>{{.CVSS}}</td><td>{{.EPSS}}</td><td>{{.KVE}}</td><td>{{.Activity}}</td><td class="score">{{.Score}}</td></tr>
{{end}}
</table>
{{else}}<p class="muted">No ranking data.</p>{{end}}

<h2>Latest Updates</h2>
{{if .Latest}}
<table>
<tr><th>CVE</th><th>Summary</th></tr>
{{range .Latest}}<tr><td><a href="{{.Link}}">{{.CVE}}</a></td><td>{{.Summary}}</td></tr>
{{end}}
</table>
{{else}}<p class="muted">No recent updates.</p>{{end}}
</body>
</html>
`))

var detailTemplate = template.Must(template.New("detail").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.ID}} - systemBoam</title><style>` + pageStyle + `</style></head>
<body>
<h1>{{.ID}}</h1>
{{if .ErrMsg}}
<p class="error">{{.ErrMsg}}</p>
{{else}}
<p>{{.VM.Summary}}</p>
<table>
<tr><th>Overall</th><th>CVSS</th><th>EPSS</th><th>KVE</th><th>Activity</th></tr>
<tr><td class="score">{{.VM.OverallScore}}</td><td>{{.VM.CVSSScore}}</td>
<td>{{.VM.EPSSScore}}</td><td>{{.VM.KVEScore}}</td><td>{{.VM.ActivityScore}}</td></tr>
</table>
<h2>AI Summary</h2>
{{if .VM.AISummary}}<p>{{.VM.AISummary}}</p>{{else}}<p class="muted">No AI summary available.</p>{{end}}
{{end}}
<p><a href="/">Back to dashboard</a></p>
</body>
</html>
`))

var searchTemplate = template.Must(template.New("search").Parse(`<!DOCTYPE html>
<html>
<head><title>Search - systemBoam</title><style>` + pageStyle + `</style></head>
<body>
<h1>Search results</h1>
<p class="muted">Query: {{.Query}} ({{.Mode}})</p>
{{if .Results}}
<table>
<tr><th>CVE</th><th>Summary</th></tr>
{{range .Results}}<tr><td><a href="{{.Link}}">{{.CVE}}</a></td><td>{{.Summary}}</td></tr>
{{end}}
</table>
{{else}}<p class="muted">No matches.</p>{{end}}
<p><a href="/">Back to dashboard</a></p>
</body>
</html>
`))
