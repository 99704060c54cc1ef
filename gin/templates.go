package gin

import "html/template"

// pageTemplates builds the embedded upload and results pages. The UI
// is deliberately minimal; exports are the primary output.
func pageTemplates() *template.Template {
	t := template.New("pages")
	template.Must(t.New("index").Parse(indexPage))
	template.Must(t.New("results").Parse(resultsPage))
	return t
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>feedex</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 40px auto; padding: 0 16px; }
.error { color: #b00020; border: 1px solid #b00020; padding: 8px 12px; border-radius: 4px; }
form { margin-top: 24px; }
</style>
</head>
<body>
<h1>LinkedIn Activity Extractor</h1>
<p>Upload a saved "Recent Activity" page (.mhtml or .mht) to extract post data.</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/upload" method="post" enctype="multipart/form-data">
<input type="file" name="file" accept=".mhtml,.mht" required>
<button type="submit">Extract</button>
</form>
</body>
</html>
`

const resultsPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>feedex results</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 40px auto; padding: 0 16px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; vertical-align: top; }
th { background: #f5f5f5; }
</style>
</head>
<body>
<h1>{{.Result.Filename}}</h1>
<p>
{{len .Result.Records}} posts, quality score {{.Result.QualityScore}}%, stage {{.Result.Stage}}.
<a href="/export/{{.Result.ID}}/csv">Download CSV</a> |
<a href="/export/{{.Result.ID}}/json">Download JSON</a> |
<a href="/">Upload another</a>
</p>
{{with .Result.Report}}
{{range .Insights}}<p>{{.}}</p>{{end}}
{{range .Recommendations}}<p><em>{{.}}</em></p>{{end}}
{{end}}
<table>
<tr><th>#</th><th>Name</th><th>Title</th><th>Period</th><th>Details</th><th>Company</th><th>Location</th></tr>
{{range .Result.Records}}
<tr>
<td>{{.PostIndex}}</td>
<td>{{.Name}}</td>
<td>{{.Title}}</td>
<td>{{.Period}}</td>
<td>{{.Details}}</td>
<td>{{.Company}}</td>
<td>{{.Location}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`
