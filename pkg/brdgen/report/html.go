package report

import (
	"bytes"
	"html/template"
)

// RenderHTML serializes a Report as a self-contained HTML page. No external
// assets are referenced; styles and the search/toggle script are inlined.
func RenderHTML(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Data Model Report</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #f5f7fa; color: #2d3748; line-height: 1.6; }
.container { max-width: 1200px; margin: 0 auto; padding: 20px; }
header { background: linear-gradient(135deg, #006EAF 0%, #1ba1e2 100%); color: white; padding: 30px; border-radius: 8px; margin-bottom: 25px; }
header h1 { font-size: 1.8em; margin-bottom: 8px; }
header .subtitle { opacity: 0.9; font-size: 0.95em; }
.stats { display: flex; flex-wrap: wrap; gap: 15px; margin-bottom: 25px; }
.stat-card { background: white; border-radius: 8px; padding: 18px 24px; flex: 1; min-width: 130px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); text-align: center; }
.stat-card .value { font-size: 1.9em; font-weight: 700; color: #006EAF; }
.stat-card .label { font-size: 0.8em; color: #718096; text-transform: uppercase; letter-spacing: 0.05em; }
.section { background: white; border-radius: 8px; padding: 24px; margin-bottom: 20px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.section h2 { font-size: 1.3em; margin-bottom: 14px; color: #1a202c; border-bottom: 2px solid #e2e8f0; padding-bottom: 8px; }
.search-box { width: 100%; padding: 10px 14px; border: 1px solid #cbd5e0; border-radius: 6px; font-size: 1em; margin-bottom: 18px; }
.entity-card { border: 1px solid #e2e8f0; border-radius: 8px; margin-bottom: 14px; overflow: hidden; }
.entity-header { background: #006EAF; color: white; padding: 12px 18px; cursor: pointer; display: flex; justify-content: space-between; align-items: center; }
.entity-header.reference { background: #2f855a; }
.entity-header .count { font-size: 0.85em; opacity: 0.85; }
.entity-body { padding: 16px 18px; display: none; }
.entity-card.open .entity-body { display: block; }
.entity-desc { color: #4a5568; font-style: italic; margin-bottom: 12px; }
.category-line { font-size: 0.88em; color: #4a5568; margin-bottom: 4px; }
.category-line strong { color: #2d3748; }
table { width: 100%; border-collapse: collapse; margin-top: 12px; font-size: 0.9em; }
th { background: #edf2f7; text-align: left; padding: 8px 10px; border-bottom: 2px solid #cbd5e0; }
td { padding: 8px 10px; border-bottom: 1px solid #e2e8f0; vertical-align: top; }
.badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 0.75em; font-weight: 600; margin-right: 4px; }
.badge.ootb { background: #c6f6d5; color: #22543d; }
.badge.custom { background: #fed7d7; color: #822727; }
.badge.required { background: #feebc8; color: #7b341e; }
.badge.lookup { background: #bee3f8; color: #2a4365; }
.badge.group { background: #fefcbf; color: #744210; }
details { margin-top: 4px; }
details summary { cursor: pointer; color: #006EAF; font-size: 0.85em; }
details ul { margin: 6px 0 0 18px; font-size: 0.85em; color: #4a5568; }
.req-excerpt { color: #4a5568; }
.req-fields { font-size: 0.85em; color: #718096; }
footer { text-align: center; color: #a0aec0; font-size: 0.85em; padding: 20px 0; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>Data Model Report</h1>
<div class="subtitle">{{if .Metadata.Platform}}{{.Metadata.Platform}}{{end}}{{if .Metadata.GeneratedDate}} &middot; Generated {{.Metadata.GeneratedDate}}{{end}}</div>
</header>

<div class="stats">
<div class="stat-card"><div class="value">{{.Stats.TotalEntities}}</div><div class="label">Entities</div></div>
<div class="stat-card"><div class="value">{{.Stats.BusinessEntities}}</div><div class="label">Business</div></div>
<div class="stat-card"><div class="value">{{.Stats.ReferenceEntities}}</div><div class="label">Reference</div></div>
<div class="stat-card"><div class="value">{{.Stats.TotalFields}}</div><div class="label">Fields</div></div>
<div class="stat-card"><div class="value">{{.Stats.OOTBFields}}</div><div class="label">OOTB</div></div>
<div class="stat-card"><div class="value">{{.Stats.CustomFields}}</div><div class="label">Custom</div></div>
<div class="stat-card"><div class="value">{{.Stats.FieldGroups}}</div><div class="label">Field Groups</div></div>
<div class="stat-card"><div class="value">{{.Stats.RequirementIDs}}</div><div class="label">Requirements</div></div>
</div>

{{if .Reasoning.Summary}}
<div class="section">
<h2>Model Reasoning</h2>
<p>{{.Reasoning.Summary}}</p>
</div>
{{end}}

<div class="section">
<h2>Business Entities</h2>
<input type="text" class="search-box" id="entity-search" placeholder="Filter entities and fields...">
{{range .Business}}
<div class="entity-card" data-name="{{.Name}}">
<div class="entity-header" onclick="toggleCard(this)">
<span>{{.Name}}</span>
<span class="count">{{len .Fields}} fields</span>
</div>
<div class="entity-body">
{{if .Description}}<div class="entity-desc">{{.Description}}</div>{{end}}
{{if .Decision}}<div class="entity-desc">{{.Decision.Reason}}</div>{{end}}
{{if .Identifiers}}<div class="category-line"><strong>Identifiers:</strong> {{range $i, $n := .Identifiers}}{{if $i}}, {{end}}{{$n}}{{end}}</div>{{end}}
{{if .GeneralAttributes}}<div class="category-line"><strong>General attributes:</strong> {{range $i, $n := .GeneralAttributes}}{{if $i}}, {{end}}{{$n}}{{end}}</div>{{end}}
{{range .Groups}}<div class="category-line"><strong>Group {{.Name}}:</strong> {{range $i, $n := .Fields}}{{if $i}}, {{end}}{{$n}}{{end}}</div>{{end}}
{{if .MetaFields}}<div class="category-line"><strong>Meta:</strong> {{range $i, $n := .MetaFields}}{{if $i}}, {{end}}{{$n}}{{end}}</div>{{end}}
<table>
<tr><th>Field</th><th>Type</th><th>Flags</th><th>Description</th></tr>
{{range .Fields}}
<tr data-field="{{.Name}}">
<td>{{.Name}}</td>
<td>{{.DataType}}</td>
<td>
{{if .IsCustom}}<span class="badge custom">Custom</span>{{else}}<span class="badge ootb">OOTB</span>{{end}}
{{if .IsRequired}}<span class="badge required">Required</span>{{end}}
{{if .LookupEntity}}<span class="badge lookup">Lookup &rarr; {{.LookupEntity}}</span>{{end}}
{{if .FieldGroup}}{{if not .InMetaGroup}}<span class="badge group">{{.FieldGroup}}</span>{{end}}{{end}}
</td>
<td>
{{.Description}}
{{if .Trace}}
<details><summary>Traceability ({{len .Trace}})</summary>
<ul>{{range .Trace}}<li><strong>{{.ID}}</strong> {{.Text}}</li>{{end}}</ul>
</details>
{{end}}
{{if .Decision}}<details><summary>Rationale</summary><ul><li>{{.Decision.Reason}}</li></ul></details>{{end}}
</td>
</tr>
{{end}}
</table>
</div>
</div>
{{end}}
</div>

{{if .Reference}}
<div class="section">
<h2>Reference Entities</h2>
{{range .Reference}}
<div class="entity-card" data-name="{{.Name}}">
<div class="entity-header reference" onclick="toggleCard(this)">
<span>{{.Name}}</span>
<span class="count">{{len .Fields}} fields</span>
</div>
<div class="entity-body">
{{if .Description}}<div class="entity-desc">{{.Description}}</div>{{end}}
<table>
<tr><th>Field</th><th>Type</th><th>Flags</th><th>Description</th></tr>
{{range .Fields}}
<tr>
<td>{{.Name}}</td>
<td>{{.DataType}}</td>
<td>
{{if .IsCustom}}<span class="badge custom">Custom</span>{{else}}<span class="badge ootb">OOTB</span>{{end}}
{{if .IsRequired}}<span class="badge required">Required</span>{{end}}
</td>
<td>{{.Description}}</td>
</tr>
{{end}}
</table>
</div>
</div>
{{end}}
</div>
{{end}}

{{if .Requirements}}
<div class="section">
<h2>Requirement Traceability</h2>
<table>
<tr><th>Requirement</th><th>Excerpt</th><th>Mapped Fields</th></tr>
{{range .Requirements}}
<tr>
<td><strong>{{.ID}}</strong></td>
<td class="req-excerpt">{{.Excerpt}}</td>
<td class="req-fields">{{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f}}{{end}}</td>
</tr>
{{end}}
</table>
</div>
{{end}}

<footer>Generated by brdgen{{if .RunID}} &middot; run {{.RunID}}{{end}}</footer>
</div>

<script>
function toggleCard(header) {
  header.parentElement.classList.toggle('open');
}
document.getElementById('entity-search').addEventListener('input', function () {
  var q = this.value.toLowerCase();
  document.querySelectorAll('.entity-card').forEach(function (card) {
    var name = (card.getAttribute('data-name') || '').toLowerCase();
    var match = name.indexOf(q) !== -1;
    if (!match) {
      card.querySelectorAll('tr[data-field]').forEach(function (row) {
        if ((row.getAttribute('data-field') || '').toLowerCase().indexOf(q) !== -1) {
          match = true;
        }
      });
    }
    card.style.display = match ? '' : 'none';
  });
});
</script>
</body>
</html>
`
