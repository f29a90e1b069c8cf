package output

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"

	"github.com/shortdoom/audit-compare/internal/platform"
	"github.com/shortdoom/audit-compare/pkg/align"
	"github.com/shortdoom/audit-compare/pkg/models"
)

// htmlEntry is one diff prepared for the template, tagged with the
// extension and top directory the filter chips operate on.
type htmlEntry struct {
	ID          string
	LeftLabel   string
	RightLabel  string
	Fuzzy       bool
	Undecodable bool
	Ext         string
	Dir         string
	Rows        []align.Row
}

type htmlData struct {
	Report      *models.Report
	Entries     []htmlEntry
	Fuzzy       []htmlEntry
	Extensions  []string
	Directories []string
}

// WriteHTML renders the single-page review report: summary, filter
// chips, jump table, per-pair diff tables, then the identical and
// one-sided file listings.
func WriteHTML(w io.Writer, report *models.Report, entries []DiffEntry) error {
	data := htmlData{Report: report}

	extSet := map[string]bool{}
	dirSet := map[string]bool{}

	for i, e := range entries {
		he := htmlEntry{
			ID:          fmt.Sprintf("diff-%d", i),
			LeftLabel:   e.LeftLabel,
			RightLabel:  e.RightLabel,
			Fuzzy:       e.FuzzyMatched(),
			Undecodable: e.Undecodable,
			Ext:         platform.Extension(e.Pair.Left),
			Dir:         platform.SplitDir(e.Pair.Left),
			Rows:        e.Rows,
		}
		if he.Fuzzy {
			data.Fuzzy = append(data.Fuzzy, he)
		} else {
			data.Entries = append(data.Entries, he)
		}
		if he.Ext != "" {
			extSet[he.Ext] = true
		}
		if he.Dir != "" {
			dirSet[he.Dir] = true
		}
	}

	for ext := range extSet {
		data.Extensions = append(data.Extensions, ext)
	}
	for dir := range dirSet {
		data.Directories = append(data.Directories, dir)
	}
	sort.Strings(data.Extensions)
	sort.Strings(data.Directories)

	return reportTemplate.Execute(w, data)
}

// SaveHTML writes the report to a file
func SaveHTML(path string, report *models.Report, entries []DiffEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := WriteHTML(f, report, entries); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"rowClass": func(r align.Row) string {
		switch r.Kind {
		case align.RowChange:
			return "chg"
		case align.RowDelete:
			return "sub"
		case align.RowInsert:
			return "add"
		case align.RowElision:
			return "elide"
		default:
			return "ctx"
		}
	},
	"lineno": func(n int) string {
		if n == 0 {
			return ""
		}
		return fmt.Sprintf("%d", n)
	},
	"isElision": func(r align.Row) bool { return r.Kind == align.RowElision },
}).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Comparison {{.Report.RunID}}</title>
<style>
body { font-family: sans-serif; margin: 1em 2em; }
table.diff { border-collapse: collapse; font-family: monospace; font-size: 12px; width: 100%; margin-bottom: 2em; }
table.diff td { padding: 1px 6px; vertical-align: top; white-space: pre-wrap; }
table.diff td.num { color: #888; text-align: right; user-select: none; width: 3em; }
tr.add td.text-r { background: #ddffdd; }
tr.sub td.text-l { background: #ffdddd; }
tr.chg td.text-l { background: #ffffcc; }
tr.chg td.text-r { background: #ffffcc; }
tr.elide td { background: #f0f0f0; color: #888; text-align: center; }
.chips span { display: inline-block; border: 1px solid #aaa; border-radius: 3px; padding: 2px 8px; margin: 2px; cursor: pointer; }
.chips span.active { background: #336699; color: white; }
.hidden { display: none; }
h3 { border-bottom: 1px solid #ccc; padding-bottom: 4px; }
ul.jump { columns: 3; }
table.plain { border-collapse: collapse; }
table.plain td { border: 1px solid #ddd; padding: 2px 8px; font-family: monospace; font-size: 12px; }
</style>
</head>
<body>
<h1>Comparison {{.Report.RunID}}</h1>
<p>
<b>left:</b> {{.Report.LeftLocator}}<br>
<b>right:</b> {{.Report.RightLocator}}<br>
<b>status:</b> {{.Report.Status}}
</p>
<p>
identical: {{.Report.Stats.Identical}} &middot;
differing: {{.Report.Stats.Differing}} &middot;
only left: {{.Report.Stats.OnlyLeft}} &middot;
only right: {{.Report.Stats.OnlyRight}}
{{if .Report.Stats.FuzzyPairs}} &middot; fuzzy pairs: {{.Report.Stats.FuzzyPairs}}{{end}}
{{if .Report.Stats.Failed}} &middot; failed: {{.Report.Stats.Failed}}{{end}}
</p>

<p><input type="search" id="path-filter" placeholder="filter by path" size="40"></p>

{{if .Extensions}}
<div class="chips" id="ext-chips"><b>extension:</b>
{{range .Extensions}}<span data-ext="{{.}}">{{.}}</span>{{end}}
</div>
{{end}}
{{if .Directories}}
<div class="chips" id="dir-chips"><b>directory:</b>
{{range .Directories}}<span data-dir="{{.}}">{{.}}</span>{{end}}
</div>
{{end}}

{{if .Entries}}
<h3>Differing files ({{len .Entries}})</h3>
<ul class="jump">
{{range .Entries}}<li><a href="#{{.ID}}">{{.LeftLabel}}</a></li>
{{end}}</ul>

{{range .Entries}}
<div class="entry" id="{{.ID}}" data-ext="{{.Ext}}" data-dir="{{.Dir}}">
<h4>{{.LeftLabel}} | {{.RightLabel}}</h4>
{{if .Undecodable}}
<p><i>binary or undecodable content, no line diff</i></p>
{{else}}
<table class="diff">
{{range .Rows}}{{if isElision .}}<tr class="elide"><td colspan="4">&hellip; {{.HiddenLines}} unchanged lines &hellip;</td></tr>
{{else}}<tr class="{{rowClass .}}"><td class="num">{{lineno .LeftNumber}}</td><td class="text-l">{{.LeftText}}</td><td class="num">{{lineno .RightNumber}}</td><td class="text-r">{{.RightText}}</td></tr>
{{end}}{{end}}</table>
{{end}}
</div>
{{end}}
{{end}}

{{if .Fuzzy}}
<h3>Similar files in different locations ({{len .Fuzzy}})</h3>
{{range .Fuzzy}}
<div class="entry" id="{{.ID}}" data-ext="{{.Ext}}" data-dir="{{.Dir}}">
<h4>{{.LeftLabel}} | {{.RightLabel}}</h4>
{{if .Undecodable}}
<p><i>binary or undecodable content, no line diff</i></p>
{{else}}
<table class="diff">
{{range .Rows}}{{if isElision .}}<tr class="elide"><td colspan="4">&hellip; {{.HiddenLines}} unchanged lines &hellip;</td></tr>
{{else}}<tr class="{{rowClass .}}"><td class="num">{{lineno .LeftNumber}}</td><td class="text-l">{{.LeftText}}</td><td class="num">{{lineno .RightNumber}}</td><td class="text-r">{{.RightText}}</td></tr>
{{end}}{{end}}</table>
{{end}}
</div>
{{end}}
{{end}}

{{with .Report.Result}}
{{if .Identical}}
<h3>Identical files ({{len .Identical}})</h3>
<table class="plain">
{{range .Identical}}<tr><td>{{.Left}}</td></tr>
{{end}}</table>
{{end}}

{{if .OnlyLeft}}
<h3>Only in left tree ({{len .OnlyLeft}})</h3>
<table class="plain">
{{range .OnlyLeft}}<tr><td>{{.}}</td></tr>
{{end}}</table>
{{end}}

{{if .OnlyRight}}
<h3>Only in right tree ({{len .OnlyRight}})</h3>
<table class="plain">
{{range .OnlyRight}}<tr><td>{{.}}</td></tr>
{{end}}</table>
{{end}}

{{if .Failures}}
<h3>Failures ({{len .Failures}})</h3>
<table class="plain">
{{range .Failures}}<tr><td>{{.Describe}}</td><td>{{.Err}}</td></tr>
{{end}}</table>
{{end}}
{{end}}

<script>
function bindChips(containerId, attr) {
  var box = document.getElementById(containerId);
  if (!box) return;
  box.querySelectorAll('span').forEach(function (chip) {
    chip.addEventListener('click', function () {
      var active = chip.classList.toggle('active');
      box.querySelectorAll('span').forEach(function (other) {
        if (other !== chip) other.classList.remove('active');
      });
      var want = active ? chip.dataset[attr] : null;
      document.querySelectorAll('.entry').forEach(function (entry) {
        entry.classList.toggle('hidden', want !== null && entry.dataset[attr] !== want);
      });
    });
  });
}
bindChips('ext-chips', 'ext');
bindChips('dir-chips', 'dir');

var search = document.getElementById('path-filter');
if (search) {
  search.addEventListener('input', function () {
    var q = search.value.toLowerCase();
    document.querySelectorAll('.entry').forEach(function (entry) {
      var label = entry.querySelector('h4').textContent.toLowerCase();
      entry.classList.toggle('hidden', q !== '' && label.indexOf(q) === -1);
    });
  });
}
</script>
</body>
</html>
`
