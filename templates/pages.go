package templates

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
<style>
:root {
  --bg: #0f172a; --fg: #e2e8f0; --card-bg: #1e293b; --border: #334155;
  --muted: #94a3b8; --gain: #10b981; --loss: #ef4444; --accent: #3b82f6;
  --overbought: #f59e0b; --oversold: #06b6d4;
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
header a { color: var(--accent); text-decoration: none; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.4rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.gain { color: var(--gain); }
.loss { color: var(--loss); }
.neutral { color: var(--muted); }
.overbought { color: var(--overbought); }
.oversold { color: var(--oversold); }
h2 { font-size: 1.05rem; margin: 1.25rem 0 .6rem; }
.heatmap { display: grid; grid-template-columns: repeat(auto-fill, minmax(180px, 1fr)); gap: .6rem; margin-bottom: 1.5rem; }
.tile { border: 1px solid var(--border); border-radius: 8px; padding: .6rem; }
.tile .sector { font-weight: 700; font-size: .85rem; }
.tile .meta { font-size: .75rem; color: var(--muted); }
.performers { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 768px) { .performers { grid-template-columns: 1fr; } }
.performer-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; }
.performer { display: flex; align-items: center; gap: .5rem; padding: .25rem 0; font-size: .8125rem; }
.performer .rank { color: var(--muted); min-width: 1.25rem; text-align: right; }
.performer a { color: var(--fg); text-decoration: none; font-weight: 700; min-width: 3.5rem; }
.performer .bar { height: .6rem; border-radius: 3px; }
.performer .bar.gain { background: var(--gain); }
.performer .bar.loss { background: var(--loss); }
.filters { display: flex; flex-wrap: wrap; gap: .5rem; margin-bottom: 1rem; align-items: center; }
.filters select, .filters input { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .8125rem; }
.filters input[type=text] { min-width: 180px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); white-space: nowrap; }
tr.stock-row { cursor: pointer; }
tr.stock-row:hover { background: var(--card-bg); }
.badge { font-weight: 700; padding: .125rem .375rem; border-radius: 3px; font-size: .75rem; }
.spark { width: 120px; height: 32px; }
.watch { display: grid; grid-template-columns: 1fr 1fr; gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 768px) { .watch { grid-template-columns: 1fr; } }
.charts { display: grid; grid-template-columns: 1fr; gap: 1rem; margin-bottom: 1.5rem; }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box h3 { font-size: .875rem; margin-bottom: .5rem; }
.chart { width: 100%; height: 320px; }
.chart.tall { height: 460px; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: .6rem; margin-bottom: 1.5rem; }
.stat { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .6rem; }
.stat .label { font-size: .7rem; color: var(--muted); text-transform: uppercase; }
.stat .value { font-size: .95rem; font-weight: 700; }
.error-page { text-align: center; padding: 4rem 1rem; }
.error-page p { color: var(--muted); margin: 1rem 0; }
footer { color: var(--muted); font-size: .7rem; margin-top: 2rem; }
</style>
</head>
<body>
`

const pageFoot = `
</body>
</html>
`

const dashboardBody = `<header>
  <h1>{{.Title}}</h1>
  <p>Analysis date: {{.AnalysisDate}}</p>
</header>

<div class="cards">
{{range .Cards}}  <div class="card"><div class="value {{.Class}}">{{.Value}}</div><div class="label">{{.Label}}</div></div>
{{end}}</div>

<h2>Sector Heatmap</h2>
<div class="heatmap">
{{range .Tiles}}  <div class="tile" style="background: {{.Background}}">
    <div class="sector">{{.Sector}}</div>
    <div class="{{.AvgClass}}">{{.AvgReturn}}</div>
    <div class="meta">{{.Count}} stocks &middot; best: {{.BestPerformer}}</div>
  </div>
{{end}}</div>

<div class="performers">
  <div class="performer-box">
    <h2>Top Gainers</h2>
{{range .Gainers}}    <div class="performer"><span class="rank">{{.Rank}}.</span><a href="{{.DetailURL}}">{{.Symbol}}</a><div class="bar {{.Class}}" style="width: {{printf "%.1f" .BarWidth}}%"></div><span class="{{.Class}}">{{.Return}}</span></div>
{{end}}  </div>
  <div class="performer-box">
    <h2>Top Losers</h2>
{{range .Losers}}    <div class="performer"><span class="rank">{{.Rank}}.</span><a href="{{.DetailURL}}">{{.Symbol}}</a><div class="bar {{.Class}}" style="width: {{printf "%.1f" .BarWidth}}%"></div><span class="{{.Class}}">{{.Return}}</span></div>
{{end}}  </div>
</div>

{{if or .Overbought .Oversold}}<div class="watch">
  <div class="performer-box">
    <h2>Overbought (RSI &ge; 70)</h2>
{{range .Overbought}}    <div class="performer"><a href="{{.DetailURL}}">{{.Symbol}}</a><span class="overbought">RSI {{.RSI}}</span><span class="{{.Class}}">{{.Return}}</span></div>
{{end}}  </div>
  <div class="performer-box">
    <h2>Oversold (RSI &le; 30)</h2>
{{range .Oversold}}    <div class="performer"><a href="{{.DetailURL}}">{{.Symbol}}</a><span class="oversold">RSI {{.RSI}}</span><span class="{{.Class}}">{{.Return}}</span></div>
{{end}}  </div>
</div>{{end}}

<h2>Stocks</h2>
<form class="filters" method="get" action="/">
  <input type="text" name="search" placeholder="Search symbol or name" value="{{.Search}}">
  <select name="sector" onchange="this.form.submit()">
    <option value="">All Sectors</option>
{{$sel := .Sector}}{{range .Sectors}}    <option value="{{.}}"{{if eq . $sel}} selected{{end}}>{{.}}</option>
{{end}}  </select>
  <select name="signal" onchange="this.form.submit()">
    <option value="">All Signals</option>
    <option value="bullish"{{if eq .Signal "bullish"}} selected{{end}}>Bullish</option>
    <option value="bearish"{{if eq .Signal "bearish"}} selected{{end}}>Bearish</option>
    <option value="neutral"{{if eq .Signal "neutral"}} selected{{end}}>Neutral</option>
  </select>
  <select name="sort" onchange="this.form.submit()">
{{$sort := .SortSpec}}{{range $spec := sortOptions}}    <option value="{{$spec.Value}}"{{if eq $spec.Value $sort}} selected{{end}}>{{$spec.Label}}</option>
{{end}}  </select>
  <button type="submit">Apply</button>
</form>

<table>
  <thead>
    <tr><th>#</th><th>Symbol</th><th>Name</th><th>Sector</th><th>Price</th><th>Change</th><th>YTD</th><th>RSI</th><th>MACD</th><th>MA50</th><th>MA200</th><th>Trend</th></tr>
  </thead>
  <tbody>
{{range .Rows}}    <tr class="stock-row" onclick="window.location='{{.DetailURL}}'">
      <td>{{.Rank}}</td>
      <td><strong>{{.Symbol}}</strong></td>
      <td>{{.Name}}</td>
      <td>{{.Sector}}</td>
      <td>{{.Price}}</td>
      <td class="{{.ChangeClass}}">{{.Change}}</td>
      <td class="{{.YtdClass}}">{{.YtdReturn}}</td>
      <td class="{{.RSIClass}}">{{.RSI}}</td>
      <td><span class="badge {{.SignalClass}}">{{.Signal}}</span></td>
      <td class="{{.Ma50Class}}">{{.Ma50}}</td>
      <td class="{{.Ma200Class}}">{{.Ma200}}</td>
      <td>{{if .SparklineID}}<div id="{{.SparklineID}}" class="spark"></div>{{end}}</td>
    </tr>
{{end}}  </tbody>
</table>

<footer>snapshot {{.SnapshotID}}</footer>

<script>
(function () {
  var charts = [];
  {{range .Sparklines}}
  (function () {
    var el = document.getElementById({{.ContainerID}});
    if (!el) return;
    var chart = echarts.init(el);
    chart.setOption({{json .Option}});
    charts.push(chart);
  })();
  {{end}}
  window.addEventListener('resize', function () {
    charts.forEach(function (c) { c.resize(); });
  });
})();
</script>
`

const stockBody = `<header>
  <h1>{{.Symbol}} &mdash; {{.Name}}</h1>
  <p>{{.Sector}} &middot; analysis date {{.AnalysisDate}} &middot; <a href="/">&larr; back to dashboard</a></p>
</header>

<div class="cards">
{{range .MetricCards}}  <div class="card"><div class="value {{.Class}}">{{.Value}}</div><div class="label">{{.Label}}</div></div>
{{end}}</div>

<h2>Key Statistics</h2>
<div class="stats">
{{range .KeyStats}}  <div class="stat"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>

<div class="charts">
{{range .Charts}}  <div class="chart-box">
    <div id="{{.ContainerID}}" class="chart{{if eq .ContainerID "chart-price"}} tall{{end}}"></div>
  </div>
{{end}}</div>

<script>
(function () {
  var charts = [];
  {{range .Charts}}
  (function () {
    var el = document.getElementById({{.ContainerID}});
    if (!el) return;
    var chart = echarts.init(el);
    chart.setOption({{json .Option}});
    charts.push(chart);
  })();
  {{end}}
  window.addEventListener('resize', function () {
    charts.forEach(function (c) { c.resize(); });
  });
})();
</script>
`

const errorBody = `<div class="error-page">
  <h1>{{.Title}}</h1>
  <p>{{.Message}}</p>
  {{if .BackLink}}<p><a href="{{.BackLink}}">&larr; Back to dashboard</a></p>{{end}}
</div>
`
