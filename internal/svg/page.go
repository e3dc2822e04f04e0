package svg

import (
	"bytes"
	"html/template"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/state-scatter/internal/scene"
)

var pageTmpl = template.Must(template.New("page").Parse(pageSource))

type pageView struct {
	Title  string
	Margin scene.Margin
	Radius float64
	SVG    template.HTML
}

// WritePage renders the HTML page around the SVG for f. The page script
// posts caption clicks and marker hovers back to the server and swaps in
// the SVG it gets back.
func WritePage(w io.Writer, f scene.Frame) error {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return err
	}
	v := pageView{
		Title:  f.Layout.Title,
		Margin: f.Layout.Margin,
		Radius: f.Layout.Radius,
		SVG:    template.HTML(buf.String()), //nolint:gosec // produced by Write, which escapes all text
	}
	if err := pageTmpl.Execute(w, v); err != nil {
		return eris.Wrap(err, "svg: render page")
	}
	return nil
}

const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:sans-serif}
#chart{position:relative;display:inline-block}
#tip{position:absolute;display:none;padding:8px;border-radius:4px;background:rgba(0,0,0,0.8);color:#fff;font-size:12px;text-align:center;pointer-events:none;transform:translate(-50%,-100%)}
</style>
</head>
<body>
<div id="chart">{{.SVG}}<div id="tip"></div></div>
<script>
(function () {
  const chart = document.getElementById("chart");
  const tip = document.getElementById("tip");
  const margin = { left: {{.Margin.Left}}, top: {{.Margin.Top}} };
  const radius = {{.Radius}};

  function binding() {
    const svg = chart.querySelector("svg");
    return svg ? svg.getAttribute("data-binding") : "";
  }

  async function reload() {
    const res = await fetch("chart.svg", { cache: "no-store" });
    if (!res.ok) return;
    const text = await res.text();
    const old = chart.querySelector("svg");
    const holder = document.createElement("div");
    holder.innerHTML = text;
    chart.replaceChild(holder.querySelector("svg"), old);
  }

  chart.addEventListener("click", async function (ev) {
    const caption = ev.target.closest("text[data-field]");
    if (!caption) return;
    const res = await fetch("api/captions/" + encodeURIComponent(caption.dataset.field) + "/click", { method: "POST" });
    if (!res.ok) return;
    const body = await res.json();
    if (body.changed) await reload();
  });

  async function send(index, method) {
    const url = "api/markers/" + index + "/hover?binding=" + encodeURIComponent(binding());
    const res = await fetch(url, { method: method });
    if (!res.ok) return;
    const t = await res.json();
    if (!t.visible) {
      tip.style.display = "none";
      return;
    }
    tip.innerHTML = t.text;
    tip.style.left = (margin.left + t.x) + "px";
    tip.style.top = (margin.top + t.y - radius) + "px";
    tip.style.display = "block";
  }

  // Hover and leave requests run one at a time, in event order.
  let pending = Promise.resolve();

  function hover(ev, method) {
    const marker = ev.target.closest("g.marker");
    if (!marker || marker.contains(ev.relatedTarget)) return;
    const index = marker.dataset.index;
    pending = pending.then(function () { return send(index, method); }).catch(function () {});
  }

  chart.addEventListener("mouseover", function (ev) { hover(ev, "POST"); });
  chart.addEventListener("mouseout", function (ev) { hover(ev, "DELETE"); });
})();
</script>
</body>
</html>
`
