package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// PageData fills the index page.
type PageData struct {
	Title     string
	Countdown string
	Clock     string
	Variant   string
}

// Page renders the index: the countdown over a live-refreshing SVG scene.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, pageTemplate,
			templ.EscapeString(d.Title),
			templ.EscapeString(d.Countdown),
			templ.EscapeString(d.Clock),
			templ.EscapeString(d.Variant),
		)
		return err
	})
}

func renderPage(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { margin: 0; background: #080e26; color: #fff; font-family: sans-serif; }
#countdown { position: absolute; top: 16px; width: 100%%; text-align: center; font-size: 28px; }
#clock { position: absolute; top: 52px; width: 100%%; text-align: center; font-size: 12px; color: #aabedc; }
#scene { display: block; width: 100vw; height: 100vh; object-fit: cover; }
</style>
</head>
<body>
<img id="scene" src="/scene.svg" alt="snow">
<div id="countdown">%s</div>
<div id="clock">%s &middot; %s</div>
<script>
(function () {
  var scene = document.getElementById("scene");
  var label = document.getElementById("countdown");
  setInterval(function () { scene.src = "/scene.svg?t=" + Date.now(); }, 250);
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function (msg) {
      var ev = JSON.parse(msg.data);
      if (ev.type === "countdown") { label.textContent = ev.text; }
    };
    ws.onclose = function () { setTimeout(connect, 2000); };
  }
  connect();
})();
</script>
</body>
</html>
`
