package page

// pageTemplate is the Go html/template hosting a single preview.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>{{.CSS}}</style>
  {{.Head}}
</head>
<body>
  <div class="preview-container" id="preview" data-kind="{{.Kind}}" data-socket="{{.Socket}}" data-payload="{{.Payload}}">
    {{.Content}}
  </div>
  <div class="status-toast" id="status-toast"></div>
  <script>{{.JS}}</script>
</body>
</html>`

// cssContent is the stylesheet shared by every preview kind.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f6f8fa;
  --text: #1f2328;
  --text-muted: #656d76;
  --border: #d0d7de;
  --accent: #0969da;
  --highlight: #fff8c5;
  --selected: #ddf4ff;
  --added-bg: #e6ffec;
  --removed-bg: #ffebe9;
  --hunk-bg: #ddf4ff;
  --json-key: #0550ae;
  --json-string: #0a3069;
  --json-number: #953800;
  --json-bool: #cf222e;
  --json-null: #6e7781;
  --font-mono: ui-monospace, SFMono-Regular, "SF Mono", Menlo, Consolas, monospace;
}

[data-theme="dark"] {
  --bg: #0d1117;
  --bg-secondary: #161b22;
  --text: #e6edf3;
  --text-muted: #8d96a0;
  --border: #30363d;
  --accent: #4493f8;
  --highlight: #3b2e00;
  --selected: #121d2f;
  --added-bg: #12261e;
  --removed-bg: #25171c;
  --hunk-bg: #121d2f;
  --json-key: #79c0ff;
  --json-string: #a5d6ff;
  --json-number: #ffa657;
  --json-bool: #ff7b72;
  --json-null: #8b949e;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  background: var(--bg);
  color: var(--text);
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  font-size: 14px;
}

.preview-container {
  display: flex;
  flex-direction: column;
  height: 100vh;
}

/* ============ Header ============ */
.preview-header {
  display: flex;
  align-items: center;
  gap: 16px;
  padding: 10px 16px;
  border-bottom: 1px solid var(--border);
  background: var(--bg-secondary);
}

.preview-header-info { display: flex; flex-direction: column; min-width: 0; }
.preview-header-title { font-size: 15px; }
.preview-header-stats { color: var(--text-muted); font-size: 12px; }

.preview-toolbar {
  display: flex;
  align-items: center;
  gap: 8px;
  margin-left: auto;
  flex-wrap: wrap;
}

.action-btn {
  border: 1px solid var(--border);
  background: var(--bg);
  color: var(--text);
  border-radius: 6px;
  padding: 5px 10px;
  cursor: pointer;
  font-size: 13px;
}
.action-btn:hover { border-color: var(--accent); }
.action-btn.active { background: var(--accent); color: #fff; border-color: var(--accent); }

.search-box { position: relative; display: flex; align-items: center; }
.search-icon { position: absolute; left: 8px; font-size: 12px; opacity: 0.6; }
.search-input {
  padding: 5px 26px 5px 28px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--bg);
  color: var(--text);
  width: 220px;
}
.search-input:focus { outline: 2px solid var(--accent); border-color: transparent; }
.search-clear {
  position: absolute;
  right: 4px;
  border: none;
  background: none;
  color: var(--text-muted);
  cursor: pointer;
  font-size: 16px;
}

.theme-toggle-wrapper { display: flex; align-items: center; gap: 6px; }
.theme-label { font-size: 12px; color: var(--text-muted); }
.theme-toggle {
  width: 34px;
  height: 18px;
  border-radius: 9px;
  background: var(--border);
  position: relative;
  cursor: pointer;
}
.theme-toggle::after {
  content: "";
  position: absolute;
  top: 2px;
  left: 2px;
  width: 14px;
  height: 14px;
  border-radius: 50%;
  background: var(--bg);
  transition: left 0.15s;
}
[data-theme="dark"] .theme-toggle::after { left: 18px; }

/* ============ Body and footer ============ */
.preview-body { flex: 1; min-height: 0; overflow: hidden; display: flex; flex-direction: column; }
.preview-body > div { flex: 1; min-height: 0; overflow: auto; }

.preview-footer {
  display: flex;
  justify-content: space-between;
  padding: 6px 16px;
  border-top: 1px solid var(--border);
  color: var(--text-muted);
  font-size: 12px;
}
.footer-links { display: flex; gap: 12px; }
.footer-link { color: var(--text-muted); text-decoration: none; }
.footer-link:hover { color: var(--accent); }

.preview-error { padding: 24px; }
.preview-error pre { white-space: pre-wrap; color: var(--json-bool); }

.status-toast {
  position: fixed;
  bottom: 40px;
  left: 50%;
  transform: translateX(-50%);
  background: var(--text);
  color: var(--bg);
  padding: 8px 16px;
  border-radius: 6px;
  opacity: 0;
  pointer-events: none;
  transition: opacity 0.2s;
}
.status-toast.visible { opacity: 1; }

/* ============ Table ============ */
.table-wrapper { min-width: 100%; }
#csv-container table {
  border-collapse: separate;
  border-spacing: 0;
  font-family: var(--font-mono);
  font-size: 13px;
  width: max-content;
  min-width: 100%;
}
#csv-container th {
  position: sticky;
  top: 0;
  background: var(--bg-secondary);
  border-bottom: 1px solid var(--border);
  border-right: 1px solid var(--border);
  padding: 0 12px;
  height: 40px;
  text-align: left;
  cursor: pointer;
  user-select: none;
  white-space: nowrap;
  z-index: 1;
}
#csv-container th.sort-asc::after { content: " ▲"; font-size: 10px; }
#csv-container th.sort-desc::after { content: " ▼"; font-size: 10px; }
#csv-container tbody.sorting { opacity: 0.6; cursor: progress; }
#csv-container td {
  height: 40px;
  padding: 0 12px;
  border-bottom: 1px solid var(--border);
  border-right: 1px solid var(--border);
  max-width: 320px;
  overflow: hidden;
  text-overflow: ellipsis;
  white-space: nowrap;
}
#csv-container td.numeric { text-align: right; }
#csv-container td.row-number, #csv-container th.row-number {
  color: var(--text-muted);
  text-align: right;
  background: var(--bg-secondary);
  cursor: default;
}
#csv-container td.selected { background: var(--selected); outline: 2px solid var(--accent); outline-offset: -2px; }
#csv-container td.expanded { white-space: pre-wrap; max-width: none; height: auto; }
#csv-container tr.virtual-spacer td { padding: 0; border: none; }

/* ============ JSON tree ============ */
#json-container { font-family: var(--font-mono); font-size: 13px; padding: 12px 16px; }
.json-entry.hidden { display: none; }
.json-line { line-height: 22px; white-space: nowrap; }
.json-line.highlight { background: var(--highlight); }
.json-children { padding-left: 20px; }
.json-entry.json-collapsed > .json-children,
.json-entry.json-collapsed > .json-close { display: none; }
.json-entry:not(.json-collapsed) > .json-line > .json-preview,
.json-entry:not(.json-collapsed) > .json-line > .json-count { display: none; }
.json-toggle { display: inline-block; width: 16px; cursor: pointer; color: var(--text-muted); }
.json-toggle::before { content: "▼"; font-size: 10px; }
.json-entry.json-collapsed > .json-line > .json-toggle::before { content: "▶"; }
.json-toggle.leaf { cursor: default; }
.json-toggle.leaf::before { content: ""; }
.json-collapsible { cursor: pointer; }
.json-key { color: var(--json-key); }
.json-string { color: var(--json-string); }
.json-number { color: var(--json-number); }
.json-boolean { color: var(--json-bool); }
.json-null { color: var(--json-null); }
.json-preview { color: var(--text-muted); margin-left: 6px; }
.json-count { color: var(--text-muted); font-size: 11px; margin-left: 8px; font-style: italic; }
.json-no-results { color: var(--text-muted); padding: 12px 0; }

/* ============ Markdown ============ */
#markdown-container { padding: 24px 32px; max-width: 960px; margin: 0 auto; line-height: 1.6; }
#markdown-container pre { background: var(--bg-secondary); padding: 12px; border-radius: 6px; overflow: auto; }
#markdown-container code { font-family: var(--font-mono); font-size: 13px; }
#markdown-container table { border-collapse: collapse; }
#markdown-container th, #markdown-container td { border: 1px solid var(--border); padding: 6px 12px; }
#markdown-container blockquote { border-left: 4px solid var(--border); margin: 0; padding-left: 16px; color: var(--text-muted); }
#markdown-container img { max-width: 100%; }
.mermaid { text-align: center; margin: 16px 0; }

/* ============ Plan ============ */
.plan-layout { display: flex; min-height: 100%; }
.plan-sidebar {
  flex: 0 0 260px;
  position: sticky;
  top: 0;
  align-self: flex-start;
  max-height: 100vh;
  overflow: auto;
  padding: 16px;
  border-right: 1px solid var(--border);
  background: var(--bg-secondary);
}
.sidebar-title { font-size: 11px; text-transform: uppercase; letter-spacing: 0.05em; color: var(--text-muted); }
.plan-name { font-weight: 600; margin: 6px 0 8px; }
.plan-meta { display: flex; flex-wrap: wrap; gap: 6px; margin-bottom: 12px; }
.meta-badge { font-size: 11px; padding: 2px 8px; border-radius: 10px; border: 1px solid var(--border); }
.toc-list { list-style: none; margin: 0; padding: 0; }
.toc-link { display: block; padding: 3px 0; color: var(--text); text-decoration: none; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.toc-link:hover { color: var(--accent); }
.toc-link[data-level="3"] { padding-left: 12px; }
.toc-link[data-level="4"], .toc-link[data-level="5"], .toc-link[data-level="6"] { padding-left: 24px; font-size: 13px; }
.plan-main { flex: 1; min-width: 0; padding: 24px 32px; max-width: 960px; line-height: 1.6; }
#plan-container pre { background: var(--bg-secondary); padding: 12px; border-radius: 6px; overflow: auto; }
#plan-container code { font-family: var(--font-mono); font-size: 13px; }
#plan-container th, #plan-container td { border: 1px solid var(--border); padding: 6px 12px; }

/* ============ Diff ============ */
#diff-container { padding: 12px 16px; font-family: var(--font-mono); font-size: 12px; }
.diff-file { border: 1px solid var(--border); border-radius: 6px; margin-bottom: 12px; overflow: hidden; }
.diff-file.hidden { display: none; }
.diff-file-header {
  display: flex;
  gap: 12px;
  align-items: center;
  padding: 6px 12px;
  background: var(--bg-secondary);
  cursor: pointer;
  border-bottom: 1px solid var(--border);
}
.diff-file-name { font-weight: 600; }
.diff-file-stats .added { color: #1a7f37; }
.diff-file-stats .removed { color: #cf222e; }
.diff-file.collapsed .diff-file-body { display: none; }
.diff-file .collapse-icon { display: inline-block; margin-right: 8px; font-size: 11px; transition: transform 0.2s; }
.diff-file.collapsed .collapse-icon { transform: rotate(-90deg); }
.diff-file-status { font-size: 11px; padding: 1px 6px; border-radius: 10px; background: var(--bg-secondary); color: var(--text-muted); }
.diff-note { padding: 12px 16px; color: var(--text-muted); }
.diff-table td.code.added { background: var(--added-bg); }
.diff-table td.code.removed { background: var(--removed-bg); }
.view-mode-btn.active { font-weight: 600; background: var(--bg-secondary); }
.diff-table { width: 100%; border-collapse: collapse; table-layout: fixed; }
.diff-table td { padding: 0 8px; white-space: pre-wrap; word-break: break-all; vertical-align: top; }
.diff-table td.line-num { width: 50px; color: var(--text-muted); text-align: right; user-select: none; }
.diff-line.added td { background: var(--added-bg); }
.diff-line.removed td { background: var(--removed-bg); }
.diff-line.hunk td { background: var(--hunk-bg); color: var(--text-muted); }
.diff-line td.empty { background: var(--bg-secondary); }
.diff-empty { padding: 80px 40px; color: var(--text-muted); text-align: center; }
`

// jsContent is the client runtime. It forwards user events to the preview
// session over a websocket and applies the patches the session sends back.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var root = document.getElementById("preview");
  var socketPath = root.getAttribute("data-socket");
  var payload = root.getAttribute("data-payload");
  var ws = null;
  var pending = [];

  // ===== Theme =====
  function getStoredTheme() {
    try { return localStorage.getItem("previewkit-theme"); } catch(e) { return null; }
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("previewkit-theme", theme); } catch(e) {}
    if (typeof mermaid !== "undefined") {
      mermaid.initialize({ startOnLoad: false, theme: theme === "dark" ? "dark" : "default" });
    }
  }

  var stored = getStoredTheme();
  if (stored) {
    setTheme(stored);
  } else if (window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches) {
    setTheme("dark");
  }

  // ===== Effects =====
  var toastTimer = null;
  function showStatus(text) {
    var toast = document.getElementById("status-toast");
    toast.textContent = text;
    toast.classList.add("visible");
    clearTimeout(toastTimer);
    toastTimer = setTimeout(function() { toast.classList.remove("visible"); }, 2000);
  }

  function writeClipboard(text) {
    if (navigator.clipboard && navigator.clipboard.writeText) {
      navigator.clipboard.writeText(text).catch(function() { fallbackCopy(text); });
      return;
    }
    fallbackCopy(text);
  }

  function fallbackCopy(text) {
    var area = document.createElement("textarea");
    area.value = text;
    area.style.position = "fixed";
    area.style.opacity = "0";
    document.body.appendChild(area);
    area.select();
    try { document.execCommand("copy"); } catch(e) {}
    document.body.removeChild(area);
  }

  function download(name, mime, text) {
    var blob = new Blob([text], { type: mime || "application/octet-stream" });
    var url = URL.createObjectURL(blob);
    var a = document.createElement("a");
    a.href = url;
    a.download = name;
    a.click();
    URL.revokeObjectURL(url);
  }

  function each(selector, fn) {
    if (!selector) return;
    document.querySelectorAll(selector).forEach(fn);
  }

  function apply(p) {
    switch (p.op) {
    case "replace":
      each(p.target, function(el) { el.innerHTML = p.html || ""; });
      break;
    case "append":
      each(p.target, function(el) { el.insertAdjacentHTML("beforeend", p.html || ""); });
      break;
    case "remove":
      each(p.target, function(el) { el.remove(); });
      break;
    case "add-class":
      each(p.target, function(el) { el.classList.add(p.class); });
      break;
    case "remove-class":
      each(p.target, function(el) { el.classList.remove(p.class); });
      break;
    case "scroll-top":
      each(p.target, function(el) { el.scrollTop = p.value || 0; });
      break;
    case "value":
      each(p.target, function(el) { el.value = p.text || ""; });
      break;
    case "clipboard":
      writeClipboard(p.text || "");
      break;
    case "status":
      showStatus(p.text || "");
      break;
    case "download":
      download(p.name, p.mime, p.text || "");
      break;
    }
    if (p.op === "replace" && typeof mermaid !== "undefined") {
      mermaid.run({ querySelector: ".mermaid:not([data-processed])" });
    }
  }

  // ===== Session =====
  function send(ev) {
    if (ws && ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(ev));
    } else if (ws) {
      pending.push(ev);
    } else {
      offline(ev);
    }
  }

  function decodePayload() {
    var bin = atob(payload || "");
    var bytes = new Uint8Array(bin.length);
    for (var i = 0; i < bin.length; i++) bytes[i] = bin.charCodeAt(i);
    return new TextDecoder().decode(bytes);
  }

  // A static snapshot has no session. Only copying the raw input works.
  function offline(ev) {
    if (ev.type === "copy" && payload) {
      writeClipboard(decodePayload());
      showStatus("Copied to clipboard!");
    }
  }

  function scrollSource() {
    return document.querySelector("[data-scroll]");
  }

  function viewportHeight() {
    var el = scrollSource();
    return el ? el.clientHeight : window.innerHeight;
  }

  if (socketPath) {
    var scheme = location.protocol === "https:" ? "wss://" : "ws://";
    ws = new WebSocket(scheme + location.host + socketPath);
    ws.onopen = function() {
      ws.send(JSON.stringify({ type: "resize", height: viewportHeight() }));
      pending.splice(0).forEach(function(ev) { ws.send(JSON.stringify(ev)); });
    };
    ws.onmessage = function(msg) {
      var patches;
      try { patches = JSON.parse(msg.data); } catch(e) { return; }
      (Array.isArray(patches) ? patches : [patches]).forEach(apply);
    };
    ws.onclose = function() { showStatus("Disconnected from preview server"); };
  }

  // ===== Events =====
  document.addEventListener("input", function(e) {
    var el = e.target;
    var action = el.getAttribute && el.getAttribute("data-action");
    if (action) send({ type: action, query: el.value });
  });

  var suppressClick = false;

  document.addEventListener("click", function(e) {
    if (suppressClick) { suppressClick = false; return; }
    if (e.target.closest("[data-client='theme']")) {
      setTheme((html.getAttribute("data-theme") || "light") === "dark" ? "light" : "dark");
      return;
    }
    var control = e.target.closest("[data-action]");
    if (control && control.tagName !== "INPUT") {
      var ev = { type: control.getAttribute("data-action") };
      var d = control.dataset;
      if (d.col !== undefined) ev.col = parseInt(d.col, 10);
      if (d.node !== undefined) ev.node = parseInt(d.node, 10);
      if (d.file !== undefined) ev.file = parseInt(d.file, 10);
      if (d.mode !== undefined) ev.mode = d.mode;
      send(ev);
      return;
    }
    var cell = e.target.closest("tbody td[data-col]");
    var row = cell && cell.closest("tr[data-row]");
    if (row) {
      send({ type: "cell", row: parseInt(row.dataset.row, 10), col: parseInt(cell.dataset.col, 10) });
    }
  });

  document.addEventListener("scroll", function(e) {
    var el = e.target;
    if (el.hasAttribute && el.hasAttribute("data-scroll")) {
      send({ type: "scroll", scrollTop: el.scrollTop, height: el.clientHeight });
    }
  }, true);

  window.addEventListener("resize", function() {
    send({ type: "resize", height: viewportHeight() });
  });

  document.addEventListener("keydown", function(e) {
    var mod = e.ctrlKey || e.metaKey;
    if (mod && e.key === "f") {
      var input = document.querySelector(".search-input");
      if (input) { e.preventDefault(); input.focus(); input.select(); }
      return;
    }
    if (e.key === "Escape") {
      send({ type: "key", key: "Escape" });
      return;
    }
    if (mod && e.key === "c" && document.querySelector("td.selected")) {
      var sel = window.getSelection();
      if (sel && String(sel).length > 0) return;
      e.preventDefault();
      send({ type: "key", key: "c", ctrl: true });
    }
  });

  // ===== Column resize =====
  var resizing = null, startX = 0, startWidth = 0;

  document.addEventListener("mousedown", function(e) {
    var th = e.target.closest("th");
    if (!th || th.classList.contains("row-number") || !th.closest("#csv-container")) return;
    var rect = th.getBoundingClientRect();
    if (e.clientX <= rect.right - 8) return;
    e.preventDefault();
    resizing = th;
    startX = e.clientX;
    startWidth = th.offsetWidth;
    document.body.style.cursor = "col-resize";
  });

  document.addEventListener("mousemove", function(e) {
    if (!resizing) return;
    var width = Math.max(50, startWidth + e.clientX - startX);
    resizing.style.width = width + "px";
    resizing.style.minWidth = width + "px";
  });

  document.addEventListener("mouseup", function() {
    if (!resizing) return;
    resizing = null;
    suppressClick = true;
    setTimeout(function() { suppressClick = false; }, 0);
    document.body.style.cursor = "";
  });

  if (typeof mermaid !== "undefined") {
    mermaid.run({ querySelector: ".mermaid" });
  }
})();
`
