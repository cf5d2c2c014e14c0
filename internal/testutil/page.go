package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SamplePage is a host page that enables every widget.
const SamplePage = `<!doctype html>
<html>
<head><title>moriz82</title></head>
<body>
  <section id="terminal">
    <pre><code class="typewriter" data-prompt="operator@lab:~$" data-terminal='[{"command": "scan", "output": ["ok"]}, {"command": "whoami", "output": "operator"}]'></code></pre>
  </section>

  <section id="github">
    <div data-github-grid data-github-user="moriz82"></div>
    <p data-github-status></p>
  </section>

  <section id="blog">
    <div data-blog-carousel data-post-source="data/posts.json">
      <div data-carousel-track>
        <article class="blog-card" data-slug="hello-world" data-date="2024-02-01">
          <a class="blog-card-link" href="posts/hello-world.html">
            <div class="blog-card-media"><img src="img/hello.png" alt="Hello hero"></div>
            <div class="blog-card-body">
              <div class="blog-card-meta"><time datetime="2024-02-01">Feb 1, 2024</time><span>3 min</span></div>
              <h3>Hello World</h3>
              <p>First post on the new site.</p>
              <ul class="tag-list blog-card-tags"><li>intro</li><li>meta</li></ul>
            </div>
          </a>
        </article>
        <article class="blog-card" data-title="Second Post" data-summary="Attribute summary">
          <a class="blog-card-link" href="#">
            <div class="blog-card-body"><h3>Ignored heading</h3><p>Ignored body</p></div>
          </a>
        </article>
      </div>
      <button data-carousel-prev></button>
      <div data-carousel-dots></div>
      <button data-carousel-next></button>
    </div>
    <p data-carousel-status hidden></p>
  </section>

  <section id="htb">
    <div data-htb-pie data-htb-source="/data/htb.json"></div>
    <ul data-htb-legend></ul>
    <div data-htb-timeline></div>
  </section>
</body>
</html>
`

// WriteFile writes content to name inside dir, creating parent directories,
// and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSamplePage writes SamplePage as index.html in a fresh temp dir and
// returns the page path.
func WriteSamplePage(t testing.TB) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "index.html", SamplePage)
}
