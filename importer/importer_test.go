package importer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/raushankrgupta/virtual-closet/models"
)

func newTestImporter(srv *httptest.Server) *Importer {
	im := New(nil)
	im.Client = srv.Client()
	im.Browser = nil
	return im
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		in   string
		want models.Category
	}{
		{"Men Round Neck Pink T-Shirt", models.CategoryTops},
		{"Women Cotton Hoodie", models.CategoryTops},
		{"Slim Fit Stretchable Jeans", models.CategoryBottoms},
		{"Pleated Midi Skirt", models.CategoryBottoms},
		{"Leather Belt", models.CategoryExtra},
		{"Laptop Sleeve", models.CategoryExtra},
		{"", models.CategoryExtra},
	}
	for _, tt := range tests {
		if got := GuessCategory(tt.in); got != tt.want {
			t.Errorf("GuessCategory(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if got := GuessCategory("Solid Item", "Clothing > Men > Trousers"); got != models.CategoryBottoms {
		t.Errorf("breadcrumb ignored: got %s", got)
	}
}

func TestSiteFor(t *testing.T) {
	tests := map[string]string{
		"https://www.amazon.in/dp/B0ABC":           "amazon",
		"https://www.flipkart.com/x/p/itm1":        "flipkart",
		"https://www.myntra.com/tshirts/h&m/1/buy": "myntra",
		"https://www.tatacliq.com/x/p-mp1":         "tatacliq",
		"https://shop.example.com/p/1":             "generic",
	}
	for url, want := range tests {
		if got := siteFor(url).name; got != want {
			t.Errorf("siteFor(%q) = %s, want %s", url, got, want)
		}
	}
}

func TestExtractAmazon(t *testing.T) {
	doc := parse(t, `<html><body>
		<div id="wayfinding-breadcrumbs_feature_div"><ul><li>Clothing</li><li>›</li><li>Jeans</li></ul></div>
		<span id="productTitle">  Classic Denim  </span>
		<img id="landingImage" src="/small.jpg" data-old-hires="https://m.media-amazon.com/big.jpg">
	</body></html>`)

	got := extractAmazon(doc)
	if got.title != "Classic Denim" || got.image != "https://m.media-amazon.com/big.jpg" {
		t.Fatalf("got %+v", got)
	}
	if got.breadcrumb != "Clothing > Jeans" {
		t.Fatalf("breadcrumb = %q", got.breadcrumb)
	}
}

func TestExtractMyntraFromState(t *testing.T) {
	doc := parse(t, `<html><body><h1>x</h1><script>window.__myx = {"pdpData":{"name":"HM Men White Tshirt",
		"analytics":{"articleType":"Tshirts"},
		"media":{"albums":[{"images":[{"src":"https://assets.myntassets.com/1.jpg"}]}]}}};</script></body></html>`)

	got := extractMyntra(doc)
	if got.title != "HM Men White Tshirt" || got.image != "https://assets.myntassets.com/1.jpg" {
		t.Fatalf("got %+v", got)
	}
}

func TestImportGenericPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing browser user agent")
		}
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Linen Summer Shirt">
			<meta property="og:image" content="/img/linen.jpg">
		</head><body></body></html>`))
	})
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/product", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	draft, err := newTestImporter(srv).Import(context.Background(), srv.URL+"/short")
	if err != nil {
		t.Fatal(err)
	}
	want := Draft{
		Name:      "Linen Summer Shirt",
		ImageURL:  srv.URL + "/img/linen.jpg",
		Category:  models.CategoryTops,
		SourceURL: srv.URL + "/product",
		Site:      "generic",
	}
	if *draft != want {
		t.Fatalf("draft = %+v\nwant  %+v", *draft, want)
	}
}

func TestImportFallsBackToBrowser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Robot Check</title></head><body></body></html>`))
	}))
	defer srv.Close()

	im := newTestImporter(srv)
	called := false
	im.Browser = func(ctx context.Context, url string) (*goquery.Document, error) {
		called = true
		return parse(t, `<html><head><meta property="og:title" content="Wool Scarf">
			<meta property="og:image" content="https://cdn.example.com/scarf.jpg"></head></html>`), nil
	}

	draft, err := im.Import(context.Background(), srv.URL+"/p")
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("browser fallback not used")
	}
	if draft.Name != "Wool Scarf" || draft.Category != models.CategoryExtra {
		t.Fatalf("draft = %+v", draft)
	}
}

func TestImportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()
	im := newTestImporter(srv)

	for _, bad := range []string{"", "not a url", "ftp://example.com/x", "/relative"} {
		if _, err := im.Import(context.Background(), bad); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Import(%q) err = %v, want ErrInvalidURL", bad, err)
		}
	}
	if _, err := im.Import(context.Background(), srv.URL); err == nil {
		t.Fatal("page without product data should fail")
	}
}

func TestDownloadImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	im := newTestImporter(srv)

	img, err := im.DownloadImage(context.Background(), srv.URL+"/ok.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.MIMEType != "image/png" || !bytes.Equal(img.Data, buf.Bytes()) {
		t.Fatalf("got %s, %d bytes", img.MIMEType, len(img.Data))
	}

	if _, err := im.DownloadImage(context.Background(), srv.URL+"/page"); err == nil {
		t.Fatal("html accepted as image")
	}
	if _, err := im.DownloadImage(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("404 accepted")
	}
}
