package importer

import (
	"context"
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BrowserFunc renders url in a real browser and returns the resulting DOM.
type BrowserFunc func(ctx context.Context, url string) (*goquery.Document, error)

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			ForceAttemptHTTP2:     false,
			TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Sec-Fetch-User", "?1")
}

// fetchDocument tries plain HTTP first and falls back to the browser when
// the page fails validate (bot walls, client-rendered pages).
func (im *Importer) fetchDocument(ctx context.Context, url string, validate func(*goquery.Document) bool) (*goquery.Document, error) {
	doc, err := im.fetchDocumentHTTP(ctx, url)
	if err == nil {
		if validate(doc) && !isBlocked(doc) {
			im.log.Debug("fetched over HTTP", "url", url)
			return doc, nil
		}
		im.log.Debug("HTTP yielded invalid content, trying browser", "url", url)
	} else {
		im.log.Debug("HTTP fetch failed", "url", url, "error", err)
	}

	if im.Browser == nil {
		return nil, fmt.Errorf("could not read product page %s", url)
	}
	doc, err = im.Browser(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("browser fetch of %s: %w", url, err)
	}
	if !validate(doc) {
		return nil, fmt.Errorf("could not read product page %s", url)
	}
	return doc, nil
}

func isBlocked(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	return strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied")
}

func (im *Importer) fetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req)

	res, err := im.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

// ChromeDocument loads url in headless Chrome and parses the rendered HTML.
func ChromeDocument(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	headers := map[string]interface{}{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Sec-Fetch-Dest":  "document",
		"Sec-Fetch-Mode":  "navigate",
		"Sec-Fetch-Site":  "none",
	}
	if err := chromedp.Run(taskCtx, network.SetExtraHTTPHeaders(network.Headers(headers))); err != nil {
		return nil, fmt.Errorf("chromedp header error: %w", err)
	}

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(time.Duration(2+rand.Float64()*3)*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp navigation error: %w", err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// resolveURL follows redirects so shortened links (amzn.in, bit.ly) match
// their shop. HEAD is tried first; some shops only answer GET.
func (im *Importer) resolveURL(ctx context.Context, url string) string {
	for _, method := range []string{http.MethodHead, http.MethodGet} {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return url
		}
		req.Header.Set("User-Agent", userAgent)
		resp, err := im.Client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return resp.Request.URL.String()
		}
	}
	return url
}
