// Package importer turns a shop product page into a clothing item draft.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/raushankrgupta/virtual-closet/gateway"
	"github.com/raushankrgupta/virtual-closet/logger"
	"github.com/raushankrgupta/virtual-closet/models"
)

// maxImageBytes bounds product image downloads.
const maxImageBytes = 10 << 20

var ErrInvalidURL = errors.New("product url must be absolute http(s)")

// Draft is a clothing item read off a product page, not yet in the closet.
type Draft struct {
	Name      string          `json:"name"`
	ImageURL  string          `json:"imageUrl"`
	Category  models.Category `json:"category"`
	SourceURL string          `json:"sourceUrl"`
	Site      string          `json:"site"`
}

type Importer struct {
	Client *http.Client
	// Browser renders pages plain HTTP cannot read. Nil disables the fallback.
	Browser BrowserFunc
	log     *logger.Logger
}

func New(log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{
		Client:  newHTTPClient(),
		Browser: ChromeDocument,
		log:     log.With("service", "Importer"),
	}
}

// Import fetches rawURL and extracts a draft using the matching shop's
// selectors, or OpenGraph metadata for unknown shops.
func (im *Importer) Import(ctx context.Context, rawURL string) (*Draft, error) {
	u, err := neturl.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	resolved := im.resolveURL(ctx, u.String())
	s := siteFor(resolved)
	im.log.Info("importing product", "url", resolved, "site", s.name)

	doc, err := im.fetchDocument(ctx, resolved, s.validate)
	if err != nil {
		return nil, err
	}

	p := s.extract(doc)
	if p.title == "" || p.image == "" {
		if s.name != generic.name {
			fallback := extractGeneric(doc)
			p.title = firstNonEmpty(p.title, fallback.title)
			p.image = firstNonEmpty(p.image, fallback.image)
		}
		if p.title == "" || p.image == "" {
			return nil, fmt.Errorf("no product name or image found at %s", resolved)
		}
	}

	base, _ := neturl.Parse(resolved)
	return &Draft{
		Name:      p.title,
		ImageURL:  absolute(base, p.image),
		Category:  GuessCategory(p.title, p.breadcrumb),
		SourceURL: resolved,
		Site:      s.name,
	}, nil
}

func absolute(base *neturl.URL, ref string) string {
	r, err := neturl.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

// DownloadImage fetches a product image so it can be cleaned up and stored.
func (im *Importer) DownloadImage(ctx context.Context, url string) (gateway.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gateway.Image{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := im.Client.Do(req)
	if err != nil {
		return gateway.Image{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return gateway.Image{}, fmt.Errorf("bad status: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return gateway.Image{}, err
	}
	if len(data) > maxImageBytes {
		return gateway.Image{}, fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}

	mime := http.DetectContentType(data)
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		mime = strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	}
	if !strings.HasPrefix(mime, "image/") {
		return gateway.Image{}, fmt.Errorf("not an image: %s", mime)
	}
	return gateway.Image{Data: data, MIMEType: mime}, nil
}
