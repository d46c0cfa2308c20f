package importer

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// product is what a site extractor reads off a page before it becomes a
// Draft.
type product struct {
	title      string
	image      string
	breadcrumb string
}

type site struct {
	name     string
	matches  func(url string) bool
	validate func(*goquery.Document) bool
	extract  func(*goquery.Document) product
}

var sites = []site{
	{
		name:    "amazon",
		matches: hostContains("amazon", "amzn"),
		validate: func(doc *goquery.Document) bool {
			return text(doc, "#productTitle") != ""
		},
		extract: extractAmazon,
	},
	{
		name:    "flipkart",
		matches: hostContains("flipkart.com"),
		validate: func(doc *goquery.Document) bool {
			return doc.Find("h1").Length() > 0 || doc.Find(".B_NuCI").Length() > 0
		},
		extract: extractFlipkart,
	},
	{
		name:    "myntra",
		matches: hostContains("myntra.com"),
		validate: func(doc *goquery.Document) bool {
			return strings.Contains(doc.Text(), "window.__myx") || doc.Find("h1").Length() > 0
		},
		extract: extractMyntra,
	},
	{
		name:    "tatacliq",
		matches: hostContains("tatacliq.com"),
		validate: func(doc *goquery.Document) bool {
			return doc.Find(".ProductDescriptionPage__productName").Length() > 0 ||
				doc.Find(".ProductDetailsMainCard__productName").Length() > 0
		},
		extract: extractTataCliq,
	},
}

// generic reads OpenGraph tags and falls back to plain HTML.
var generic = site{
	name:    "generic",
	matches: func(string) bool { return true },
	validate: func(doc *goquery.Document) bool {
		p := extractGeneric(doc)
		return p.title != "" && p.image != ""
	},
	extract: extractGeneric,
}

func siteFor(url string) site {
	for _, s := range sites {
		if s.matches(url) {
			return s
		}
	}
	return generic
}

func hostContains(parts ...string) func(string) bool {
	return func(url string) bool {
		for _, p := range parts {
			if strings.Contains(url, p) {
				return true
			}
		}
		return false
	}
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

func meta(doc *goquery.Document, property string) string {
	v := doc.Find("meta[property='" + property + "']").AttrOr("content", "")
	if v == "" {
		v = doc.Find("meta[name='" + property + "']").AttrOr("content", "")
	}
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func extractAmazon(doc *goquery.Document) product {
	var crumbs []string
	doc.Find("#wayfinding-breadcrumbs_feature_div ul li").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t != "" && t != "›" {
			crumbs = append(crumbs, t)
		}
	})

	img := doc.Find("#landingImage")
	return product{
		title: text(doc, "#productTitle"),
		image: firstNonEmpty(
			img.AttrOr("data-old-hires", ""),
			img.AttrOr("src", ""),
			doc.Find("#imgTagWrapperId img").AttrOr("src", ""),
			meta(doc, "og:image"),
		),
		breadcrumb: strings.Join(crumbs, " > "),
	}
}

func extractFlipkart(doc *goquery.Document) product {
	p := product{title: firstNonEmpty(text(doc, ".B_NuCI"), text(doc, "h1.yhB1nd span"), text(doc, "h1"))}

	thumb := doc.Find("ul._3GnUWp li._20Gt85 img").First().AttrOr("src", "")
	if thumb != "" {
		p.image = strings.Replace(thumb, "/128/128/", "/832/832/", 1)
	}
	p.image = firstNonEmpty(p.image, doc.Find("img._396cs4").AttrOr("src", ""), meta(doc, "og:image"))
	return p
}

func extractMyntra(doc *goquery.Document) product {
	var p product
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		i := strings.Index(body, "window.__myx =")
		if i < 0 {
			return true
		}
		raw := strings.TrimSuffix(strings.TrimSpace(body[i+len("window.__myx ="):]), ";")

		var data struct {
			PDP struct {
				Name      string `json:"name"`
				Analytics struct {
					ArticleType string `json:"articleType"`
				} `json:"analytics"`
				Media     struct {
					Albums []struct {
						Images []struct {
							Src string `json:"src"`
						} `json:"images"`
					} `json:"albums"`
				} `json:"media"`
			} `json:"pdpData"`
		}
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}
		p.title = data.PDP.Name
		p.breadcrumb = data.PDP.Analytics.ArticleType
		for _, album := range data.PDP.Media.Albums {
			if len(album.Images) > 0 && album.Images[0].Src != "" {
				p.image = album.Images[0].Src
				break
			}
		}
		return false
	})

	if p.title == "" {
		p.title = firstNonEmpty(text(doc, ".pdp-title"), text(doc, ".pdp-name"))
	}
	if p.image == "" {
		style := doc.Find(".image-grid-image").First().AttrOr("style", "")
		if i := strings.Index(style, "url("); i >= 0 {
			rest := style[i+len("url("):]
			if j := strings.Index(rest, ")"); j >= 0 {
				p.image = strings.Trim(rest[:j], "\"'")
			}
		}
	}
	p.image = firstNonEmpty(p.image, meta(doc, "og:image"))
	return p
}

func extractTataCliq(doc *goquery.Document) product {
	return product{
		title: firstNonEmpty(
			text(doc, "h1.ProductDescriptionPage__productName"),
			text(doc, ".ProductDetailsMainCard__productName"),
		),
		image: firstNonEmpty(
			doc.Find("img.ImageGallery__image").First().AttrOr("src", ""),
			meta(doc, "og:image"),
		),
	}
}

func extractGeneric(doc *goquery.Document) product {
	return product{
		title: firstNonEmpty(meta(doc, "og:title"), text(doc, "h1"), text(doc, "title")),
		image: firstNonEmpty(
			meta(doc, "og:image"),
			meta(doc, "twitter:image"),
			doc.Find("img[src]").First().AttrOr("src", ""),
		),
		breadcrumb: meta(doc, "product:category"),
	}
}
