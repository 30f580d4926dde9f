package share

import (
	"strings"

	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/querystring"
)

// DataFromElement reads the data-share-* attributes of el.
func DataFromElement(el *dom.Node) Data {
	var d Data
	for _, e := range dom.Dataset(el) {
		name, ok := shareKey(e.Key)
		if !ok {
			continue
		}
		switch name {
		case "target":
			d.Target = e.Value
		case "url":
			d.URL = e.Value
		case "title":
			d.Title = e.Value
		case "description":
			d.Description = e.Value
		case "baseurl":
			d.BaseURL = e.Value
		default:
			d.Extra = append(d.Extra, querystring.Entry{Key: name, Value: e.Value})
		}
	}
	return d
}

// shareKey maps a dataset key such as "shareBaseUrl" to "baseurl". Keys
// that are not "share" followed by letters are rejected.
func shareKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, "share")
	if !ok || rest == "" {
		return "", false
	}
	for _, c := range rest {
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return "", false
		}
	}
	return strings.ToLower(rest), true
}

// MetaData holds values read from a page's sharing meta tags, keyed by the
// og: property name without its prefix.
type MetaData map[string]string

// RetrieveMetaData reads og:* meta tags from doc. When no og: tag provides
// them, title falls back to the <title> text, description to the
// description meta tag and url to pageURL.
func RetrieveMetaData(doc *dom.Node, pageURL string) MetaData {
	md := MetaData{}
	for _, tag := range dom.QueryAll(doc, `meta[property^="og:"]`) {
		parts := strings.Split(dom.GetAttr(tag, "property"), ":")
		md[parts[1]] = dom.GetAttr(tag, "content")
	}

	if _, ok := md["title"]; !ok {
		md["title"] = ""
		if title := dom.Query(doc, "title"); title != nil {
			md["title"] = strings.TrimSpace(dom.TextContent(title))
		}
	}
	if _, ok := md["description"]; !ok {
		md["description"] = ""
		if desc := dom.Query(doc, `meta[name="description"]`); desc != nil {
			md["description"] = dom.GetAttr(desc, "content")
		}
	}
	if _, ok := md["url"]; !ok {
		md["url"] = pageURL
	}
	return md
}

// Data returns the share data described by md for target.
func (md MetaData) Data(target string) Data {
	return Data{
		Target:      target,
		URL:         md["url"],
		Title:       md["title"],
		Description: md["description"],
	}
}
