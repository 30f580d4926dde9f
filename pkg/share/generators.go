package share

import (
	"sort"

	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/querystring"
)

// Data is the content of a share link.
type Data struct {
	// Target names the generator. Empty means "custom".
	Target string

	URL         string
	Title       string
	Description string

	// BaseURL and Extra are used by the custom generator only.
	BaseURL string
	Extra   []querystring.Entry
}

// Generator builds a share link.
type Generator func(d Data) (string, error)

// TargetCustom is the generator used when Data.Target is empty.
const TargetCustom = "custom"

var generators = map[string]Generator{
	"whatsapp":   whatsapp,
	"telegram":   telegram,
	"facebook":   facebook,
	"twitter":    twitter,
	"googleplus": googleplus,
	"linkedin":   linkedin,
	"mail":       mail,
	TargetCustom: custom,
}

// Targets returns the names of the available generators, sorted.
func Targets() []string {
	out := make([]string, 0, len(generators))
	for name := range generators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GenerateURL builds the share link for d.Target. Unknown targets yield
// E040; the custom generator without a base URL yields E041.
func GenerateURL(d Data) (string, error) {
	target := d.Target
	if target == "" {
		target = TargetCustom
	}
	gen, ok := generators[target]
	if !ok {
		return "", errors.New("E040").WithDetail("target " + target)
	}
	return gen(d)
}

func escape(s string) string { return querystring.EscapeComponent(s) }

func joinNonEmpty(a, b string) string {
	if b == "" {
		return a
	}
	return a + " " + b
}

func whatsapp(d Data) (string, error) {
	text := d.URL
	if d.Description != "" {
		text = d.Description + " " + d.URL
	}
	return "https://wa.me/?text=" + escape(text), nil
}

func telegram(d Data) (string, error) {
	qs := "?url=" + d.URL + "&text=" + d.Description
	return "https://telegram.me/share/url" + escape(qs), nil
}

func facebook(d Data) (string, error) {
	return "https://www.facebook.com/sharer/sharer.php?u=" + escape(d.URL), nil
}

func twitter(d Data) (string, error) {
	return "https://twitter.com/home?status=" + escape(joinNonEmpty(d.URL, d.Description)), nil
}

func googleplus(d Data) (string, error) {
	return "https://plus.google.com/share?url=" + escape(d.URL), nil
}

func linkedin(d Data) (string, error) {
	qs := "?mini=true&url=" + d.URL + "&title=" + d.Title + "&summary=" + d.Description
	return "https://www.linkedin.com/shareArticle" + escape(qs), nil
}

func mail(d Data) (string, error) {
	return "mailto:?subject=" + d.Title + "&body=" + joinNonEmpty(d.URL, d.Description), nil
}

func custom(d Data) (string, error) {
	if d.BaseURL == "" {
		return "", errors.New("E041")
	}

	var params []querystring.Entry
	for _, e := range []querystring.Entry{
		{Key: "url", Value: d.URL},
		{Key: "title", Value: d.Title},
		{Key: "description", Value: d.Description},
	} {
		if e.Value != "" {
			params = append(params, e)
		}
	}
	params = append(params, d.Extra...)

	return d.BaseURL + querystring.FromEntries(params, querystring.Options{}), nil
}
