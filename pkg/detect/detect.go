// Package detect collects device information from a User-Agent header.
package detect

import (
	"strconv"
	"strings"

	"github.com/mssola/useragent"
)

// Browser describes the user agent's browser.
type Browser struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Major   float64 `json:"major"`
}

// Engine describes the rendering engine.
type Engine struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// OS describes the operating system.
type OS struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	FullName string `json:"fullName"`
}

// Mobile classifies mobile devices.
type Mobile struct {
	Any     bool `json:"any"`
	Phone   bool `json:"phone"`
	Tablet  bool `json:"tablet"`
	Apple   bool `json:"apple"`
	Android bool `json:"android"`
}

// Info is everything Detect reports about a user agent.
type Info struct {
	Browser  Browser `json:"browser"`
	Engine   Engine  `json:"engine"`
	OS       OS      `json:"os"`
	Mobile   Mobile  `json:"mobile"`
	Platform string  `json:"platform"`
	Bot      bool    `json:"bot"`
}

// Detect parses a User-Agent string.
func Detect(userAgent string) Info {
	ua := useragent.New(userAgent)

	var info Info
	info.Browser.Name, info.Browser.Version = ua.Browser()
	info.Browser.Major = major(info.Browser.Version)
	info.Engine.Name, info.Engine.Version = ua.Engine()

	osInfo := ua.OSInfo()
	info.OS = OS{Name: osInfo.Name, Version: osInfo.Version, FullName: osInfo.FullName}

	info.Platform = ua.Platform()
	info.Bot = ua.Bot()
	info.Mobile = mobile(userAgent, ua.Mobile())
	return info
}

func mobile(userAgent string, isMobile bool) Mobile {
	m := Mobile{
		Apple:   containsAny(userAgent, "iPhone", "iPad", "iPod"),
		Android: strings.Contains(userAgent, "Android"),
	}
	m.Tablet = strings.Contains(userAgent, "iPad") ||
		(m.Android && !strings.Contains(userAgent, "Mobile"))
	m.Any = isMobile || m.Apple || m.Android
	m.Phone = m.Any && !m.Tablet
	return m
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// major parses the leading "N" or "N.M" of a version string. Versions
// without a leading number yield 0.
func major(version string) float64 {
	end, dot := 0, false
	for end < len(version) {
		c := version[end]
		if c == '.' && !dot && end > 0 {
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(version[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}
