package detect

import "testing"

const (
	chromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	firefoxLinux  = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"
	safariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	androidTablet = "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"
	googlebot     = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestDetectBrowsers(t *testing.T) {
	tests := []struct {
		name    string
		ua      string
		browser string
		major   float64
		engine  string
	}{
		{"chrome", chromeWindows, "Chrome", 120, "AppleWebKit"},
		{"firefox", firefoxLinux, "Firefox", 115, "Gecko"},
		{"safari", safariIPhone, "Safari", 17, "AppleWebKit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Detect(tt.ua)
			if info.Browser.Name != tt.browser {
				t.Errorf("Browser.Name = %q, want %q", info.Browser.Name, tt.browser)
			}
			if info.Browser.Major != tt.major {
				t.Errorf("Browser.Major = %v, want %v", info.Browser.Major, tt.major)
			}
			if info.Engine.Name != tt.engine {
				t.Errorf("Engine.Name = %q, want %q", info.Engine.Name, tt.engine)
			}
			if info.Bot {
				t.Error("not a bot")
			}
		})
	}
}

func TestDetectMobile(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Mobile
	}{
		{"desktop", chromeWindows, Mobile{}},
		{"iphone", safariIPhone, Mobile{Any: true, Phone: true, Apple: true}},
		{"android tablet", androidTablet, Mobile{Any: true, Tablet: true, Android: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.ua).Mobile; got != tt.want {
				t.Errorf("Mobile = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDetectBot(t *testing.T) {
	if !Detect(googlebot).Bot {
		t.Error("Googlebot should be detected as a bot")
	}
}

func TestMajor(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"120.0.6099.71", 120},
		{"17.4", 17.4},
		{"9", 9},
		{"", 0},
		{"beta", 0},
		{"3.", 3},
		{".5", 0},
	}
	for _, tt := range tests {
		if got := major(tt.in); got != tt.want {
			t.Errorf("major(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
