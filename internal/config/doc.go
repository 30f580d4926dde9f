// Package config provides configuration parsing for toolbox projects.
//
// The configuration lives in toolbox.json (or toolbox.yaml) at the project
// root. Every field is optional; missing fields fall back to the defaults
// returned by New.
//
// # Configuration File Structure
//
//	{
//	  "attributes": {
//	    "component": "component",
//	    "ref": "ref"
//	  },
//	  "attach": {
//	    "policy": "append"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "memoize": { "cacheSize": 256 },
//	  "timing": { "debounce": "300ms", "throttle": "100ms" },
//	  "cursor": {
//	    "origin": [0.5, 0.5],
//	    "inertia": 0.2,
//	    "triggers": ["a", "button"]
//	  },
//	  "smoothScroll": { "intensity": 0.85 },
//	  "server": { "addr": ":8080" },
//	  "metrics": { "enabled": true, "namespace": "toolbox" }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.Logger(os.Stderr)
package config
