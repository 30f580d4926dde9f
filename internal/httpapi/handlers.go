package httpapi

import (
	stderrors "errors"
	"net/http"

	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/component"
	"github.com/vango-dev/toolbox/pkg/detect"
	"github.com/vango-dev/toolbox/pkg/dom"
	"github.com/vango-dev/toolbox/pkg/querystring"
	"github.com/vango-dev/toolbox/pkg/share"
)

// ScanResponse is the body returned by POST /scan.
type ScanResponse struct {
	MountPoints []component.MountPoint `json:"mountPoints"`
	Names       []string               `json:"names"`
	Registered  []string               `json:"registered"`
}

// ShareResponse is the body returned by GET /share.
type ShareResponse struct {
	Target string `json:"target"`
	URL    string `json:"url"`
}

func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (*dom.Node, int, error) {
	body := http.MaxBytesReader(w, r.Body, s.kit.Config().Server.MaxBodyBytes)
	doc, err := dom.Parse(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, errors.New("E120").Wrap(err)
		}
		return nil, http.StatusBadRequest, err
	}
	return doc, http.StatusOK, nil
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	doc, status, err := s.parseBody(w, r)
	if err != nil {
		writeError(w, status, err)
		return
	}

	mps := s.kit.Scan(doc)
	if mps == nil {
		mps = []component.MountPoint{}
	}
	names := make([]string, 0)
	seen := map[string]bool{}
	registry := s.kit.Registry()
	registered := make([]string, 0)
	for _, mp := range mps {
		if seen[mp.Name] {
			continue
		}
		seen[mp.Name] = true
		names = append(names, mp.Name)
		if registry[mp.Name] != nil {
			registered = append(registered, mp.Name)
		}
	}

	writeJSON(w, http.StatusOK, ScanResponse{MountPoints: mps, Names: names, Registered: registered})
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	doc, status, err := s.parseBody(w, r)
	if err != nil {
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, share.RetrieveMetaData(doc, r.URL.Query().Get("url")))
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	d := share.Data{}
	for _, e := range querystring.Parse(r.URL.RawQuery) {
		value, _ := e.Value.(string)
		switch e.Key {
		case "":
		case "target":
			d.Target = value
		case "url":
			d.URL = value
		case "title":
			d.Title = value
		case "description":
			d.Description = value
		case "baseUrl":
			d.BaseURL = value
		default:
			d.Extra = append(d.Extra, querystring.Entry{Key: e.Key, Value: value})
		}
	}

	url, err := s.kit.ShareManager().GenerateURL(d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	target := d.Target
	if target == "" {
		target = share.TargetCustom
	}
	writeJSON(w, http.StatusOK, ShareResponse{Target: target, URL: url})
}

func (s *Server) handleTargets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, share.Targets())
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	ua := r.URL.Query().Get("ua")
	if ua == "" {
		ua = r.UserAgent()
	}
	writeJSON(w, http.StatusOK, detect.Detect(ua))
}
