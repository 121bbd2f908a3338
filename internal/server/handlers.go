package server

import (
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/patii/workcity/internal/log"
	"github.com/patii/workcity/internal/render"
	"github.com/patii/workcity/internal/theme"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	head, err := s.heads.Get(r.Context(), headCacheKey, s.cfg.Cache.TTL)
	if err != nil {
		log.ErrorErr(log.CatServer, "rendering head", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err = render.WritePage(&buf, head.HTML, render.PageData{
		Title:     "workcity landing page",
		BodyClass: "home page-template-default",
	})
	if err != nil {
		log.ErrorErr(log.CatServer, "rendering page", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	f, err := s.themeFS.Open(theme.Stylesheet)
	if err != nil {
		// A missing stylesheet is a plain 404 for the browser, as with any static file.
		log.Warn(log.CatServer, "stylesheet not found", "error", err.Error())
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()

	modTime := time.Time{}
	if info, err := f.Stat(); err == nil {
		modTime = info.ModTime()
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := fs.ReadFile(s.themeFS, theme.Stylesheet)
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		rs = bytes.NewReader(data)
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if r.URL.Query().Get("ver") != "" {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	http.ServeContent(w, r, theme.Stylesheet, modTime, rs)
}
