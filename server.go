package main

import (
	"errors"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Query defaults.
const (
	defaultStart   = "12:00"
	defaultEnd     = "13:00"
	defaultColor   = "D4D4D4"
	currentColor   = "FF9000"
	opaque         = 0xff
	noStore        = "no-store"
	textPlainUTF8  = "text/plain; charset=utf-8"
	msgBadTime     = "Invalid time format"
	msgBadColor    = "Invalid color format"
	msgBadFormat   = "Invalid format"
	msgEncodeError = "Internal error"
)

// Handler serves the time-dependent pixel.
//
// Query parameters:
//
//	s  window start, HH:MM (default 12:00)
//	e  window end, HH:MM (default 13:00)
//	d  color outside the window (default D4D4D4)
//	c  color inside the window (default FF9000)
//	f  png or qoi (default png)
type Handler struct {
	loc    *time.Location
	now    func() time.Time
	colors colorParser
	debug  bool
}

// NewHandler returns a Handler using cfg's zone and color options.
func NewHandler(cfg *Config) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		loc:    loc,
		now:    time.Now,
		colors: colorParser{named: cfg.NamedColors},
		debug:  cfg.Debug,
	}
}

// request is a fully parsed query.
type request struct {
	window  Window
	def     color.NRGBA
	current color.NRGBA
	format  Format
}

// queryOr returns def only when key is absent; "s=" is passed through and
// fails to parse.
func queryOr(q url.Values, key, def string) string {
	if q.Has(key) {
		return q.Get(key)
	}
	return def
}

func (h *Handler) parse(r *http.Request) (request, error) {
	var (
		req request
		err error
		q   = r.URL.Query()
	)
	if req.window.Start, err = parseClock(queryOr(q, "s", defaultStart)); err != nil {
		return req, err
	}
	if req.window.End, err = parseClock(queryOr(q, "e", defaultEnd)); err != nil {
		return req, err
	}
	if req.def, err = h.colors.parse(queryOr(q, "d", defaultColor)); err != nil {
		return req, err
	}
	if req.current, err = h.colors.parse(queryOr(q, "c", currentColor)); err != nil {
		return req, err
	}
	if req.format, err = parseFormat(q.Get("f")); err != nil {
		return req, err
	}
	return req, nil
}

// pick returns the color to show at minute.
func (req request) pick(minute int) color.NRGBA {
	c := req.def
	if req.window.Contains(minute) {
		c = req.current
	}
	c.A = opaque
	return c
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.parse(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	minute := minutesIn(h.now(), h.loc)
	c := req.pick(minute)

	body, err := encodeAs(req.format, c)
	if err != nil {
		log.Printf("clockpixel: encode %s: %v", req.format, err)
		writeText(w, http.StatusInternalServerError, msgEncodeError)
		return
	}

	hdr := w.Header()
	hdr.Set("Content-Type", req.format.ContentType())
	hdr.Set("Cache-Control", noStore)
	w.WriteHeader(http.StatusOK)
	w.Write(body)

	if h.debug {
		log.Printf("clockpixel: %s %s window=%s now=%s -> #%s (%s, %d bytes)",
			r.Method, r.URL.RequestURI(), req.window, formatClock(minute), hexString(c), req.format, len(body))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	msg := msgBadFormat
	switch {
	case errors.Is(err, ErrInvalidTime):
		msg = msgBadTime
	case errors.Is(err, ErrInvalidColor):
		msg = msgBadColor
	}
	writeText(w, http.StatusBadRequest, msg)

	if h.debug {
		log.Printf("clockpixel: %s %s -> 400: %v", r.Method, r.URL.RequestURI(), err)
	}
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", textPlainUTF8)
	w.WriteHeader(code)
	io.WriteString(w, msg)
}
