package main

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzhttp"
	"github.com/klauspost/compress/zstd"
)

// --- ZSTD helpers ---

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

func compressZstd(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, make([]byte, 0, len(data)))
	zstdEncPool.Put(enc)
	return out
}

// --- Content negotiation ---

// acceptsEncoding reports whether the Accept-Encoding header lists coding
// with a non-zero q value.
func acceptsEncoding(r *http.Request, coding string) bool {
	for _, h := range r.Header.Values("Accept-Encoding") {
		for _, part := range strings.Split(h, ",") {
			name, params, _ := strings.Cut(part, ";")
			if !strings.EqualFold(strings.TrimSpace(name), coding) {
				continue
			}
			return qValue(params) > 0
		}
	}
	return false
}

func qValue(params string) float64 {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}

// compressHandler wraps next so responses are zstd-encoded for clients that
// accept it and gzip-encoded (through gzhttp) otherwise. Bodies shorter than
// minSize are sent as is.
func compressHandler(next http.Handler, minSize int) (http.Handler, error) {
	gzWrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		return nil, err
	}
	gz := gzWrap(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptsEncoding(r, "zstd") {
			gz.ServeHTTP(w, r)
			return
		}
		zw := &zstdResponseWriter{ResponseWriter: w}
		next.ServeHTTP(zw, r)
		zw.finish(r, minSize)
	}), nil
}

// zstdResponseWriter buffers the whole response so the encoding can be
// decided once the body length is known.
type zstdResponseWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (zw *zstdResponseWriter) WriteHeader(code int) {
	if zw.status == 0 {
		zw.status = code
	}
}

func (zw *zstdResponseWriter) Write(p []byte) (int, error) {
	if zw.status == 0 {
		zw.status = http.StatusOK
	}
	return zw.buf.Write(p)
}

func (zw *zstdResponseWriter) finish(r *http.Request, minSize int) {
	if zw.status == 0 {
		zw.status = http.StatusOK
	}
	h := zw.ResponseWriter.Header()
	h.Add("Vary", "Accept-Encoding")

	body := zw.buf.Bytes()
	if zw.status == http.StatusOK && len(body) >= minSize && h.Get("Content-Encoding") == "" {
		body = compressZstd(body)
		h.Set("Content-Encoding", "zstd")
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))

	zw.ResponseWriter.WriteHeader(zw.status)
	if r.Method != http.MethodHead {
		zw.ResponseWriter.Write(body)
	}
}
