// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mileusna/useragent"
	"github.com/ncruces/go-strftime"

	"github.com/danielhkuo/pollbox/middleware"
	"github.com/danielhkuo/pollbox/models"
)

// naturalFormat is the strftime layout of the "natural" date field.
const naturalFormat = "%B %d, %Y"

// UtilityHandler serves the stateless helper endpoints: timestamp
// conversion, request header parsing, and file metadata.
type UtilityHandler struct{}

func NewUtilityHandler() *UtilityHandler {
	return &UtilityHandler{}
}

// TimestampIntro handles GET /timestamp/
func (h *UtilityHandler) TimestampIntro(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Please visit /timestamp/1450137600 or /timestamp/December 15, 2015.\n"))
}

// Timestamp handles GET /timestamp/{param}
// Accepts unix seconds or a natural date; both fields are null when
// the parameter parses as neither.
func (h *UtilityHandler) Timestamp(w http.ResponseWriter, r *http.Request) {
	param := r.PathValue("param")

	t, ok := parseTimestamp(param)
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.TimestampResponse{})
		return
	}

	unix := t.Unix()
	natural := strftime.Format(naturalFormat, t)

	middleware.JSONResponse(w, http.StatusOK, models.TimestampResponse{
		Unix:    &unix,
		Natural: &natural,
	})
}

// WhoYouAre handles GET /whoyouare
func (h *UtilityHandler) WhoYouAre(w http.ResponseWriter, r *http.Request) {
	ua := useragent.Parse(r.UserAgent())

	software := ua.OS
	if software == "" {
		software = r.UserAgent()
	}

	middleware.JSONResponse(w, http.StatusOK, models.WhoYouAreResponse{
		IPAddress: middleware.GetClientIP(r),
		Language:  firstLanguage(r.Header.Get("Accept-Language")),
		Software:  software,
	})
}

// FileIntro handles GET /file/
func (h *UtilityHandler) FileIntro(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Send a POST request to /file/upload/ to analyze a file.\n"))
}

// FileMetadata handles POST /file/upload
// Reports the uploaded file's name and size without storing it.
func (h *UtilityHandler) FileMetadata(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	middleware.JSONResponse(w, http.StatusOK, models.FileMetadataResponse{
		Name:     header.Filename,
		FileSize: header.Size,
		Size:     humanize.IBytes(uint64(header.Size)),
	})
}

func parseTimestamp(param string) (time.Time, bool) {
	// A numeric parameter is unix seconds. Zero is rejected like the
	// original, which treated it as falsy.
	if n, err := strconv.ParseInt(param, 10, 64); err == nil {
		if n == 0 {
			return time.Time{}, false
		}
		return time.Unix(n, 0).UTC(), true
	}

	if t, err := time.Parse("January 2, 2006", param); err == nil {
		return t.UTC(), true
	}

	return time.Time{}, false
}

func firstLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return ""
	}
	if i := strings.IndexByte(acceptLanguage, ','); i >= 0 {
		return acceptLanguage[:i]
	}
	return acceptLanguage
}
