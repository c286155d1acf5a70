// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/pollbox/models"
	"github.com/danielhkuo/pollbox/testutil"
)

func TestTimestampEndpoint(t *testing.T) {
	handler := NewUtilityHandler()

	convert := func(param string) models.TimestampResponse {
		req := testutil.MakeRequest("GET", "/timestamp/"+url.PathEscape(param), nil, nil)
		req.SetPathValue("param", param)
		w := httptest.NewRecorder()
		handler.Timestamp(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var result models.TimestampResponse
		testutil.AssertJSON(t, w, &result)
		return result
	}

	// Unix seconds in, both representations out
	result := convert("1450137600")
	if result.Unix == nil || *result.Unix != 1450137600 {
		t.Fatalf("Expected unix 1450137600, got %v", result.Unix)
	}
	if result.Natural == nil || *result.Natural != "December 15, 2015" {
		t.Fatalf("Expected 'December 15, 2015', got %v", result.Natural)
	}

	// Natural date in, same pair out
	result = convert("December 15, 2015")
	if result.Unix == nil || *result.Unix != 1450137600 {
		t.Errorf("Expected unix 1450137600, got %v", result.Unix)
	}

	// Unparseable input nulls both fields, still a 200
	result = convert("foo")
	if result.Unix != nil || result.Natural != nil {
		t.Errorf("Expected null fields for garbage input, got %+v", result)
	}

	// Zero reads as falsy
	result = convert("0")
	if result.Unix != nil {
		t.Errorf("Expected null for 0, got %v", result.Unix)
	}
}

func TestWhoYouAreEndpoint(t *testing.T) {
	handler := NewUtilityHandler()

	req := testutil.MakeRequest("GET", "/whoyouare", nil, map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
		"Accept-Language": "en-US,en;q=0.5",
	})
	req.RemoteAddr = "198.51.100.7:4242"
	w := httptest.NewRecorder()

	handler.WhoYouAre(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.WhoYouAreResponse
	testutil.AssertJSON(t, w, &result)
	if result.IPAddress != "198.51.100.7" {
		t.Errorf("Expected the client IP, got %q", result.IPAddress)
	}
	if result.Language != "en-US" {
		t.Errorf("Expected the first Accept-Language entry, got %q", result.Language)
	}
	if result.Software != "Linux" {
		t.Errorf("Expected the OS from the user agent, got %q", result.Software)
	}
}

func TestWhoYouAreEndpoint_UnparseableAgent(t *testing.T) {
	handler := NewUtilityHandler()

	req := testutil.MakeRequest("GET", "/whoyouare", nil, map[string]string{
		"User-Agent": "curl/8.0.1",
	})
	req.RemoteAddr = "198.51.100.7:4242"
	w := httptest.NewRecorder()

	handler.WhoYouAre(w, req)

	var result models.WhoYouAreResponse
	testutil.AssertJSON(t, w, &result)

	// No recognizable OS: fall back to echoing the raw agent
	if result.Software != "curl/8.0.1" {
		t.Errorf("Expected the raw user agent, got %q", result.Software)
	}
}

func TestFileMetadataEndpoint(t *testing.T) {
	handler := NewUtilityHandler()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	content := []byte("twelve bytes")
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/file/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	handler.FileMetadata(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.FileMetadataResponse
	testutil.AssertJSON(t, w, &result)
	if result.Name != "notes.txt" {
		t.Errorf("Expected notes.txt, got %q", result.Name)
	}
	if result.FileSize != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), result.FileSize)
	}
	if result.Size == "" {
		t.Error("Expected a humanized size")
	}

	// No multipart field at all
	req = httptest.NewRequest("POST", "/file/upload", nil)
	w = httptest.NewRecorder()
	handler.FileMetadata(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
