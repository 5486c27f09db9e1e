package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBindJSONReportsJSONTagFieldNames(t *testing.T) {
	type payload struct {
		Title      string `json:"title" binding:"required"`
		CategoryID *uint  `json:"categoryId" binding:"required"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	if bindJSON(c, &p) {
		t.Fatal("expected binding to fail")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if !hasField(body, "title") || !hasField(body, "categoryId") {
		t.Fatalf("expected json tag field names, got %v", fieldNames(body))
	}
	if hasField(body, "categoryid") || hasField(body, "CategoryID") {
		t.Fatalf("expected camelCase json tag, got %v", fieldNames(body))
	}
}

func TestParsePositiveIntFallsBack(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{raw: "3", want: 3},
		{raw: "0", want: 10},
		{raw: "-2", want: 10},
		{raw: "abc", want: 10},
		{raw: "", want: 10},
	}
	for _, tc := range cases {
		if got := parsePositiveInt(tc.raw, 10); got != tc.want {
			t.Fatalf("parsePositiveInt(%q): expected %d, got %d", tc.raw, tc.want, got)
		}
	}
}
