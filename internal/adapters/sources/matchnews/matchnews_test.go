package matchnews

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"oasis/internal/adapters/sources/feedjson"
	"oasis/internal/core/status"
)

func TestArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[
		  {"id": 9, "title": "Derby preview", "excerpt": "All you need", "imageUrl": "/img/9.jpg",
		   "articleLink": "derby-preview", "readTime": "3 min", "publishTime": 1700000000000},
		  {"id": "10", "title": "Transfer news", "imageUrl": "https://elsewhere/10.jpg", "publishedAt": "2024-05-01T10:00:00Z"},
		  {"id": "11", "title": ""}
		]}`))
	}))
	defer srv.Close()

	s := New(feedjson.New(feedjson.Options{Attempts: 1}), Options{
		ListURL:   srv.URL,
		SiteURL:   "https://news.example/",
		ImageBase: "https://cdn.example/prod/",
	})
	got, err := s.Articles(context.Background())
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	a := got[0]
	if a.ID != "9" || a.CategoryKey != Category || a.StateCode != status.NoCode {
		t.Fatalf("article = %+v", a)
	}
	if a.ImageURL != "https://cdn.example/prod/img/9.jpg" {
		t.Fatalf("image = %s", a.ImageURL)
	}
	if a.Link != "https://news.example/news/9/derby-preview.html" {
		t.Fatalf("link = %s", a.Link)
	}
	if a.Attrs["read_time"] != "3 min" || a.Subtitle != "All you need" {
		t.Fatalf("attrs = %v subtitle = %q", a.Attrs, a.Subtitle)
	}
	if a.Timestamp == nil || a.Timestamp.UnixMilli() != 1700000000000 {
		t.Fatalf("timestamp = %v", a.Timestamp)
	}

	b := got[1]
	if b.ImageURL != "https://elsewhere/10.jpg" || b.Attrs["read_time"] != DefaultReadTime {
		t.Fatalf("second = %+v", b)
	}
	if b.Timestamp == nil || b.Timestamp.Year() != 2024 {
		t.Fatalf("rfc3339 timestamp = %v", b.Timestamp)
	}
	if b.Link != "https://news.example/news/10" {
		t.Fatalf("link without slug = %s", b.Link)
	}
}

func TestJoinPath(t *testing.T) {
	cases := [][3]string{
		{"https://b", "/x.png", "https://b/x.png"},
		{"https://b", "x.png", "https://b/x.png"},
		{"", "/x.png", "/x.png"},
		{"https://b", "", ""},
		{"https://b", "http://abs/x", "http://abs/x"},
	}
	for _, c := range cases {
		if got := joinPath(c[0], c[1]); got != c[2] {
			t.Fatalf("joinPath(%q,%q) = %q, want %q", c[0], c[1], got, c[2])
		}
	}
}
