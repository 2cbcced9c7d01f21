package gh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/martinmagala/repo2prompt/internal/cache"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient("", cache.New(t.TempDir()))
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()
	return c, server
}

func TestFetchPaged_AssemblesAllPages(t *testing.T) {
	// Pages of sizes 100, 100, 37.
	var requests int
	c, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size := 100
		if page == 3 {
			size = 37
		}
		items := make([]map[string]int, size)
		for i := range items {
			items[i] = map[string]int{"id": (page-1)*100 + i}
		}
		_ = json.NewEncoder(w).Encode(items)
	}))

	items, err := c.FetchPaged(context.Background(), server.URL+"/repos/foo/bar/things")
	if err != nil {
		t.Fatalf("FetchPaged: %v", err)
	}
	if len(items) != 237 {
		t.Errorf("items: want 237, got %d", len(items))
	}
	if requests != 3 {
		t.Errorf("requests: want 3, got %d", requests)
	}

	// Repeat call is served from the cache with zero requests.
	requests = 0
	again, err := c.FetchPaged(context.Background(), server.URL+"/repos/foo/bar/things")
	if err != nil {
		t.Fatalf("FetchPaged (cached): %v", err)
	}
	if requests != 0 {
		t.Errorf("cached call issued %d requests", requests)
	}
	if len(again) != 237 {
		t.Errorf("cached items: want 237, got %d", len(again))
	}
}

func TestFetchPaged_SingleShortPage(t *testing.T) {
	var requests int
	c, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "only"}})
	}))

	items, err := c.FetchPaged(context.Background(), server.URL+"/short")
	if err != nil {
		t.Fatalf("FetchPaged: %v", err)
	}
	if len(items) != 1 || requests != 1 {
		t.Errorf("items=%d requests=%d, want 1/1", len(items), requests)
	}
}

func TestFetchPaged_HTTPError(t *testing.T) {
	c, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))

	_, err := c.FetchPaged(context.Background(), server.URL+"/denied")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusForbidden {
		t.Errorf("status: want 403, got %d", se.StatusCode)
	}
}

func TestClient_SendsAuthAndAcceptHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer server.Close()

	c := NewClient("secret-token", cache.New(t.TempDir()))
	c.BaseURL = server.URL
	c.HTTPClient = server.Client()

	if _, err := c.FetchPaged(context.Background(), server.URL+"/auth"); err != nil {
		t.Fatalf("FetchPaged: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestContents_DecodesBase64(t *testing.T) {
	body := "print('hello')\n"
	encoded := base64.StdEncoding.EncodeToString([]byte(body))
	// GitHub wraps base64 payloads with newlines.
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/foo/bar/contents/main.py" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content":  wrapped,
			"encoding": "base64",
		})
	}))

	got, err := c.Contents(context.Background(), Ref{Owner: "foo", Name: "bar"}, "main.py")
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	if got != body {
		t.Errorf("Contents = %q, want %q", got, body)
	}
}

func TestContents_CachedSecondCall(t *testing.T) {
	var requests int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content": base64.StdEncoding.EncodeToString([]byte("x")),
		})
	}))

	ref := Ref{Owner: "foo", Name: "bar"}
	for i := 0; i < 2; i++ {
		if _, err := c.Contents(context.Background(), ref, "a.py"); err != nil {
			t.Fatalf("Contents #%d: %v", i+1, err)
		}
	}
	if requests != 1 {
		t.Errorf("requests: want 1, got %d", requests)
	}
}

func TestTree_FetchesRecursiveListing(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/foo/bar/git/trees/main" || r.URL.Query().Get("recursive") != "1" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"sha":"abc","tree":[{"path":"a.py","type":"blob"},{"path":"docs","type":"tree"}]}`)
	}))

	tree, err := c.Tree(context.Background(), Ref{Owner: "foo", Name: "bar"}, "")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if tree.SHA != "abc" {
		t.Errorf("sha = %q", tree.SHA)
	}
	if len(tree.Entries) != 2 || tree.Entries[0].Path != "a.py" || tree.Entries[1].Type != "tree" {
		t.Errorf("entries = %+v", tree.Entries)
	}
}
