package handler

import (
	"net/http"
	"testing"
)

func TestGetArticleForEditReturnsFullLocaleRecords(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")
	categoryID := createTestCategory(t, r, admin, "Tech")

	w := doRequest(t, r, http.MethodPost, "/api/articles", map[string]any{
		"title":      map[string]string{"en": "Hello World", "pl": "Witaj Świecie"},
		"content":    map[string]string{"en": "<p>english body</p>", "pl": "<p>polska treść</p>"},
		"categoryId": categoryID,
	}, admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create article: expected status 201, got %d (%s)", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodGet, "/api/admin/articles/hello-world/edit", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	article, _ := body["article"].(map[string]any)
	title, _ := article["title"].(map[string]any)
	if title["en"] != "Hello World" || title["pl"] != "Witaj Świecie" {
		t.Fatalf("expected both locale records in edit view, got %v", title)
	}
	content, _ := article["content"].(map[string]any)
	if content["pl"] != "<p>polska treść</p>" {
		t.Fatalf("expected raw Polish content in edit view, got %v", content["pl"])
	}
}

func TestGetArticleForEditNotFound(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")

	w := doRequest(t, r, http.MethodGet, "/api/admin/articles/missing/edit", nil, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUpdateArticlePreserveSlugKeepsIdentifier(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")
	categoryID := createTestCategory(t, r, admin, "Tech")

	w := doRequest(t, r, http.MethodPost, "/api/articles", standardArticlePayload(categoryID), admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create article: expected status 201, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPut, "/api/admin/articles/hello-world/edit", map[string]any{
		"title":        "A Completely New Title",
		"content":      "<p>updated body</p>",
		"categoryId":   categoryID,
		"preserveSlug": true,
	}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["slugChanged"] != false {
		t.Fatalf("expected slugChanged false, got %v", body["slugChanged"])
	}
	article, _ := body["article"].(map[string]any)
	if article["slug"] != "hello-world" {
		t.Fatalf("expected slug to stay hello-world, got %v", article["slug"])
	}

	w = doRequest(t, r, http.MethodGet, "/api/articles/hello-world", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected original slug to keep resolving, got %d", w.Code)
	}
	body = decodeBody(t, w)
	article, _ = body["article"].(map[string]any)
	if article["title"] != "A Completely New Title" {
		t.Fatalf("expected updated title under old slug, got %v", article["title"])
	}
}

func TestUpdateArticleRenegotiatesSlugOnCollision(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")
	categoryID := createTestCategory(t, r, admin, "Tech")

	for _, title := range []string{"Hello World", "Fresh Take"} {
		w := doRequest(t, r, http.MethodPost, "/api/articles", map[string]any{
			"title":      title,
			"content":    "<p>body</p>",
			"categoryId": categoryID,
		}, admin)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %q: expected status 201, got %d", title, w.Code)
		}
	}

	w := doRequest(t, r, http.MethodPut, "/api/admin/articles/hello-world/edit", map[string]any{
		"title":      "Fresh Take",
		"content":    "<p>body</p>",
		"categoryId": categoryID,
	}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["slugChanged"] != true {
		t.Fatalf("expected slugChanged true, got %v", body["slugChanged"])
	}
	if body["newSlug"] != "fresh-take-2" {
		t.Fatalf("expected suffixed slug fresh-take-2, got %v", body["newSlug"])
	}

	w = doRequest(t, r, http.MethodGet, "/api/admin/articles/hello-world/edit", nil, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected old slug to stop resolving, got %d", w.Code)
	}
	w = doRequest(t, r, http.MethodGet, "/api/admin/articles/fresh-take-2/edit", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected new slug to resolve, got %d", w.Code)
	}
}

func TestUpdateArticleVideoToggleClearsStaleFields(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")
	categoryID := createTestCategory(t, r, admin, "Tech")

	w := doRequest(t, r, http.MethodPost, "/api/articles", standardArticlePayload(categoryID), admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create article: expected status 201, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPut, "/api/admin/articles/hello-world/edit", map[string]any{
		"title":        "Hello World",
		"videoOnly":    true,
		"videoUrl":     "https://www.youtube.com/watch?v=abc123",
		"preserveSlug": true,
	}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	article, _ := body["article"].(map[string]any)
	if article["videoOnly"] != true {
		t.Fatalf("expected videoOnly true, got %v", article["videoOnly"])
	}
	content, _ := article["content"].(map[string]any)
	if content["en"] != "" || content["pl"] != "" {
		t.Fatalf("expected content cleared after video toggle, got %v", content)
	}
	if article["categoryId"] != nil {
		t.Fatalf("expected categoryId cleared after video toggle, got %v", article["categoryId"])
	}
	if article["readingTime"] != "" {
		t.Fatalf("expected readingTime cleared after video toggle, got %v", article["readingTime"])
	}
}

func TestUpdateArticleNotFound(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")

	w := doRequest(t, r, http.MethodPut, "/api/admin/articles/missing/edit", map[string]any{
		"title":     "Missing",
		"videoOnly": true,
		"videoUrl":  "https://example.com/v",
	}, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestDeleteArticleRemovesPermanently(t *testing.T) {
	r, _, cleanup := setupTestRouter(t)
	defer cleanup()

	admin := login(t, r, "admin", "admin-pass")
	categoryID := createTestCategory(t, r, admin, "Tech")

	w := doRequest(t, r, http.MethodPost, "/api/articles", standardArticlePayload(categoryID), admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("create article: expected status 201, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodDelete, "/api/admin/articles/hello-world", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodDelete, "/api/admin/articles/hello-world", nil, admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected repeated delete to return 404, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/articles/hello-world", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected public fetch to return 404, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/api/articles", standardArticlePayload(categoryID), admin)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected slug to be reusable after delete, got %d (%s)", w.Code, w.Body.String())
	}
}
