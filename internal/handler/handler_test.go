package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/TRrajputDEV/Pixels-sub000/internal/discovery"
	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
	"github.com/TRrajputDEV/Pixels-sub000/internal/service"
)

const videoID = "6f1c1b8e-2d3a-4b5c-9d7e-0a1b2c3d4e5f"

type stubVideos struct {
	videos []model.Video
	err    error
}

func (s *stubVideos) FindByID(_ context.Context, id string) (*model.Video, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, v := range s.videos {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubVideos) Find(_ context.Context, f model.VideoFilter) ([]model.Video, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Video
	for _, v := range s.videos {
		if f.OwnerID == "" || v.OwnerID == f.OwnerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubVideos) Create(_ context.Context, v *model.Video) error {
	if s.err != nil {
		return s.err
	}
	s.videos = append(s.videos, *v)
	return nil
}

func (s *stubVideos) UpdateDiscovery(context.Context, string, model.Discovery) error { return nil }
func (s *stubVideos) FindUntagged(context.Context, int) ([]model.Video, error)      { return nil, nil }
func (s *stubVideos) IncrementViews(context.Context, string) error                  { return nil }

type stubCounts struct{}

func (stubCounts) CountByVideos(context.Context, []string) (map[string]int64, error) {
	return map[string]int64{}, nil
}
func (stubCounts) CountByLiker(context.Context, string) (int64, error)         { return 2, nil }
func (stubCounts) CountReceivedByOwner(context.Context, string) (int64, error) { return 30, nil }
func (stubCounts) CountByChannel(context.Context, string) (int64, error)       { return 5, nil }
func (stubCounts) CountBySubscriber(context.Context, string) (int64, error)    { return 1, nil }

type stubUsers map[string]bool

func (u stubUsers) Exists(_ context.Context, id string) (bool, error) { return u[id], nil }

func newTestApp(store *stubVideos) (*fiber.App, *service.FeedService) {
	classifier := discovery.NewClassifier(nil)
	tagger := discovery.NewTagger(classifier)
	feed := service.NewFeedService(store, stubCounts{}, stubCounts{}, service.DefaultWeights())

	videos := NewVideoHandler(feed, service.NewVideoService(store, tagger))
	channels := NewChannelHandler(service.NewChannelStatsService(stubUsers{"owner-1": true}, store, stubCounts{}, stubCounts{}))
	disc := NewDiscoveryHandler(classifier, tagger)

	app := fiber.New()
	app.Get("/api/videos", videos.List)
	app.Post("/api/videos", videos.Create)
	app.Get("/api/videos/:videoId", videos.Get)
	app.Get("/api/channels/:ownerId/stats", channels.Stats)
	app.Post("/api/discovery/classify", disc.Classify)
	app.Post("/api/discovery/tags", disc.Tags)
	return app, feed
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, target, err)
	}
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestVideoHandler_List(t *testing.T) {
	store := &stubVideos{}
	for i := range 23 {
		store.videos = append(store.videos, model.Video{
			ID: videoID[:35] + string(rune('a'+i)), OwnerID: "owner-1", Title: "v", IsPublished: true,
			CreatedAt: time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC),
		})
	}
	app, _ := newTestApp(store)

	status, body := do(t, app, http.MethodGet, "/api/videos?page=3&limit=10", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%v)", status, body)
	}
	if items := body["items"].([]any); len(items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(items))
	}
	if body["totalPages"].(float64) != 3 || body["hasNextPage"].(bool) || !body["hasPrevPage"].(bool) {
		t.Errorf("envelope = %v", body)
	}
}

func TestVideoHandler_ListPastLastPage(t *testing.T) {
	store := &stubVideos{videos: []model.Video{{ID: videoID, OwnerID: "owner-1", Title: "v", IsPublished: true}}}
	app, _ := newTestApp(store)

	status, body := do(t, app, http.MethodGet, "/api/videos?page=9223372036854775807", "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%v)", status, body)
	}
	if items := body["items"].([]any); len(items) != 0 || body["totalItems"].(float64) != 1 {
		t.Errorf("envelope = %v, want empty items and totalItems 1", body)
	}
}

func TestVideoHandler_ListValidation(t *testing.T) {
	app, _ := newTestApp(&stubVideos{})

	tests := []string{
		"/api/videos?page=0",
		"/api/videos?limit=abc",
		"/api/videos?limit=101",
		"/api/videos?sortBy=random",
		"/api/videos?sortType=sideways",
		"/api/videos?published=maybe",
		"/api/videos?ownerId=bad%20id",
	}
	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			status, body := do(t, app, http.MethodGet, target, "")
			if status != http.StatusBadRequest || errorCode(body) != "INVALID_FIELD" {
				t.Errorf("status = %d code = %q, want 400 INVALID_FIELD", status, errorCode(body))
			}
		})
	}
}

func TestVideoHandler_ListStoreDown(t *testing.T) {
	app, _ := newTestApp(&stubVideos{err: errors.New("connection refused")})

	status, body := do(t, app, http.MethodGet, "/api/videos", "")
	if status != http.StatusInternalServerError || errorCode(body) != "INTERNAL_ERROR" {
		t.Errorf("status = %d code = %q, want 500 INTERNAL_ERROR", status, errorCode(body))
	}
}

func TestVideoHandler_Get(t *testing.T) {
	store := &stubVideos{videos: []model.Video{
		{ID: videoID, OwnerID: "owner-1", Title: "Pasta", ViewCount: 4, IsPublished: true},
	}}
	app, feed := newTestApp(store)
	defer feed.Close()

	status, body := do(t, app, http.MethodGet, "/api/videos/"+videoID, "")
	if status != http.StatusOK || body["id"] != videoID {
		t.Errorf("status = %d body = %v, want 200 with video", status, body)
	}

	status, body = do(t, app, http.MethodGet, "/api/videos/not-a-uuid", "")
	if status != http.StatusBadRequest {
		t.Errorf("invalid id status = %d, want 400", status)
	}

	status, body = do(t, app, http.MethodGet, "/api/videos/00000000-0000-0000-0000-000000000000", "")
	if status != http.StatusNotFound || errorCode(body) != "NOT_FOUND" {
		t.Errorf("missing status = %d code = %q, want 404 NOT_FOUND", status, errorCode(body))
	}
}

func TestVideoHandler_Create(t *testing.T) {
	store := &stubVideos{}
	app, _ := newTestApp(store)

	status, body := do(t, app, http.MethodPost, "/api/videos",
		`{"ownerId":"owner-1","title":"Learn to cook pasta fast","duration":240,"isPublished":true}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d body = %v, want 201", status, body)
	}
	if body["category"] != "cooking" || body["durationCategory"] != "short" {
		t.Errorf("discovery = %v/%v, want cooking/short", body["category"], body["durationCategory"])
	}
	if len(store.videos) != 1 {
		t.Errorf("stored %d videos, want 1", len(store.videos))
	}

	for _, bad := range []string{`{"ownerId":"owner-1"}`, `{"title":"x"}`, `not json`} {
		if status, _ := do(t, app, http.MethodPost, "/api/videos", bad); status != http.StatusBadRequest {
			t.Errorf("body %s status = %d, want 400", bad, status)
		}
	}
}

func TestChannelHandler_Stats(t *testing.T) {
	store := &stubVideos{videos: []model.Video{
		{ID: "a", OwnerID: "owner-1", ViewCount: 100},
		{ID: "b", OwnerID: "owner-1", ViewCount: 200},
		{ID: "c", OwnerID: "owner-1", ViewCount: 300},
	}}
	app, _ := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/channels/owner-1/stats", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, raw)
	}
	for _, want := range []string{`"averageViewsPerVideo":200`, `"engagementRate":5.00`, `"totalSubscribers":5`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("body %s missing %s", raw, want)
		}
	}

	status, body := do(t, app, http.MethodGet, "/api/channels/ghost/stats", "")
	if status != http.StatusNotFound || errorCode(body) != "NOT_FOUND" {
		t.Errorf("unknown owner status = %d code = %q, want 404", status, errorCode(body))
	}
}

func TestDiscoveryHandler_Classify(t *testing.T) {
	app, _ := newTestApp(&stubVideos{})

	status, body := do(t, app, http.MethodPost, "/api/discovery/classify", `{"text":"Learn to cook pasta fast"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["category"] != "cooking" || body["mood"] != "informative" || body["durationCategory"] != "short" {
		t.Errorf("result = %v", body)
	}

	status, body = do(t, app, http.MethodPost, "/api/discovery/classify", `{"text":""}`)
	if status != http.StatusOK {
		t.Errorf("empty text status = %d, want 200", status)
	}
	if tags, _ := body["tags"].([]any); tags == nil || len(tags) != 0 {
		t.Errorf("empty text tags = %v, want []", body["tags"])
	}

	for _, bad := range []string{`{"text":42}`, `{}`, `{"text":null}`} {
		if status, _ := do(t, app, http.MethodPost, "/api/discovery/classify", bad); status != http.StatusBadRequest {
			t.Errorf("body %s status = %d, want 400", bad, status)
		}
	}
}

func TestDiscoveryHandler_Tags(t *testing.T) {
	app, _ := newTestApp(&stubVideos{})

	status, body := do(t, app, http.MethodPost, "/api/discovery/tags",
		`{"title":"Funny cat compilation","description":"the best moments"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["category"] != "comedy" || body["mood"] != "funny" {
		t.Errorf("category/mood = %v/%v, want comedy/funny", body["category"], body["mood"])
	}
	tags, _ := body["tags"].([]any)
	if len(tags) == 0 {
		t.Error("no tags returned")
	}
}
