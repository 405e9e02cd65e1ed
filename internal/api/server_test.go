package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arajah/artimeline/internal/domain"
	"github.com/arajah/artimeline/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, events ...domain.Event) (*Server, *store.Store) {
	t.Helper()
	s := store.New()
	for _, e := range events {
		_, err := s.Add(e)
		require.NoError(t, err)
	}
	return New(s, "", "", ":0"), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv.Handler(), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddEvent(t *testing.T) {
	srv, s := newTestServer(t)

	w := do(t, srv.Handler(), "POST", "/events", `{"title":"The Fall","story":"Overmorrow","characters":"Lira, lira"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StringList{"Lira"}, created.Characters)
	assert.Equal(t, 1, s.Len())
}

func TestAddEventRequiresTitle(t *testing.T) {
	srv, s := newTestServer(t)

	w := do(t, srv.Handler(), "POST", "/events", `{"title":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, s.Len())
}

func TestListEventsFilteredAndSorted(t *testing.T) {
	srv, _ := newTestServer(t,
		domain.Event{Title: "late", Story: "Overmorrow", StartDate: "1850"},
		domain.Event{Title: "early", Story: "Overmorrow", StartDate: "1820-06"},
		domain.Event{Title: "other story", Story: "Stelo Vienas", StartDate: "1800"},
	)

	w := do(t, srv.Handler(), "GET", "/events?story=Overmorrow", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []domain.Event `json:"events"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "early", resp.Events[0].Title)
	assert.Equal(t, "late", resp.Events[1].Title)
}

func TestGetEventByPrefix(t *testing.T) {
	srv, s := newTestServer(t, domain.Event{Title: "target"})
	id := s.Events()[0].ID

	w := do(t, srv.Handler(), "GET", "/events/"+id[:8], "")
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, id, got.ID)
}

func TestUpdateEvent(t *testing.T) {
	srv, s := newTestServer(t, domain.Event{Title: "before", Notes: "kept?"})
	id := s.Events()[0].ID

	w := do(t, srv.Handler(), "PUT", "/events/"+id, `{"title":"after"}`)
	require.Equal(t, http.StatusOK, w.Code)

	got, _ := s.Get(id)
	assert.Equal(t, "after", got.Title)
	// Full replacement, not a merge.
	assert.Equal(t, "", got.Notes)
}

func TestUpdateUnknownEvent(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv.Handler(), "PUT", "/events/nope", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEvent(t *testing.T) {
	srv, s := newTestServer(t, domain.Event{Title: "doomed"})
	id := s.Events()[0].ID

	w := do(t, srv.Handler(), "DELETE", "/events/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, s.Len())

	w = do(t, srv.Handler(), "DELETE", "/events/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportRejectsNonArray(t *testing.T) {
	srv, s := newTestServer(t, domain.Event{Title: "survivor"})

	w := do(t, srv.Handler(), "POST", "/import", `{"not":"a list"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, s.Len(), "rejected import must leave the store untouched")
}

func TestImportReplacesStore(t *testing.T) {
	srv, s := newTestServer(t, domain.Event{Title: "old"})

	w := do(t, srv.Handler(), "POST", "/import", `[{"id":"e1","title":"new"},{"title":""}]`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, s.Len())
}

func TestChartExcludesUndated(t *testing.T) {
	srv, _ := newTestServer(t,
		domain.Event{Title: "dated", StartDate: "1900"},
		domain.Event{Title: "undated", DateText: "sometime"},
	)

	w := do(t, srv.Handler(), "GET", "/chart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestMeta(t *testing.T) {
	srv, _ := newTestServer(t,
		domain.Event{Title: "a", Story: "Overmorrow", Characters: domain.StringList{"Lira"}},
	)

	w := do(t, srv.Handler(), "GET", "/meta", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Overmorrow")
	assert.Contains(t, w.Body.String(), "Lira")
}

func TestExportJSONHeaders(t *testing.T) {
	srv, _ := newTestServer(t, domain.Event{Title: "a"})

	w := do(t, srv.Handler(), "GET", "/export/json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "AR_Timeline_data.json")

	var events []domain.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 1)
}

func TestExportCSVHeaders(t *testing.T) {
	srv, _ := newTestServer(t, domain.Event{Title: "a"})

	w := do(t, srv.Handler(), "GET", "/export/csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "id,title,date_text"))
}

func TestMutationsPersistToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.json")
	s := store.New()
	srv := New(s, path, "", ":0")

	w := do(t, srv.Handler(), "POST", "/events", `{"title":"persisted"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	reloaded := store.New()
	require.NoError(t, reloaded.LoadFile(path))
	assert.Equal(t, 1, reloaded.Len())
}
