package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reticlego/pkg/config"
	"reticlego/pkg/loop"
	"reticlego/pkg/model"
	"reticlego/pkg/profile"
	"reticlego/pkg/reticle"
	"reticlego/pkg/reticle/svg"
	"reticlego/pkg/settings"
	"reticlego/pkg/store"
)

type harness struct {
	ctx    context.Context
	store  *store.Adapter
	hub    *EventHub
	alerts *AlertLog
	srv    *httptest.Server
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := store.NewAdapter(store.NewMemoryStore())
	lp := loop.New(64)
	go lp.Run(ctx)

	hub := NewEventHub()
	go hub.Run(ctx)
	st.Subscribe(hub.Publish)

	alerts := NewAlertLog(10)
	cfg := config.DefaultConfig()

	surface := svg.New(reticle.Size{Width: 200, Height: 100}, lp.Post)
	renderer := reticle.NewRenderer(surface)
	ctrl := settings.NewController(st, settings.NewPage(), cfg.Defaults, alerts, nil)

	require.NoError(t, lp.Do(ctx, func() error {
		if err := ctrl.Bind(ctx); err != nil {
			return err
		}
		if _, err := ctrl.SeedDefaults(ctx); err != nil {
			return err
		}
		reticle.Follow(ctx, st, renderer)
		return nil
	}))

	srv := NewServer(cfg.Server,
		NewSettingsHandler(lp, ctrl),
		NewProfileHandler(lp, ctrl),
		NewReticleHandler(lp, renderer, surface),
		NewWindowHandler(lp, config.NewProvider(cfg, st)),
		hub,
		alerts,
		func() {},
	)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return &harness{ctx: ctx, store: st, hub: hub, alerts: alerts, srv: ts}
}

func (h *harness) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(h.ctx, method, h.srv.URL+path, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (h *harness) fields(t *testing.T) model.Snapshot {
	t.Helper()
	resp := h.do(t, http.MethodGet, "/api/fields", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[model.Snapshot](t, resp)
}

func (h *harness) edit(t *testing.T, id, value string) bool {
	t.Helper()
	resp := h.do(t, http.MethodPut, "/api/fields/"+id, `{"value":"`+value+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[map[string]bool](t, resp)["changed"]
}

func TestHealthAndVersion(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[map[string]string](t, resp)["version"])
}

func TestFields_SeededOnFirstRun(t *testing.T) {
	h := newHarness(t)

	snap := h.fields(t)
	assert.Equal(t, "10", snap[config.KeyCrossLength])
	assert.Equal(t, true, snap[config.KeyCircleEnabled])
	assert.Equal(t, "1920", snap[config.KeyWindowWidth])
}

func TestEditField(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.edit(t, config.KeyCrossLength, "20"))
	assert.False(t, h.edit(t, config.KeyCrossLength, "20"))

	v, ok := h.store.Get(h.ctx, config.KeyCrossLength)
	require.True(t, ok)
	assert.Equal(t, "20", v)

	resp := h.do(t, http.MethodGet, "/api/reticle", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[ReticleResponse](t, resp)
	assert.Equal(t, 20.0, state.Geometry.Top.Height)
	assert.Equal(t, reticle.Point{X: 100, Y: 50}, state.Geometry.Center)
}

func TestEditField_Errors(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPut, "/api/fields/nope", `{"value":"1"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(t, http.MethodPut, "/api/fields/"+config.KeyCrossLength, `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(exported), `"crossLength": "10"`)

	h.edit(t, config.KeyCrossLength, "40")

	resp = h.do(t, http.MethodPost, "/api/import", string(exported))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10", decode[model.Snapshot](t, resp)[config.KeyCrossLength])
	assert.Equal(t, "10", h.fields(t)[config.KeyCrossLength])
}

func TestImport_InvalidReported(t *testing.T) {
	h := newHarness(t)

	for _, body := range []string{"[1,2]", "not json", `"text"`} {
		resp := h.do(t, http.MethodPost, "/api/import", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Equal(t, "10", h.fields(t)[config.KeyCrossLength])

	resp := h.do(t, http.MethodGet, "/api/alerts", "")
	alerts := decode[[]Alert](t, resp)
	require.Len(t, alerts, 3)
	assert.True(t, strings.HasPrefix(alerts[0].Message, "ERROR: "))
}

func TestReset(t *testing.T) {
	h := newHarness(t)
	h.edit(t, config.KeyCrossLength, "40")
	h.edit(t, config.KeyWindowWidth, "800")

	resp := h.do(t, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[model.Snapshot](t, resp)
	assert.Equal(t, "10", snap[config.KeyCrossLength])
	assert.Equal(t, "1920", snap[config.KeyWindowWidth])
}

func TestProfiles_Lifecycle(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/profiles", "")
	list := decode[ProfilesResponse](t, resp)
	assert.Empty(t, list.Labels)
	assert.False(t, list.Enabled)

	resp = h.do(t, http.MethodPost, "/api/profiles", `{"label":"sniper"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	list = decode[ProfilesResponse](t, resp)
	assert.Equal(t, []string{"sniper"}, list.Labels)
	assert.Equal(t, "sniper", list.Selected)
	assert.True(t, list.Enabled)

	h.edit(t, config.KeyCrossLength, "30")
	resp = h.do(t, http.MethodPost, "/api/profiles/load", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10", h.fields(t)[config.KeyCrossLength])

	h.edit(t, config.KeyCrossLength, "30")
	resp = h.do(t, http.MethodPost, "/api/profiles/save", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saved, ok := h.store.Get(h.ctx, config.SavedPrefix+"sniper")
	require.True(t, ok)
	snap, ok := model.AsSnapshot(saved)
	require.True(t, ok)
	assert.Equal(t, "30", snap[config.KeyCrossLength])

	resp = h.do(t, http.MethodDelete, "/api/profiles/sniper", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[ProfilesResponse](t, resp)
	assert.Empty(t, list.Labels)
	assert.False(t, list.Enabled)
}

func TestProfiles_Errors(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/profiles", `{"label":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.do(t, http.MethodPut, "/api/profiles/selected", `{"label":"missing"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/profiles/load", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuickSlots(t *testing.T) {
	h := newHarness(t)

	for _, n := range []string{"0", "11", "x"} {
		resp := h.do(t, http.MethodPost, "/api/quickslots/"+n, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, n)
	}

	resp := h.do(t, http.MethodPost, "/api/quickslots/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = h.do(t, http.MethodPost, "/api/profiles", `{"label":"wide"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	h.edit(t, config.QuickSlotKey(1), "wide")
	h.edit(t, config.KeyCrossLength, "50")

	resp = h.do(t, http.MethodPost, "/api/quickslots/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "wide", decode[ProfilesResponse](t, resp).Selected)
	assert.Equal(t, "10", h.fields(t)[config.KeyCrossLength])

	resp = h.do(t, http.MethodGet, "/api/quickslots", "")
	slots := decode[[]profile.QuickSlot](t, resp)
	require.Len(t, slots, config.QuickSlotCount)
	assert.Equal(t, "wide", slots[0].Label)
	assert.Equal(t, "quickSlot10", slots[9].Key)
}

func TestReticle_SVG(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/reticle.svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `id="outerCircle" cx="100" cy="50" r="15"`)
	assert.NotContains(t, string(body), "animateTransform")
}

func TestReticle_SpinState(t *testing.T) {
	h := newHarness(t)
	h.edit(t, config.KeyCrossSpinPeriod, "1000")

	resp := h.do(t, http.MethodGet, "/api/reticle", "")
	state := decode[ReticleResponse](t, resp)
	assert.Equal(t, "spinning", state.State)
	assert.Equal(t, int64(1000), state.PeriodMS)

	h.edit(t, config.KeyCrossSpinPeriod, "0")
	resp = h.do(t, http.MethodGet, "/api/reticle", "")
	state = decode[ReticleResponse](t, resp)
	assert.Equal(t, "idle", state.State)
	assert.Zero(t, state.Rotation)
}

func TestViewport(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPut, "/api/viewport", `{"width":400,"height":300}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	state := decode[ReticleResponse](t, resp)
	assert.Equal(t, reticle.Size{Width: 400, Height: 300}, state.Viewport)
	assert.Equal(t, reticle.Point{X: 200, Y: 150}, state.Geometry.Center)

	resp = h.do(t, http.MethodPut, "/api/viewport", `{"width":0,"height":300}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWindow(t *testing.T) {
	h := newHarness(t)
	h.edit(t, config.KeyWindowOffsetX, "25")

	resp := h.do(t, http.MethodGet, "/api/window", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	win := decode[WindowResponse](t, resp)
	assert.Equal(t, "Reticle", win.Title)
	assert.Equal(t, 1920.0, win.Width)
	assert.Equal(t, 1080.0, win.Height)
	assert.Equal(t, 25, win.OffsetX)
	assert.True(t, win.Enabled)
	assert.Equal(t, 1.0, win.Opacity)
}

func TestEvents_StreamChanges(t *testing.T) {
	h := newHarness(t)

	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.DialContext(h.ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.hub.Clients(h.ctx) == 1 }, 2*time.Second, 10*time.Millisecond)

	h.edit(t, config.KeyCrossColor, "#123456")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var c model.Change
	for c.Key != config.KeyCrossColor {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, json.NewDecoder(bytes.NewReader(data)).Decode(&c))
	}
	assert.Equal(t, config.KeyCrossColor, c.Key)
	assert.Equal(t, "#123456", c.NewValue)
	assert.Equal(t, "#00ff00", c.OldValue)
	assert.Equal(t, h.store.Origin(), c.Origin)
}

func TestAlertLog_Limit(t *testing.T) {
	a := NewAlertLog(2)
	a.Alert("one")
	a.Alert("two")
	a.Alert("three")

	recent := a.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Message)
	assert.Equal(t, "three", recent[1].Message)
}

func TestEventHub_PublishWithoutClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewEventHub()
	go hub.Run(ctx)

	hub.Publish(model.Change{Key: "k", NewValue: "v"})
	assert.Zero(t, hub.Clients(ctx))

	cancel()
	assert.Eventually(t, func() bool { return hub.Clients(context.Background()) == 0 }, time.Second, 10*time.Millisecond)
}
