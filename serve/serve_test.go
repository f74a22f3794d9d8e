package serve

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/midbel/bars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChart(t *testing.T) bars.Chart {
	t.Helper()
	cfg, err := bars.NewBuilder().
		X("cat").
		Y("val").
		Fill("val").
		Quantiles(bars.QuantileConfig{
			Buckets:       2,
			Colors:        []string{"#000001", "#000002"},
			ColorsOnHover: []string{"#ff0001", "#ff0002"},
		}).
		Build()
	require.NoError(t, err)

	layer := bars.New(cfg)
	layer.Data([]bars.Record{
		{"cat": "A", "val": 5},
		{"cat": "B", "val": -3},
	})
	return bars.Chart{
		Width:   200,
		Height:  100,
		Padding: bars.Padding{Top: 10, Right: 10, Bottom: 20, Left: 20},
		Layer:   layer,
	}
}

func setup(t *testing.T) (*Server, string, *httptest.Server) {
	t.Helper()
	s := New(log.New(io.Discard))
	id, err := s.Add("sample", sampleChart(t))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return s, id, srv
}

func TestList(t *testing.T) {
	_, id, srv := setup(t)

	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var list []Info
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, Info{ID: id, Name: "sample", URL: "/charts/" + id}, list[0])
}

func TestChart(t *testing.T) {
	_, id, srv := setup(t)

	res, err := http.Get(srv.URL + "/charts/" + id)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "image/svg+xml", res.Header.Get("Content-Type"))

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"/charts/`+id+`"`)
	assert.Equal(t, 2, strings.Count(string(body), `class="bar"`))

	res, err = http.Get(srv.URL + "/charts/" + uuid.NewString())
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func post(t *testing.T, url string) (*http.Response, MarkState) {
	t.Helper()
	res, err := http.Post(url, "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	var state MarkState
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&state))
	}
	return res, state
}

func TestEvents(t *testing.T) {
	s, id, srv := setup(t)
	base := srv.URL + "/charts/" + id + "/marks/"

	res, state := post(t, base+"0/mouseover")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "bars-0", state.Mark)
	assert.Equal(t, "#ff0002", state.Fill)
	assert.True(t, state.Visible)
	assert.Contains(t, state.Tooltip, "<span>A</span>")

	var buf strings.Builder
	require.NoError(t, s.Write(&buf, id))
	assert.Contains(t, buf.String(), `fill="#ff0002"`, "hovered state is kept")

	res, state = post(t, base+"0/mouseout")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "#000002", state.Fill)
	assert.False(t, state.Visible)

	res, state = post(t, base+"1/click")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "bars-1", state.Mark)

	res, _ = post(t, base+"9/click")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res, _ = post(t, base+"x/click")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res, _ = post(t, base+"0/dblclick")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res, _ = post(t, srv.URL+"/charts/unknown/marks/0/click")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDispatch(t *testing.T) {
	s := New(nil)
	_, err := s.Dispatch("none", 0, EventClick)
	assert.ErrorIs(t, err, ErrChart)

	_, err = s.Add("empty", bars.Chart{})
	assert.ErrorIs(t, err, bars.ErrNoData)
	assert.Empty(t, s.List())
}
