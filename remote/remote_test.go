package remote

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/peragwin/linevis/visual"
)

type stateResponse struct {
	Data struct {
		State struct {
			Columns    int    `json:"columns"`
			Brush      int    `json:"brush"`
			Color      string `json:"color"`
			Evens      bool   `json:"evens"`
			Odds       bool   `json:"odds"`
			Fullscreen bool   `json:"fullscreen"`
		} `json:"state"`
	} `json:"data"`
}

const stateQuery = `{ state { columns brush color evens odds fullscreen } }`

func newController(t *testing.T, keys chan visual.Key) *Controller {
	c, err := NewController(keys, *visual.NewState(1))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func decode(t *testing.T, v interface{}, out interface{}) {
	bs, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(bs, out); err != nil {
		t.Fatal(err)
	}
}

func TestQueryState(t *testing.T) {
	c := newController(t, make(chan visual.Key, 1))

	res := c.Query(stateQuery, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	var data stateResponse
	decode(t, res, &data)
	st := data.Data.State
	if st.Columns != 1 || st.Brush != 0 || !st.Evens || !st.Odds || st.Fullscreen {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Color != "#ffffff" {
		t.Fatal("expected a white brush, got", st.Color)
	}

	s := visual.NewState(7)
	s.HandleKey('E')
	s.HandleKey('O')
	c.Publish(s.Snapshot())

	res = c.Query(stateQuery, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	decode(t, res, &data)
	st = data.Data.State
	if st.Columns != 7 || st.Brush != 2 || !st.Evens || st.Odds {
		t.Fatalf("expected the published state, got %+v", st)
	}
	if st.Color != "#00f000" {
		t.Fatal("expected a green brush, got", st.Color)
	}
}

func TestPressMutation(t *testing.T) {
	keys := make(chan visual.Key, 1)
	c := newController(t, keys)

	res := c.Query(`mutation { press(key: "q") }`, nil)
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	if k := <-keys; k != 'Q' {
		t.Fatal("expected Q to be queued, got", k)
	}

	res = c.Query(`mutation Press($key: String!) { press(key: $key) }`,
		map[string]interface{}{"key": "esc"})
	if len(res.Errors) > 0 {
		t.Fatal(res.Errors)
	}
	if k := <-keys; k != visual.KeyEscape {
		t.Fatal("expected Escape to be queued, got", k)
	}

	// the queue holds one press
	c.Query(`mutation { press(key: "1") }`, nil)
	res = c.Query(`mutation { press(key: "2") }`, nil)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error when the queue is full")
	}

	res = c.Query(`mutation { press(key: "nope") }`, nil)
	if len(res.Errors) == 0 {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestHandler(t *testing.T) {
	keys := make(chan visual.Key, 1)
	srv := httptest.NewServer(newController(t, keys).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/graphql?query=" + url.QueryEscape(stateQuery))
	if err != nil {
		t.Fatal(err)
	}
	var data stateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if data.Data.State.Columns != 1 {
		t.Fatalf("unexpected response %+v", data)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query":     `mutation Press($key: String!) { press(key: $key) }`,
		"variables": map[string]interface{}{"key": "0"},
	})
	resp, err = http.Post(srv.URL+"/api/v2/graphql", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatal("unexpected status", resp.Status)
	}
	if k := <-keys; k != '0' {
		t.Fatal("expected 0 to be queued, got", k)
	}

	resp, err = http.Post(srv.URL+"/api/v2/graphql", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatal("expected a bad request for malformed json, got", resp.Status)
	}
}
