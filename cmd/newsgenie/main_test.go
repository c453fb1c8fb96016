package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/newsgenie"
	main "github.com/fwojciec/newsgenie/cmd/newsgenie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires a command", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("prints help", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "summarize")
	})

	t.Run("refuses the browser fetcher for serve without allow-private", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), []string{"serve", "--browser", "--addr", "127.0.0.1:0"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, newsgenie.EINVALID, newsgenie.ErrorCode(err))
		assert.Contains(t, newsgenie.ErrorMessage(err), "--allow-private")
		assert.Nil(t, m.Fetcher)
	})

	t.Run("extracts an article end to end", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("The council approved the budget after a long debate. ", 6)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><nav>Home</nav><div class="story-body"><p>` + body + `</p></div></body></html>`))
		}))
		defer srv.Close()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"extract", srv.URL + "/story"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "== "+srv.URL+"/story")
		assert.Contains(t, stdout.String(), strings.TrimSpace(body))
		assert.NotContains(t, stdout.String(), "Home")
	})
}

func TestResolveProvider(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name, provider, openaiKey, geminiKey string
		want                                 string
		wantCode                             string
	}{
		{name: "auto prefers openai", provider: "auto", openaiKey: "o", geminiKey: "g", want: "openai"},
		{name: "auto falls back to gemini", provider: "auto", geminiKey: "g", want: "gemini"},
		{name: "auto without keys", provider: "auto", want: ""},
		{name: "explicit gemini", provider: "gemini", openaiKey: "o", geminiKey: "g", want: "gemini"},
		{name: "explicit openai without key", provider: "openai", geminiKey: "g", wantCode: newsgenie.EINVALID},
		{name: "unknown provider", provider: "claude", wantCode: newsgenie.EINVALID},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := main.ResolveProvider(tc.provider, tc.openaiKey, tc.geminiKey)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, newsgenie.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHeuristic(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"readability", "trafilatura"} {
		h, err := main.NewHeuristic(name)
		require.NoError(t, err)
		assert.Equal(t, name, h.Name())
	}

	_, err := main.NewHeuristic("boilerpipe")
	assert.Equal(t, newsgenie.EINVALID, newsgenie.ErrorCode(err))
}
