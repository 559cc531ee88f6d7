package riot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dendekky/gamelytics-ai/internal/ratelimit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *ratelimit.Limiter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	limiter := ratelimit.New(ratelimit.DefaultConfig())
	c := NewClient("test-key", 5*time.Second, limiter)
	c.SetBaseURL(srv.URL)
	return c, limiter
}

func TestClient_SuccessDecodesPayload(t *testing.T) {
	var gotToken string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Riot-Token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"puuid":"p-1","gameName":"Hide on bush","tagLine":"KR1"}`))
	})

	account, err := c.GetAccountByRiotID(context.Background(), "Hide on bush", "KR1", "kr")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "p-1", account.PUUID)
	assert.Equal(t, "Hide on bush", account.GameName)
	assert.Equal(t, "test-key", gotToken)
}

func TestClient_NotFoundIsAbsentNotError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	summoner, err := c.GetSummonerByPUUID(context.Background(), "unknown", "na1")
	require.NoError(t, err)
	assert.Nil(t, summoner)

	game, err := c.GetActiveGame(context.Background(), "unknown", "na1")
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestClient_ForbiddenIsAuthFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.GetSummonerByPUUID(context.Background(), "p-1", "na1")
	assert.ErrorIs(t, err, ErrAuthFailure)
}

func TestClient_TooManyRequestsFeedsLimiter(t *testing.T) {
	c, limiter := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetMatch(context.Background(), "NA1_1", "na1")
	assert.ErrorIs(t, err, ErrRateLimited)

	// The Retry-After header reached the limiter.
	status := limiter.GetStatus()
	assert.True(t, status.RetryAfterPending)
}

func TestClient_ServerErrorIsTransport(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetMatchIDs(context.Background(), "p-1", "na1", 5)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_MissingAPIKey(t *testing.T) {
	limiter := ratelimit.New(ratelimit.DefaultConfig())
	c := NewClient("", 5*time.Second, limiter)

	_, err := c.GetSummonerByPUUID(context.Background(), "p-1", "na1")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestClient_UnsupportedRegion(t *testing.T) {
	limiter := ratelimit.New(ratelimit.DefaultConfig())
	c := NewClient("key", 5*time.Second, limiter)

	_, err := c.GetSummonerByPUUID(context.Background(), "p-1", "mars1")
	assert.ErrorIs(t, err, ErrUnsupportedRegion)
}

func TestClient_MatchIDsEmptyOn404(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	ids, err := c.GetMatchIDs(context.Background(), "p-1", "na1", 20)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestClient_ChampionDataBypassesAuth(t *testing.T) {
	var sawToken bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "" {
			sawToken = true
		}
		w.Write([]byte(`{"data":{"Ashe":{"key":"22","name":"Ashe"}}}`))
	})

	list, err := c.GetChampionData(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Equal(t, "Ashe", list.Data["Ashe"].Name)
	assert.False(t, sawToken, "static data calls must not carry the API key")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimited))
	assert.True(t, IsRetryable(ErrTransport))
	assert.False(t, IsRetryable(ErrAuthFailure))
	assert.False(t, IsRetryable(nil))
}

func TestRegionResolution(t *testing.T) {
	base, err := regionalBaseURL("NA1")
	require.NoError(t, err)
	assert.Contains(t, base, "na1.api.riotgames.com")

	base, err = continentalBaseURL("euw1")
	require.NoError(t, err)
	assert.Contains(t, base, "europe.api.riotgames.com")

	_, err = regionalBaseURL("nope")
	assert.ErrorIs(t, err, ErrUnsupportedRegion)
}
