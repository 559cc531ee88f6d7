package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"

	"github.com/Dendekky/gamelytics-ai/internal/ratelimit"
)

// dataDragonBase serves unauthenticated static champion data.
const dataDragonBase = "https://ddragon.leagueoflegends.com"

// dataDragonVersion pins the static data release in use.
const dataDragonVersion = "14.23.1"

// Client is the single choke point for every outbound Riot call. All
// authenticated requests pass through the rate limiter before transport
// and feed the response status back into it afterwards.
type Client struct {
	apiKey     string
	httpClient *http.Client
	limiter    *ratelimit.Limiter

	// baseOverride redirects all hosts to one base URL; used by tests.
	baseOverride string
}

// NewClient creates a gateway client.
func NewClient(apiKey string, timeout time.Duration, limiter *ratelimit.Limiter) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// SetBaseURL redirects every request to base. Test hook.
func (c *Client) SetBaseURL(base string) {
	c.baseOverride = base
}

// get performs one rate limited GET and classifies the outcome. It
// returns (false, nil) for 404, and decodes the payload into out on 200.
func (c *Client) get(ctx context.Context, rawURL, endpoint string, out any) (bool, error) {
	if c.apiKey == "" {
		return false, ErrMissingAPIKey
	}

	if err := c.limiter.Acquire(ctx, endpoint); err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		c.limiter.HandleResponse(resp.StatusCode, 0)
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("%w: decoding %s: %v", ErrTransport, endpoint, err)
		}
		return true, nil

	case http.StatusNotFound:
		c.limiter.HandleResponse(resp.StatusCode, 0)
		return false, nil

	case http.StatusForbidden:
		c.limiter.HandleResponse(resp.StatusCode, 0)
		return false, ErrAuthFailure

	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header)
		c.limiter.HandleResponse(resp.StatusCode, retryAfter)
		return false, ErrRateLimited

	default:
		c.limiter.HandleResponse(resp.StatusCode, 0)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logx.Error("Unexpected status %d from %s: %s", resp.StatusCode, endpoint, body)
		return false, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
}

// parseRetryAfter reads a Retry-After header expressed in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func (c *Client) base(resolved string) string {
	if c.baseOverride != "" {
		return c.baseOverride
	}
	return resolved
}

// GetAccountByRiotID looks up an account by gameName#tagLine on the
// continental account-v1 endpoint. Returns nil when not found.
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine, region string) (*Account, error) {
	base, err := continentalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.base(base), url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	found, err := c.get(ctx, u, "account-by-riot-id", &account)
	if err != nil || !found {
		return nil, err
	}
	return &account, nil
}

// GetSummonerByPUUID looks up a summoner on the regional summoner-v4
// endpoint. Returns nil when not found.
func (c *Client) GetSummonerByPUUID(ctx context.Context, puuid, region string) (*Summoner, error) {
	base, err := regionalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.base(base), url.PathEscape(puuid))

	var summoner Summoner
	found, err := c.get(ctx, u, "summoner-by-puuid", &summoner)
	if err != nil || !found {
		return nil, err
	}
	return &summoner, nil
}

// GetMatchIDs returns up to count recent match ids for a player.
// An empty list is returned when the player has no matches.
func (c *Client) GetMatchIDs(ctx context.Context, puuid, region string, count int) ([]string, error) {
	base, err := continentalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d",
		c.base(base), url.PathEscape(puuid), count)

	var ids []string
	found, err := c.get(ctx, u, "match-ids", &ids)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}
	return ids, nil
}

// GetMatch fetches one match detail. Returns nil when not found.
func (c *Client) GetMatch(ctx context.Context, matchID, region string) (*Match, error) {
	base, err := continentalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.base(base), url.PathEscape(matchID))

	var match Match
	found, err := c.get(ctx, u, "match-detail", &match)
	if err != nil || !found {
		return nil, err
	}
	return &match, nil
}

// GetChampionMasteries returns all mastery entries for a player.
func (c *Client) GetChampionMasteries(ctx context.Context, puuid, region string) ([]ChampionMastery, error) {
	base, err := regionalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s",
		c.base(base), url.PathEscape(puuid))

	var masteries []ChampionMastery
	found, err := c.get(ctx, u, "champion-masteries", &masteries)
	if err != nil {
		return nil, err
	}
	if !found {
		return []ChampionMastery{}, nil
	}
	return masteries, nil
}

// GetActiveGame checks whether a player is in a live game via
// spectator-v5. Returns nil when the player is not in game.
func (c *Client) GetActiveGame(ctx context.Context, puuid, region string) (*CurrentGame, error) {
	base, err := regionalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s",
		c.base(base), url.PathEscape(puuid))

	var game CurrentGame
	found, err := c.get(ctx, u, "active-game", &game)
	if err != nil || !found {
		return nil, err
	}
	return &game, nil
}

// GetFeaturedGames returns the current featured game list for a region.
func (c *Client) GetFeaturedGames(ctx context.Context, region string) (*FeaturedGames, error) {
	base, err := regionalBaseURL(region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lol/spectator/v5/featured-games", c.base(base))

	var games FeaturedGames
	found, err := c.get(ctx, u, "featured-games", &games)
	if err != nil || !found {
		return nil, err
	}
	return &games, nil
}

// GetChampionData fetches the static champion catalog from Data
// Dragon. The endpoint is unauthenticated and not subject to the API
// rate limits, so it bypasses the limiter.
func (c *Client) GetChampionData(ctx context.Context) (*ChampionList, error) {
	u := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.base(dataDragonBase), dataDragonVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: champion data status %d", ErrTransport, resp.StatusCode)
	}

	var list ChampionList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decoding champion data: %v", ErrTransport, err)
	}
	return &list, nil
}

// IsRetryable reports whether a caller may usefully retry the call.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransport)
}
