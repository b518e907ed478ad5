package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/fez-github/Doom-Mod-Records/internal/config"

	"github.com/redis/go-redis/v9"
)

// ArchiveService proxies search queries to the idgames archive API. The
// response body is relayed to the caller unmodified. Responses are
// cached in redis for a short TTL when redis is reachable; a missing or
// down redis only disables the cache.
type ArchiveService struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewArchiveService(cfg config.Config, logger *slog.Logger, rdb *redis.Client) *ArchiveService {
	timeout := time.Duration(cfg.ArchiveTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ArchiveService{
		cfg:      cfg,
		logger:   logger,
		client:   &http.Client{Timeout: timeout},
		rdb:      rdb,
		cacheTTL: time.Duration(cfg.SearchCacheTTLSeconds) * time.Second,
	}
}

// Search forwards the query parameters verbatim to the archive's search
// endpoint and returns the raw JSON body. No retries.
func (s *ArchiveService) Search(ctx context.Context, query, searchType, sort, dir string) ([]byte, error) {
	params := url.Values{}
	params.Set("action", "search")
	params.Set("query", query)
	params.Set("type", searchType)
	params.Set("sort", sort)
	params.Set("dir", dir)
	params.Set("out", "json")

	requestURL := s.cfg.ArchiveAPIURL + "?" + params.Encode()

	if cached := s.cacheGet(ctx, requestURL); cached != nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: archive returned status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	s.cacheSet(ctx, requestURL, body)

	return body, nil
}

func (s *ArchiveService) cacheGet(ctx context.Context, key string) []byte {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return nil
	}
	val, err := s.rdb.Get(ctx, "search:"+key).Bytes()
	if err != nil {
		return nil
	}
	return val
}

func (s *ArchiveService) cacheSet(ctx context.Context, key string, body []byte) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.rdb.Set(ctx, "search:"+key, body, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("Search cache write failed", "error", err)
	}
}
