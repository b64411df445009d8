// ABOUTME: Load tests for the /api/search endpoint
// ABOUTME: Drives the full stack against a fake upstream under concurrent load

package loadtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"repo-search-api/api"
	"repo-search-api/api/handlers"
	"repo-search-api/core/interfaces"
	"repo-search-api/core/search"
	"repo-search-api/infrastructure/cache/memory"
	"repo-search-api/infrastructure/github"
)

// fakeUpstream answers repository searches with total repositories, newest first
type fakeUpstream struct {
	total int
	delay time.Duration
	calls int64
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if page < 1 {
		page = 1
	}

	items := make([]map[string]interface{}, 0, perPage)
	for i := (page - 1) * perPage; i < page*perPage && i < f.total; i++ {
		items = append(items, map[string]interface{}{
			"id":               i + 1,
			"name":             fmt.Sprintf("repo-%d", i),
			"html_url":         fmt.Sprintf("https://github.com/load/repo-%d", i),
			"stargazers_count": (i * 37) % 1000,
			"forks_count":      (i * 11) % 300,
			"language":         "Go",
			"created_at":       "2020-01-01T00:00:00Z",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"total_count":        f.total,
		"incomplete_results": false,
		"items":              items,
	})
}

func newServer(t *testing.T, upstream *fakeUpstream, cache interfaces.Cache) *httptest.Server {
	t.Helper()
	upstreamServer := httptest.NewServer(upstream)
	t.Cleanup(upstreamServer.Close)

	cfg := github.DefaultConfig()
	cfg.BaseURL = upstreamServer.URL
	client, err := github.NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("creating upstream client: %v", err)
	}

	opts := search.DefaultOptions()
	opts.PacingInterval = time.Millisecond
	if cache == nil {
		opts.CacheTTL = 0
	}
	service := search.NewSearchService(interfaces.Dependencies{Upstream: client, Cache: cache}, search.WithOptions(opts))

	apiInstance, router := api.NewAPI()
	handlers.NewSearchHandler(service, nil).RegisterRoutes(apiInstance)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// LoadTestMetrics tracks performance metrics
type LoadTestMetrics struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AvgLatency     time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration
	RequestsPerSec float64
}

func TestSearchEndpoint_50ConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("load test")
	}

	upstream := &fakeUpstream{total: 450, delay: 2 * time.Millisecond}
	server := newServer(t, upstream, nil)

	concurrency := 50
	requestsPerWorker := 4
	totalRequests := concurrency * requestsPerWorker

	var (
		successCount int64
		failCount    int64
		latencies    []time.Duration
		mu           sync.Mutex
	)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	startTime := time.Now()

	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()

			client := &http.Client{Timeout: 30 * time.Second}

			for j := 0; j < requestsPerWorker; j++ {
				url := fmt.Sprintf("%s/api/search?keywords=load%d&maxPages=5", server.URL, workerID)

				reqStart := time.Now()
				resp, err := client.Get(url)
				latency := time.Since(reqStart)

				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()

				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				var repos []map[string]interface{}
				decodeErr := json.NewDecoder(resp.Body).Decode(&repos)
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()

				// 450 upstream results plan 5 pages: 450 ranked repositories
				if resp.StatusCode == http.StatusOK && decodeErr == nil && len(repos) == 450 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
			}
		}(i)
	}

	wg.Wait()
	totalDuration := time.Since(startTime)

	metrics := calculateMetrics(latencies, totalDuration, totalRequests)
	metrics.SuccessfulReqs = successCount
	metrics.FailedReqs = failCount

	t.Logf("Load Test Results - 50 Concurrent Searches")
	t.Logf("==========================================")
	t.Logf("Total Requests: %d", metrics.TotalRequests)
	t.Logf("Successful: %d", metrics.SuccessfulReqs)
	t.Logf("Failed: %d", metrics.FailedReqs)
	t.Logf("Upstream Calls: %d", atomic.LoadInt64(&upstream.calls))
	t.Logf("Total Duration: %v", metrics.TotalDuration)
	t.Logf("Requests/sec: %.2f", metrics.RequestsPerSec)
	t.Logf("Avg Latency: %v", metrics.AvgLatency)
	t.Logf("P95 Latency: %v", metrics.P95Latency)
	t.Logf("P99 Latency: %v", metrics.P99Latency)

	if metrics.FailedReqs > 0 {
		t.Errorf("Had %d failed requests", metrics.FailedReqs)
	}

	// 3 normalization probes plus 5 pages per search
	if calls := atomic.LoadInt64(&upstream.calls); calls != int64(totalRequests*8) {
		t.Errorf("upstream calls = %d, want %d", calls, totalRequests*8)
	}

	if metrics.P95Latency > 5*time.Second {
		t.Errorf("P95 latency too high: %v", metrics.P95Latency)
	}
}

func TestSearchEndpoint_CacheAbsorbsRepeatedSearches(t *testing.T) {
	if testing.Short() {
		t.Skip("load test")
	}

	upstream := &fakeUpstream{total: 120}
	server := newServer(t, upstream, memory.NewMemoryCache())

	// warm the cache
	resp, err := http.Get(server.URL + "/api/search?keywords=cached&maxPages=2")
	if err != nil {
		t.Fatalf("warm-up request: %v", err)
	}
	resp.Body.Close()
	warm := atomic.LoadInt64(&upstream.calls)

	var wg sync.WaitGroup
	var failures int64
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(server.URL + "/api/search?keywords=Cached&maxPages=2")
			if err != nil || resp.StatusCode != http.StatusOK {
				atomic.AddInt64(&failures, 1)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()

	if failures > 0 {
		t.Errorf("Had %d failed requests", failures)
	}
	if calls := atomic.LoadInt64(&upstream.calls); calls != warm {
		t.Errorf("cached searches reached upstream: %d calls after warm-up, want %d", calls, warm)
	}
}

// calculateMetrics computes performance metrics from latency data
func calculateMetrics(latencies []time.Duration, totalDuration time.Duration, totalRequests int) LoadTestMetrics {
	if len(latencies) == 0 {
		return LoadTestMetrics{}
	}

	sortedLatencies := make([]time.Duration, len(latencies))
	copy(sortedLatencies, latencies)
	sort.Slice(sortedLatencies, func(i, j int) bool { return sortedLatencies[i] < sortedLatencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	p95Index := int(float64(len(sortedLatencies)) * 0.95)
	p99Index := int(float64(len(sortedLatencies)) * 0.99)
	if p99Index >= len(sortedLatencies) {
		p99Index = len(sortedLatencies) - 1
	}
	if p95Index >= len(sortedLatencies) {
		p95Index = len(sortedLatencies) - 1
	}

	return LoadTestMetrics{
		TotalRequests:  int64(totalRequests),
		TotalDuration:  totalDuration,
		MinLatency:     sortedLatencies[0],
		MaxLatency:     sortedLatencies[len(sortedLatencies)-1],
		AvgLatency:     sum / time.Duration(len(latencies)),
		P95Latency:     sortedLatencies[p95Index],
		P99Latency:     sortedLatencies[p99Index],
		RequestsPerSec: float64(totalRequests) / totalDuration.Seconds(),
	}
}
