//go:build !lambda

package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/idlekit/enhance-backend/internal/enhance"
	"github.com/idlekit/enhance-backend/internal/market"
	"github.com/idlekit/enhance-backend/internal/profile"
)

type multiplierResp struct {
	Multiplier   float64   `json:"multiplier"`
	SuccessRates []float64 `json:"successRates"`
}

type errResp struct {
	Err string `json:"err"`
}

var (
	loader   *profile.Loader
	resolver profile.Resolver

	snapMu   sync.RWMutex
	snapshot *market.Snapshot
	snapPath string

	// calculate responses are cached briefly; market prices go stale anyway
	calcCache = gocache.New(2*time.Minute, 5*time.Minute)
	limiter   = rate.NewLimiter(rate.Limit(20), 40)
)

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseBool(r *http.Request, key string) (bool, bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Err: msg})
}

// throttle applies the shared limiter before every handler.
func throttle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeErr(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

// GET /multiplier?enhancing=&item=&tool=
func handleMultiplier(w http.ResponseWriter, r *http.Request) {
	enhancing, ok, msg := parseInt(r, "enhancing")
	if msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	if !ok {
		writeErr(w, http.StatusBadRequest, "missing param enhancing")
		return
	}
	item, ok, msg := parseInt(r, "item")
	if msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	if !ok {
		writeErr(w, http.StatusBadRequest, "missing param item")
		return
	}
	tool, _, msg := parseFloat(r, "tool")
	if msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}

	m := enhance.GetSuccessMultiplier(enhance.MultiplierParams{
		EnhancingLevel: enhancing,
		ItemLevel:      item,
		ToolBonus:      tool,
	})
	maxLevel, _, _ := parseInt(r, "max_level")
	writeJSON(w, http.StatusOK, multiplierResp{
		Multiplier:   m,
		SuccessRates: enhance.ApplyMultiplierToBaseRates(m, maxLevel),
	})
}

// GET /stats?target=&protect_from=&rates=0.5,0.45,...&blessed_tea=&guzzling=
func handleStats(w http.ResponseWriter, r *http.Request) {
	target, ok, msg := parseInt(r, "target")
	if msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	if !ok {
		writeErr(w, http.StatusBadRequest, "missing param target")
		return
	}
	protectFrom, _, msg := parseInt(r, "protect_from")
	if msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	guzzling, _, msg := parseFloat(r, "guzzling")
	if msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	tea, _ := parseBool(r, "blessed_tea")

	var rates []float64
	if s := r.URL.Query().Get("rates"); s != "" {
		for _, part := range strings.Split(s, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				writeErr(w, http.StatusBadRequest, "invalid rates")
				return
			}
			rates = append(rates, v)
		}
	} else {
		rates = enhance.ApplyMultiplierToBaseRates(1, 0)
	}

	stats, err := enhance.CalculateEnhancementStats(enhance.StatsParams{
		TargetLevel:   target,
		SuccessRates:  rates,
		ProtectFrom:   protectFrom,
		BlessedTea:    tea,
		GuzzlingBonus: guzzling,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, enhance.ErrSingularModel) {
			status = http.StatusInternalServerError
		}
		writeErr(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// POST /calculate with an enhance.Params JSON body.
func handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "cannot read body")
		return
	}

	sum := sha256.Sum256(body)
	key := hex.EncodeToString(sum[:])
	if cached, ok := calcCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	var params enhance.Params
	if err := json.Unmarshal(body, &params); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	res, err := enhance.Calculate(params)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, enhance.ErrSingularModel) {
			status = http.StatusInternalServerError
		}
		writeErr(w, status, err.Error())
		return
	}
	calcCache.SetDefault(key, res)
	writeJSON(w, http.StatusOK, res)
}

// GET /profile?game=&item= plus optional override params; returns the merged
// profile and the normalized engine params it resolves to.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		writeErr(w, http.StatusBadRequest, "missing param game")
		return
	}
	item := r.URL.Query().Get("item")

	var o profile.Overrides
	if v, ok, msg := parseInt(r, "target"); msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	} else if ok {
		o.TargetLevel = &v
	}
	if v, ok, msg := parseFloat(r, "tool"); msg != "" {
		writeErr(w, http.StatusBadRequest, msg)
		return
	} else if ok {
		o.ToolBonus = &v
	}
	if v, ok := parseBool(r, "blessed_tea"); ok {
		o.BlessedTea = &v
	}

	cfg, ep, err := resolver.Resolve(game, item, o)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":      cfg.Version,
		"multiplier":   ep.Multiplier,
		"successRates": ep.SuccessRates,
		"params":       ep.EnhanceParams(),
	})
}

// GET /quote?item=&protection=&mirror=&materials=Name:count,Name:count
func handleQuote(w http.ResponseWriter, r *http.Request) {
	snapMu.RLock()
	snap := snapshot
	snapMu.RUnlock()
	if snap == nil {
		writeErr(w, http.StatusServiceUnavailable, "no market snapshot loaded")
		return
	}
	if snap.Stale(time.Hour, time.Now()) {
		writeErr(w, http.StatusServiceUnavailable, "market snapshot is stale")
		return
	}

	spec := market.ItemSpec{
		Item:       r.URL.Query().Get("item"),
		Protection: r.URL.Query().Get("protection"),
		Mirror:     r.URL.Query().Get("mirror"),
	}
	if spec.Item == "" {
		writeErr(w, http.StatusBadRequest, "missing param item")
		return
	}
	if s := r.URL.Query().Get("materials"); s != "" {
		for _, part := range strings.Split(s, ",") {
			name, countStr, found := strings.Cut(part, ":")
			count := 1.0
			if found {
				v, err := strconv.ParseFloat(countStr, 64)
				if err != nil || v <= 0 {
					writeErr(w, http.StatusBadRequest, "invalid materials")
					return
				}
				count = v
			}
			spec.Materials = append(spec.Materials, market.MaterialLine{Name: name, Count: count})
		}
	}

	quote, err := market.BuildQuote(snap, spec)
	if err != nil {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func loadSnapshot(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("read market snapshot %s: %v", path, err)
		return
	}
	s, err := market.ParseSnapshot(b)
	if err != nil {
		log.Printf("parse market snapshot %s: %v", path, err)
		return
	}
	snapMu.Lock()
	snapshot = s
	snapMu.Unlock()
	log.Printf("market snapshot loaded: %d listings (fetched %s)", len(s.Listings), s.FetchedAt.Format(time.RFC3339))
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	configDir := flag.String("config", "./config", "profile config base directory")
	snapFlag := flag.String("snapshot", "", "path to a marketplace JSON snapshot (optional)")
	game := flag.String("game", "default", "game profile watched for hot reload")
	watchEvery := flag.Duration("watch", 30*time.Second, "config poll interval")
	flag.Parse()

	loader = profile.NewLoader(*configDir)
	resolver = profile.LoaderResolver{Loader: loader}

	watchPaths := loader.WatchPaths(*game, "")
	if *snapFlag != "" {
		snapPath = *snapFlag
		loadSnapshot(snapPath)
		watchPaths = append(watchPaths, snapPath)
	}
	watcher := profile.NewFileWatcher(watchPaths, *watchEvery, func(path string) {
		log.Printf("config changed: %s", path)
		if path == snapPath {
			loadSnapshot(snapPath)
			return
		}
		loader.Invalidate()
	})
	watcher.Start()
	defer watcher.Stop()

	http.HandleFunc("/multiplier", throttle(handleMultiplier))
	http.HandleFunc("/stats", throttle(handleStats))
	http.HandleFunc("/calculate", throttle(handleCalculate))
	http.HandleFunc("/profile", throttle(handleProfile))
	http.HandleFunc("/quote", throttle(handleQuote))

	log.Println("listening on " + *addr + " ...")
	log.Fatal(http.ListenAndServe(*addr, nil))
}
