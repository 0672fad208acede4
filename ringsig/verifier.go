package ringsig

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/cryptosuite/lion/internal/xof"
	"github.com/cryptosuite/lion/params"
	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	resultValid     = "valid"
	resultInvalid   = "invalid"
	resultMalformed = "malformed"
)

// VerifierConfig configures a Verifier.
type VerifierConfig struct {
	// CacheSize is the number of verified signatures remembered. Zero disables the cache.
	CacheSize int
	// Workers bounds the goroutines used by batch verification. Zero or less means one per item.
	Workers int
	// Registerer receives the verifier metrics. Nil leaves them unregistered.
	Registerer prometheus.Registerer
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

func DefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{
		CacheSize: 4096,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Verifier verifies ring signatures for a long-running consumer such as a mempool, where the
// same signature is often checked more than once. Only successful verifications are cached,
// keyed by a KMAC over (message, ring, signature) under a key private to this Verifier.
// A Verifier is safe for concurrent use.
type Verifier struct {
	cache    *lru.Cache
	cacheKey []byte
	workers  int
	metrics  *verifierMetrics
	log      *zap.Logger
}

type verifierMetrics struct {
	verifications *prometheus.CounterVec
	cacheHits     prometheus.Counter
	duration      prometheus.Histogram
}

func newVerifierMetrics(reg prometheus.Registerer) (*verifierMetrics, error) {
	m := &verifierMetrics{
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lion",
			Subsystem: "ringsig",
			Name:      "verifications_total",
			Help:      "Number of ring signature verifications by result",
		}, []string{"result"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lion",
			Subsystem: "ringsig",
			Name:      "cache_hits_total",
			Help:      "Number of verifications answered from the cache",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lion",
			Subsystem: "ringsig",
			Name:      "verify_seconds",
			Help:      "Time spent on uncached verifications",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.verifications, m.cacheHits, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("NewVerifier: negative cache size %d", cfg.CacheSize)
	}
	m, err := newVerifierMetrics(cfg.Registerer)
	if err != nil {
		return nil, fmt.Errorf("NewVerifier: registering metrics: %w", err)
	}
	v := &Verifier{
		workers: cfg.Workers,
		metrics: m,
		log:     cfg.Logger,
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	if cfg.CacheSize > 0 {
		v.cache, err = lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("NewVerifier: %w", err)
		}
		v.cacheKey = make([]byte, 32)
		if _, err := rand.Read(v.cacheKey); err != nil {
			return nil, fmt.Errorf("NewVerifier: drawing cache key: %w", err)
		}
	}
	return v, nil
}

// Verify is Verify with caching, metrics and logging.
func (v *Verifier) Verify(message []byte, ring Ring, sig *Signature) error {
	key, cacheable := v.entryKey(message, ring, sig)
	if cacheable {
		if _, ok := v.cache.Get(key); ok {
			v.metrics.cacheHits.Inc()
			v.metrics.verifications.WithLabelValues(resultValid).Inc()
			return nil
		}
	}

	start := time.Now()
	err := Verify(message, ring, sig)
	v.metrics.duration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		v.metrics.verifications.WithLabelValues(resultValid).Inc()
		if cacheable {
			v.cache.Add(key, struct{}{})
		}
	case errors.Is(err, ErrVerificationFailed):
		v.metrics.verifications.WithLabelValues(resultInvalid).Inc()
		v.log.Debug("ring signature rejected", zap.Int("messageLen", len(message)))
	default:
		v.metrics.verifications.WithLabelValues(resultMalformed).Inc()
		v.log.Debug("malformed ring signature input", zap.Error(err))
	}
	return err
}

// VerifyBatch verifies items concurrently and returns one result per item, in item order.
func (v *Verifier) VerifyBatch(ctx context.Context, items []BatchItem) []BatchVerifyResult {
	results := make([]BatchVerifyResult, len(items))
	g, ctx := newGroup(ctx, v.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			results[i].Index = i
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Err = v.Verify(items[i].Message, items[i].Ring, items[i].Signature)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	v.log.Debug("verified batch", zap.Int("items", len(items)), zap.Int("failed", failed))
	return results
}

// VerifyBatchAll returns the first failure among items, cancelling the rest.
func (v *Verifier) VerifyBatchAll(ctx context.Context, items []BatchItem) error {
	g, ctx := newGroup(ctx, v.workers)
	for i := range items {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := v.Verify(items[i].Message, items[i].Ring, items[i].Signature); err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// entryKey returns the cache key of a verification, or false when the input cannot be
// cached: the cache is disabled, or the input is malformed or holds rounded members.
func (v *Verifier) entryKey(message []byte, ring Ring, sig *Signature) (string, bool) {
	if v.cache == nil || ringSize(ring) != params.RingSize {
		return "", false
	}
	sigBytes, err := sig.Bytes()
	if err != nil {
		return "", false
	}
	mac := xof.NewKMAC256(v.cacheKey, 32, []byte(params.DomainVerifyCache))
	mac.Write(xof.EncodeString(message))
	for i := 0; i < ring.Size(); i++ {
		pk, err := ring.Get(i)
		if err != nil || pk.Validate() != nil || pk.Rounded() {
			return "", false
		}
		mac.Write(pk.FullBytes())
	}
	mac.Write(sigBytes)
	return string(mac.Sum(nil)), true
}
