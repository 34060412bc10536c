package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	apperrors "github.com/rondreis/travel-office-backend/errors"
	"github.com/rondreis/travel-office-backend/logger"
	"github.com/rondreis/travel-office-backend/pkg/normalizer"
	"github.com/rondreis/travel-office-backend/pkg/pexels"
	"github.com/rondreis/travel-office-backend/pkg/travelcompositor"
	"github.com/rondreis/travel-office-backend/types"
	"go.uber.org/zap"
)

// BookingMetrics tracks normalization and cache behavior.
type BookingMetrics struct {
	normalizeDuration prometheus.Histogram
	documentsByShape  *prometheus.CounterVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
}

// Registered once; all BookingService instances share the same collectors.
var bookingMetrics = initBookingMetrics()

func initBookingMetrics() *BookingMetrics {
	return &BookingMetrics{
		normalizeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "traveloffice_normalize_duration_seconds",
			Help:    "Time taken to normalize one raw document",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		documentsByShape: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "traveloffice_documents_normalized_total",
			Help: "Total number of documents normalized",
		}, []string{"shape"}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "traveloffice_booking_cache_hits_total",
			Help: "Total number of booking cache hits",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "traveloffice_booking_cache_misses_total",
			Help: "Total number of booking cache misses",
		}),
	}
}

// BookingService fetches raw documents upstream, normalizes them, and caches
// the result in Redis keyed by booking id. The cache is opportunistic:
// read-then-write without locking, so two concurrent loads of the same id
// may both hit upstream. That duplicate fetch is benign and not corrected.
type BookingService struct {
	upstream   travelcompositor.ClientInterface
	normalizer *normalizer.Normalizer
	redis      *redis.Client
	images     pexels.ClientInterface
	metrics    *BookingMetrics
	cacheTTL   time.Duration
	keyPrefix  string
	log        *zap.SugaredLogger
}

// NewBookingService wires the booking pipeline. redisClient and images may be
// nil, disabling caching and image enrichment respectively. A cacheTTL of 0
// stores entries without expiry.
func NewBookingService(
	upstream travelcompositor.ClientInterface,
	n *normalizer.Normalizer,
	redisClient *redis.Client,
	images pexels.ClientInterface,
	cacheTTL time.Duration,
) *BookingService {
	return &BookingService{
		upstream:   upstream,
		normalizer: n,
		redis:      redisClient,
		images:     images,
		metrics:    bookingMetrics,
		cacheTTL:   cacheTTL,
		keyPrefix:  "booking:",
		log:        logger.GetLogger(),
	}
}

// GetBooking returns the normalized booking for an id, from cache when
// possible. Upstream misses map to BookingNotFound; transport failures map
// to UpstreamError.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*types.NormalizedBooking, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	doc, err := s.upstream.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, travelcompositor.ErrNotFound) {
			return nil, apperrors.BookingNotFound(id)
		}
		return nil, apperrors.UpstreamError("failed to fetch booking", err)
	}

	booking := s.normalize(doc)
	s.enrichImages(ctx, booking)
	s.cacheSet(ctx, id, booking)
	return booking, nil
}

// GetTravelIdea returns the normalized document for a travel idea. Ideas are
// not cached; agents edit them frequently and stale reads confuse quoting.
func (s *BookingService) GetTravelIdea(ctx context.Context, id string) (*types.NormalizedBooking, error) {
	doc, err := s.upstream.GetTravelIdea(ctx, id)
	if err != nil {
		if errors.Is(err, travelcompositor.ErrNotFound) {
			return nil, apperrors.BookingNotFound(id)
		}
		return nil, apperrors.UpstreamError("failed to fetch travel idea", err)
	}

	booking := s.normalize(doc)
	s.enrichImages(ctx, booking)
	return booking, nil
}

// Normalize runs the normalizer on a caller-supplied raw document. Used by
// the debugging endpoint; no upstream call, no caching.
func (s *BookingService) Normalize(doc types.RawDocument) *types.NormalizedBooking {
	return s.normalize(doc)
}

func (s *BookingService) normalize(doc types.RawDocument) *types.NormalizedBooking {
	start := time.Now()
	booking := s.normalizer.Normalize(doc)
	s.metrics.normalizeDuration.Observe(time.Since(start).Seconds())
	s.metrics.documentsByShape.WithLabelValues(string(booking.Shape)).Inc()
	s.log.Debugw("Normalized document",
		"id", booking.ID,
		"shape", booking.Shape,
		"client_email", logger.MaskEmail(booking.Client.Email),
	)
	return booking
}

// enrichImages backfills a single stock photo when the document yielded no
// images at all. Lookup failures are logged and ignored: enrichment never
// blocks a booking from rendering.
func (s *BookingService) enrichImages(ctx context.Context, booking *types.NormalizedBooking) {
	if s.images == nil || len(booking.Images) > 0 {
		return
	}

	query := pexels.BuildSearchQuery(booking)
	if query == "" {
		return
	}

	imageURL, err := s.images.SearchDestinationImage(ctx, query)
	if err != nil {
		s.log.Warnw("Destination image lookup failed", "query", query, "error", err)
		return
	}
	if imageURL != "" {
		booking.Images = append(booking.Images, imageURL)
	}
}

func (s *BookingService) cacheGet(ctx context.Context, id string) *types.NormalizedBooking {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.Get(ctx, s.keyPrefix+id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnw("Booking cache read failed", "id", id, "error", err)
		}
		s.metrics.cacheMisses.Inc()
		return nil
	}

	var booking types.NormalizedBooking
	if err := json.Unmarshal([]byte(raw), &booking); err != nil {
		s.log.Warnw("Booking cache entry corrupt, ignoring", "id", id, "error", err)
		s.metrics.cacheMisses.Inc()
		return nil
	}

	s.metrics.cacheHits.Inc()
	s.log.Debugw("Booking served from cache", "id", id)
	return &booking
}

func (s *BookingService) cacheSet(ctx context.Context, id string, booking *types.NormalizedBooking) {
	if s.redis == nil {
		return
	}

	payload, err := json.Marshal(booking)
	if err != nil {
		s.log.Warnw("Failed to serialize booking for cache", "id", id, "error", err)
		return
	}
	if err := s.redis.Set(ctx, s.keyPrefix+id, payload, s.cacheTTL).Err(); err != nil {
		s.log.Warnw("Booking cache write failed", "id", id, "error", err)
	}
}
