package usecase

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gamebites/backend/internal/domain"
	"github.com/gamebites/backend/internal/infrastructure/page"
	"github.com/gamebites/backend/internal/infrastructure/prefs"
)

// ScanServiceConfig holds configuration for the scan service.
type ScanServiceConfig struct {
	DebounceDelay time.Duration
}

// ScanService drives the equivalence pipeline: it owns the catalog snapshot,
// hands out page sessions, and annotates documents end to end.
type ScanService struct {
	catalogClient domain.CatalogClient
	rateClient    domain.RateClient
	store         domain.PreferenceStore
	config        ScanServiceConfig

	mutex   sync.Mutex
	catalog *domain.Catalog
}

// NewScanService creates a scan service with its dependencies.
func NewScanService(
	catalogClient domain.CatalogClient,
	rateClient domain.RateClient,
	store domain.PreferenceStore,
	config ScanServiceConfig,
) *ScanService {
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}
	return &ScanService{
		catalogClient: catalogClient,
		rateClient:    rateClient,
		store:         store,
		config:        config,
	}
}

// Init warms the catalog snapshot. A failure here means no badges can render
// until a later request succeeds.
func (s *ScanService) Init(ctx context.Context) error {
	_, err := s.ensureCatalog(ctx)
	return err
}

// Catalog returns the loaded catalog snapshot, fetching it on first use.
func (s *ScanService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	return s.ensureCatalog(ctx)
}

func (s *ScanService) ensureCatalog(ctx context.Context) (*domain.Catalog, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.catalog != nil {
		return s.catalog, nil
	}

	catalog, err := s.catalogClient.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog = catalog
	return catalog, nil
}

// NewSession builds a page session: current preferences, catalog snapshot,
// and a rate table (live or fallback). The catalog fetch is the only step
// that can fail; rate failures degrade silently inside the client.
func (s *ScanService) NewSession(ctx context.Context) (*Session, error) {
	catalog, err := s.ensureCatalog(ctx)
	if err != nil {
		return nil, err
	}

	settings := prefs.LoadSettings(ctx, s.store)
	rates := s.rateClient.FetchRates(ctx)

	return NewSession(settings, catalog, rates), nil
}

// Settings materializes the current preference snapshot.
func (s *ScanService) Settings(ctx context.Context) domain.Settings {
	return prefs.LoadSettings(ctx, s.store)
}

// BindSession subscribes a long-lived session to preference changes: any
// recognized key change reloads settings and forces a full re-scan of doc.
// The returned func unsubscribes.
func (s *ScanService) BindSession(ctx context.Context, session *Session, doc *page.Document) func() {
	return s.store.Watch(func(changes []domain.PreferenceChange) {
		if !prefs.AnyRecognized(changes) {
			return
		}
		session.UpdateSettings(prefs.LoadSettings(ctx, s.store))
		badges := session.Rescan(doc)
		log.Printf("[Scan] Preference change re-scan injected %d badges", len(badges))
	})
}

// NewWatcher wires a mutation watcher to a session and document: qualifying
// DOM insertions schedule a debounced scan pass.
func (s *ScanService) NewWatcher(session *Session, doc *page.Document) *Watcher {
	return NewWatcher(s.config.DebounceDelay, func() {
		badges := session.Scan(doc)
		if len(badges) > 0 {
			log.Printf("[Scan] Mutation re-scan injected %d badges", len(badges))
		}
	})
}

// AnnotateResult is the outcome of one full annotate pass.
type AnnotateResult struct {
	HTML   string  `json:"html"`
	Badges []Badge `json:"badges"`
}

// SupportedPage reports whether pageURL is a storefront app page. Only
// /app/* pages carry purchase blocks; anything else gets zero badges. An
// empty URL is treated as supported so raw fragments can be annotated.
func SupportedPage(pageURL string) bool {
	if pageURL == "" {
		return true
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, "/app/")
}

// Annotate parses rawHTML, runs one scan pass, and returns the annotated
// document plus the injected badges.
func (s *ScanService) Annotate(ctx context.Context, rawHTML, pageURL string) (*AnnotateResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, domain.ErrInvalidRequest
	}

	if !SupportedPage(pageURL) {
		log.Printf("[Scan] Unsupported page, skipping: %s", pageURL)
		return &AnnotateResult{HTML: rawHTML}, nil
	}

	session, err := s.NewSession(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := page.Parse(rawHTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	badges := session.Scan(doc)

	out, err := doc.Render()
	if err != nil {
		return nil, err
	}

	return &AnnotateResult{HTML: out, Badges: badges}, nil
}
