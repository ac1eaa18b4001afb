// workers/athlete_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"run-tracker/logger"
	"run-tracker/models"
	"run-tracker/store"
	"run-tracker/utils"
)

// RemoteAthlete matches one entry of the identity service's change feed.
type RemoteAthlete struct {
	ExternalID  string    `json:"external_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetAthleteChangesResponse is the top-level structure of the feed response.
type GetAthleteChangesResponse struct {
	Users []RemoteAthlete `json:"users"`
}

// AthleteSyncWorker mirrors athletes from the identity service into the
// local athletes table. Coaches are the identity service's staff users.
type AthleteSyncWorker struct {
	store        *store.Store
	interval     time.Duration
	baseURL      string // e.g., "http://localhost:8500"
	endpointPath string // e.g., "/api/v1/public/profiles"
	serviceToken string
	httpClient   *http.Client

	lastSync time.Time
	done     chan struct{}
}

func NewAthleteSyncWorker(st *store.Store, baseURL, endpointPath, serviceToken string, interval time.Duration) *AthleteSyncWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AthleteSyncWorker{
		store:        st,
		interval:     interval,
		baseURL:      baseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
		done:         make(chan struct{}),
	}
}

// Start runs the worker in the background until ctx is cancelled.
func (w *AthleteSyncWorker) Start(ctx context.Context) {
	logger.Info.Println("🔁 Starting Athlete Sync Worker (identity → athletes)…")
	go w.run(ctx)
}

// Done is closed once the worker has stopped.
func (w *AthleteSyncWorker) Done() <-chan struct{} {
	return w.done
}

func (w *AthleteSyncWorker) run(ctx context.Context) {
	defer close(w.done)

	// Initial sync backfills everything
	if err := w.SyncOnce(ctx); err != nil {
		logger.Warn.Printf("⚠️ Initial athlete sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.SyncOnce(ctx); err != nil {
				logger.Error.Printf("❌ Athlete sync batch failed: %v", err)
			}
		case <-ctx.Done():
			logger.Info.Println("⏹️ Athlete Sync Worker stopped")
			return
		}
	}
}

// SyncOnce pulls changes since the last successful sync and upserts them.
func (w *AthleteSyncWorker) SyncOnce(ctx context.Context) error {
	since := w.lastSync
	users, err := w.fetch(ctx, since)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		logger.Debug.Printf("[SYNC] ✅ No athlete changes since %s", since.UTC().Format(time.RFC3339))
		return nil
	}

	athletes := make([]models.Athlete, 0, len(users))
	latest := since
	for _, u := range users {
		if u.ExternalID == "" {
			logger.Warn.Printf("[SYNC] ⚠️ Skipping athlete %q without external_id", u.Username)
			continue
		}
		externalID := u.ExternalID
		athletes = append(athletes, models.Athlete{
			ExternalID:  &externalID,
			Username:    u.Username,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			IsCoach:     u.IsStaff,
			IsSuperuser: u.IsSuperuser,
		})
		if u.UpdatedAt.After(latest) {
			latest = u.UpdatedAt
		}
	}

	if err := w.store.UpsertAthletes(ctx, athletes); err != nil {
		// Keep lastSync so the same window is retried next tick
		return fmt.Errorf("failed to upsert %d athlete(s): %w", len(athletes), err)
	}
	w.lastSync = latest
	logger.Info.Printf("[SYNC] ✅ Synced %d athlete(s), latest update %s", len(athletes), latest.UTC().Format(time.RFC3339))
	return nil
}

func (w *AthleteSyncWorker) fetch(ctx context.Context, since time.Time) ([]RemoteAthlete, error) {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity service URL '%s': %w", w.baseURL, err)
	}
	endpointURL := base.JoinPath(w.endpointPath)
	q := endpointURL.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	endpointURL.RawQuery = q.Encode()
	finalURL := endpointURL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", finalURL, err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request to identity service failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("identity service returned %d: %s", resp.StatusCode, string(body))
	}

	var response GetAthleteChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode identity service response: %w", err)
	}
	return response.Users, nil
}
