package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"study-guild-system/models"
	"study-guild-system/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileFromGateway matches the JSON the gateway's profile service
// returns for changed accounts.
type profileFromGateway struct {
	OpenID      string    `json:"open_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	LoginMethod string    `json:"login_method"`
	Role        string    `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type profileChangesResponse struct {
	Users []profileFromGateway `json:"users"`
}

// UserSyncWorker mirrors gateway identities into the local users table
// so that foreign keys (memberships, enrollments, rewards) always have
// a user row to point at, even before the user's first request reaches
// this service.
type UserSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string
	endpointPath string
	serviceToken string
	httpClient   *http.Client
}

func NewUserSyncWorker(db *gorm.DB, gatewayBaseURL, endpointPath, serviceToken string) *UserSyncWorker {
	return &UserSyncWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      gatewayBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
	}
}

func (w *UserSyncWorker) Start(ctx context.Context) {
	log.Println("Starting user sync worker...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("User sync worker stopped.")
			return
		case <-ticker.C:
			tickTime := time.Now().UTC()

			profiles, err := w.fetchChangedProfiles(ctx, lastSyncTime)
			if err != nil {
				log.Printf("[UserSync] Poll failed: %v", err)
				continue
			}
			if len(profiles) == 0 {
				continue
			}

			if err := w.upsertProfiles(profiles); err != nil {
				log.Printf("[UserSync] Upsert of %d profile(s) failed: %v", len(profiles), err)
				// Do not advance lastSyncTime; retry the same window.
				continue
			}

			lastSyncTime = tickTime
			log.Printf("[UserSync] Mirrored %d profile(s)", len(profiles))
		}
	}
}

func (w *UserSyncWorker) fetchChangedProfiles(ctx context.Context, since time.Time) ([]profileFromGateway, error) {
	endpoint := fmt.Sprintf("%s%s?changed_since=%s",
		w.baseURL, w.endpointPath, url.QueryEscape(since.Format(time.RFC3339)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway profile service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("profile service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response profileChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode profile service response: %w", err)
	}
	return response.Users, nil
}

func (w *UserSyncWorker) upsertProfiles(profiles []profileFromGateway) error {
	users := make([]models.User, 0, len(profiles))
	for _, p := range profiles {
		role := models.UserRole(p.Role)
		if role != models.UserRoleAdmin {
			role = models.UserRoleUser
		}
		users = append(users, models.User{
			ID:           uuid.NewString(),
			OpenID:       p.OpenID,
			Name:         p.Name,
			Email:        p.Email,
			LoginMethod:  p.LoginMethod,
			Role:         role,
			Level:        1,
			LastSignedIn: p.UpdatedAt,
		})
	}

	// Identity fields only on conflict: the gamification aggregates
	// belong to this service and must never be overwritten by a sync.
	return w.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "login_method", "role", "last_signed_in",
		}),
	}).Create(&users).Error
}
