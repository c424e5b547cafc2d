package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"job-scout/internal/models"
)

// GetUnwantedKeywords loads the unwanted keyword lists for the given users,
// lower-cased and trimmed, keyed by user id. Users with no profile or an
// empty list are simply absent from the map.
func (s *Store) GetUnwantedKeywords(ctx context.Context, userIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(userIDs) == 0 {
		return result, nil
	}

	var profiles []*models.UserProfile

	_, err := s.sess.
		Select("*").
		From("user_profiles").
		Where("user_id = ANY(?)", pq.Array(userIDs)).
		LoadContext(ctx, &profiles)

	if err != nil {
		s.logger.Error("failed to get user profiles",
			zap.Int("user_count", len(userIDs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get unwanted keywords: %w", err)
	}

	for _, profile := range profiles {
		var keywords []string
		for _, k := range profile.UnwantedKeywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		if len(keywords) > 0 {
			result[profile.UserID] = keywords
		}
	}

	return result, nil
}
