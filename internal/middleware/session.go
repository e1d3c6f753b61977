package middleware

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

// Session is the stored state behind a token. Tokens carry identity only;
// role and activation are read here on every request.
type Session struct {
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type SessionStore struct {
	db    *gorm.DB
	cache readcache.Cache
}

func NewSessionStore(db *gorm.DB, cache readcache.Cache) *SessionStore {
	return &SessionStore{db: db, cache: cache}
}

// Lookup returns gorm.ErrRecordNotFound when the profile is gone or belongs to
// another organization. Entries share the staff tag, so any staff write drops them.
func (s *SessionStore) Lookup(ctx context.Context, organizationID, profileID uint) (Session, error) {
	key := readcache.Key(organizationID, readcache.Staff, "session", profileID)

	return readcache.Remember(ctx, s.cache, key, readcache.Tags(organizationID, readcache.Staff), func() (Session, error) {
		var p models.Profile
		err := s.db.WithContext(ctx).
			Select("id", "role", "is_active").
			Where("id = ? AND organization_id = ?", profileID, organizationID).
			First(&p).Error
		if err != nil {
			return Session{}, err
		}
		return Session{Role: p.Role, IsActive: p.IsActive}, nil
	})
}
