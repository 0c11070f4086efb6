package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RPleshkov/SessionVault/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for Session. The surrogate ID is the
// storage key; SessionID is the opaque rotating identifier tokens refer to.
type DBSession struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     string    `gorm:"index;size:36"`
	SessionID  string    `gorm:"uniqueIndex;size:36"`
	UserAgent  string    `gorm:"size:512"`
	LastActive time.Time `gorm:"index"`
	ExpiresAt  time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	dbSession := r.domainToDB(session)
	if err := r.db.WithContext(ctx).Create(dbSession).Error; err != nil {
		return err
	}
	session.ID = dbSession.ID
	return nil
}

// FindBySessionID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&dbSession).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// ListByUser implements domain.SessionRepository. Ascending last-active keeps
// the eviction candidate at index zero.
func (r *SessionRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_active asc").
		Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(dbSessions))
	for i := range dbSessions {
		sessions = append(sessions, *r.dbToDomain(&dbSessions[i]))
	}
	return sessions, nil
}

// Replace implements domain.SessionRepository. A single UPDATE keyed by the
// old session id; updating a vanished row is a silent no-op.
func (r *SessionRepositoryImpl) Replace(ctx context.Context, oldSessionID, newSessionID, userAgent string, lastActive, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBSession{}).
		Where("session_id = ?", oldSessionID).
		Updates(map[string]interface{}{
			"session_id":  newSessionID,
			"user_agent":  userAgent,
			"last_active": lastActive,
			"expires_at":  expiresAt,
		}).Error
}

// Delete implements domain.SessionRepository. Deleting an absent session id is
// not an error.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&DBSession{}).Error
}

// DeleteOldest implements domain.SessionRepository. Removes the single session
// with the smallest last-active for the user; ties are store-determined.
func (r *SessionRepositoryImpl) DeleteOldest(ctx context.Context, userID string) error {
	var oldest DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_active asc").
		First(&oldest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	return r.db.WithContext(ctx).Delete(&oldest).Error
}

// domainToDB converts domain session to database session
func (r *SessionRepositoryImpl) domainToDB(session *domain.Session) *DBSession {
	return &DBSession{
		ID:         session.ID,
		UserID:     session.UserID,
		SessionID:  session.SessionID,
		UserAgent:  session.UserAgent,
		LastActive: session.LastActive,
		ExpiresAt:  session.ExpiresAt,
	}
}

// dbToDomain converts database session to domain session
func (r *SessionRepositoryImpl) dbToDomain(dbSession *DBSession) *domain.Session {
	return &domain.Session{
		ID:         dbSession.ID,
		UserID:     dbSession.UserID,
		SessionID:  dbSession.SessionID,
		UserAgent:  dbSession.UserAgent,
		LastActive: dbSession.LastActive,
		ExpiresAt:  dbSession.ExpiresAt,
	}
}
