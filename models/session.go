package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginInstance is one active authenticated login for one portal in one
// browser tab, addressed by its token.
type LoginInstance struct {
	Token        string                 `bson:"token" json:"token"`
	Portal       string                 `bson:"portal" json:"portal"`
	Data         map[string]interface{} `bson:"data" json:"data"`
	CreatedAt    time.Time              `bson:"created_at" json:"created_at"`
	LastActivity time.Time              `bson:"last_activity" json:"last_activity"`
}

// BrowserSession is the server-side record for one browser, keyed by the
// session cookie. Logins keeps insertion order; Mirror holds the most
// recently created login's data per portal for code that does not pass
// tokens. LegacySupplier is the pre-token supplier slot kept for
// compatibility.
type BrowserSession struct {
	ID             primitive.ObjectID                `bson:"_id,omitempty" json:"id"`
	SessionID      string                            `bson:"session_id" json:"session_id"`
	Logins         []LoginInstance                   `bson:"logins" json:"logins"`
	Mirror         map[string]map[string]interface{} `bson:"mirror" json:"mirror"`
	LegacySupplier map[string]interface{}            `bson:"legacy_supplier,omitempty" json:"legacy_supplier,omitempty"`
	CSRFToken      string                            `bson:"csrf_token" json:"-"`
	IPAddress      string                            `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent      string                            `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt      time.Time                         `bson:"created_at" json:"created_at"`
	LastAccessed   time.Time                         `bson:"last_accessed" json:"last_accessed"`
	ExpiresAt      time.Time                         `bson:"expires_at" json:"expires_at"`
}

// MirrorData returns the mirror slot for a portal, or nil
func (s *BrowserSession) MirrorData(portal string) map[string]interface{} {
	if s.Mirror == nil {
		return nil
	}
	return s.Mirror[portal]
}
