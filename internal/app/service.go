package app

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"jsonkit/api/internal/auth"
	"jsonkit/api/internal/authpw"
	"jsonkit/api/internal/config"
	"jsonkit/api/internal/convert"
	"jsonkit/api/internal/diff"
	"jsonkit/api/internal/repair"
	"jsonkit/api/internal/search"
	"jsonkit/api/internal/store"
	"jsonkit/api/internal/util"
)

// DataStore is the persistence boundary the service depends on.
type DataStore interface {
	Ping(ctx context.Context) error
	GetUserByID(ctx context.Context, userID string) (store.User, error)
	SaveHistory(ctx context.Context, rec store.HistoryRecord) error
	ListHistory(ctx context.Context, userID string, limit, offset int) (store.HistoryPage, error)
	GetHistory(ctx context.Context, userID, id string) (store.HistoryRecord, error)
	DeleteHistory(ctx context.Context, userID, id string) error
}

// RefreshStore persists refresh sessions; Redis-backed in production,
// with the Postgres store as fallback.
type RefreshStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

// HistorySearch is the full-text search boundary over history records.
type HistorySearch interface {
	Search(q search.Query) search.Response
	IndexRecord(rec search.Record)
	DeleteRecord(id string)
}

// Repairer fixes broken JSON via the language-model collaborator.
type Repairer interface {
	Repair(ctx context.Context, content string) (repair.Outcome, error)
}

// Session identifies an authenticated caller.
type Session struct {
	UserID       string
	UserName     string
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
}

type Service struct {
	cfg      config.Config
	store    DataStore
	sessions RefreshStore
	search   HistorySearch
	repairer Repairer
	authpw   *authpw.Service
}

func New(cfg config.Config, dataStore DataStore, sessions RefreshStore, historySearch HistorySearch, repairer Repairer, pw *authpw.Service) *Service {
	return &Service{
		cfg:      cfg,
		store:    dataStore,
		sessions: sessions,
		search:   historySearch,
		repairer: repairer,
		authpw:   pw,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) AuthService() *authpw.Service {
	return s.authpw
}

func (s *Service) MaxInputBytes() int {
	if s.cfg.MaxInputBytes <= 0 {
		return 1 << 20
	}
	return s.cfg.MaxInputBytes
}

// Sessions

// CreateSession issues an access token and a refresh token for user.
func (s *Service) CreateSession(ctx context.Context, user store.User) (Session, error) {
	expiresAt := time.Now().Add(s.accessTTL())
	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:  user.ID,
		Name: user.DisplayName,
		JTI:  util.NewID("jti"),
		Exp:  expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refreshToken := randomToken()
	if err := s.sessions.SaveRefreshSession(ctx, hashToken(refreshToken), user.ID, time.Now().Add(s.refreshTTL())); err != nil {
		return Session{}, err
	}

	return Session{
		UserID:       user.ID,
		UserName:     user.DisplayName,
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// SessionFromToken validates an access token.
func (s *Service) SessionFromToken(_ context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}
	return Session{
		UserID:    claims.Sub,
		UserName:  claims.Name,
		Token:     token,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

// Refresh rotates a refresh token and issues a new session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	hash := hashToken(refreshToken)
	partial, err := s.sessions.LookupRefreshSession(ctx, hash)
	if err != nil {
		return Session{}, err
	}
	user, err := s.store.GetUserByID(ctx, partial.ID)
	if err != nil {
		return Session{}, err
	}

	session, err := s.CreateSession(ctx, user)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, hash); err != nil {
		log.Printf("session: revoke rotated refresh token: %v", err)
	}
	return session, nil
}

// Logout revokes a refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.sessions.RevokeRefreshSession(ctx, hashToken(refreshToken))
}

// Conversions

// ConversionPayload is the uniform response body for conversion
// endpoints.
type ConversionPayload struct {
	Valid  bool   `json:"valid"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Format reindents JSON text. indent is a space count or "tab".
func (s *Service) Format(ctx context.Context, sess Session, content string, indent convert.Indent) ConversionPayload {
	return s.convertAndRecord(ctx, sess, "format", content, convert.Format(content, indent))
}

func (s *Service) Minify(ctx context.Context, sess Session, content string) ConversionPayload {
	return s.convertAndRecord(ctx, sess, "minify", content, convert.Minify(content))
}

func (s *Service) ToMarkdown(ctx context.Context, sess Session, content string) ConversionPayload {
	return s.convertAndRecord(ctx, sess, "to-markdown", content, convert.ToMarkdown(content))
}

func (s *Service) FromMarkdown(ctx context.Context, sess Session, content string) ConversionPayload {
	return s.convertAndRecord(ctx, sess, "from-markdown", content, convert.FromMarkdown(content))
}

func (s *Service) ToYAML(ctx context.Context, sess Session, content string) ConversionPayload {
	return s.convertAndRecord(ctx, sess, "to-yaml", content, convert.ToYAML(content))
}

func (s *Service) FromYAML(ctx context.Context, sess Session, content string) ConversionPayload {
	return s.convertAndRecord(ctx, sess, "from-yaml", content, convert.FromYAML(content))
}

// Validate checks JSON without recording history.
func (s *Service) Validate(content string) ConversionPayload {
	valid, msg := convert.Validate(content)
	return ConversionPayload{Valid: valid, Error: msg}
}

// convertAndRecord wraps a conversion result and appends it to the
// caller's history. History failures are logged, never surfaced: a
// conversion that worked should not fail because persistence hiccuped.
func (s *Service) convertAndRecord(ctx context.Context, sess Session, operation, content string, res convert.Result) ConversionPayload {
	rec := store.HistoryRecord{
		ID:        util.NewID("hst"),
		UserID:    sess.UserID,
		Operation: operation,
		Content:   content,
		Output:    res.Output,
		Label:     util.Label(content, 80),
		Valid:     res.Valid,
	}
	if err := s.store.SaveHistory(ctx, rec); err != nil {
		log.Printf("history: save %s record: %v", operation, err)
	} else if s.search != nil {
		s.search.IndexRecord(search.Record{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Label:     rec.Label,
			Content:   rec.Content,
			Operation: rec.Operation,
		})
	}

	if !res.Valid {
		return ConversionPayload{Valid: false, Error: res.ErrMsg}
	}
	return ConversionPayload{Valid: true, Result: res.Output}
}

// Repair

// RepairPayload is the repair endpoint response: the corrected text and
// the positional line changes against the submitted input.
type RepairPayload struct {
	Repaired string        `json:"repaired"`
	Changes  []diff.Change `json:"changes"`
}

func (s *Service) Repair(ctx context.Context, sess Session, content string) (RepairPayload, error) {
	if s.repairer == nil {
		return RepairPayload{}, domainError(http.StatusServiceUnavailable, "REPAIR_UNAVAILABLE", "Repair service not configured", nil)
	}

	outcome, err := s.repairer.Repair(ctx, content)
	if err != nil {
		return RepairPayload{}, domainError(http.StatusBadGateway, "REPAIR_FAILED", err.Error(), nil)
	}

	rec := store.HistoryRecord{
		ID:        util.NewID("hst"),
		UserID:    sess.UserID,
		Operation: "repair",
		Content:   content,
		Output:    outcome.Repaired,
		Label:     util.Label(content, 80),
		Valid:     true,
	}
	if err := s.store.SaveHistory(ctx, rec); err != nil {
		log.Printf("history: save repair record: %v", err)
	} else if s.search != nil {
		s.search.IndexRecord(search.Record{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Label:     rec.Label,
			Content:   rec.Content,
			Operation: rec.Operation,
		})
	}

	changes := outcome.Changes
	if changes == nil {
		changes = []diff.Change{}
	}
	return RepairPayload{Repaired: outcome.Repaired, Changes: changes}, nil
}

// History

func (s *Service) History(ctx context.Context, sess Session, limit, offset int) (store.HistoryPage, error) {
	return s.store.ListHistory(ctx, sess.UserID, limit, offset)
}

func (s *Service) HistoryRecord(ctx context.Context, sess Session, id string) (store.HistoryRecord, error) {
	return s.store.GetHistory(ctx, sess.UserID, id)
}

func (s *Service) DeleteHistoryRecord(ctx context.Context, sess Session, id string) error {
	if err := s.store.DeleteHistory(ctx, sess.UserID, id); err != nil {
		return err
	}
	if s.search != nil {
		s.search.DeleteRecord(id)
	}
	return nil
}

func (s *Service) SearchHistory(sess Session, text string, limit, offset int) search.Response {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: text}
	}
	return s.search.Search(search.Query{
		Text:   text,
		UserID: sess.UserID,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *Service) accessTTL() time.Duration {
	if s.cfg.AccessTTL <= 0 {
		return 15 * time.Minute
	}
	return s.cfg.AccessTTL
}

func (s *Service) refreshTTL() time.Duration {
	if s.cfg.RefreshTTL <= 0 {
		return 30 * 24 * time.Hour
	}
	return s.cfg.RefreshTTL
}

func randomToken() string {
	bytes := make([]byte, 32)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
