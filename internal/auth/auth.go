package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/pagination"
	"github.com/jafarshop/shopadmin/internal/repository"
	"github.com/jafarshop/shopadmin/internal/shopify"
	"github.com/jafarshop/shopadmin/pkg/errors"
)

const (
	ShopHeader     = "X-Shopify-Shop-Domain"
	ShopParam      = "shop"
	HMACParam      = "hmac"
	TimestampParam = "timestamp"
)

const (
	// SignatureMaxAge bounds how old a signed query may be
	SignatureMaxAge = 24 * time.Hour
	// signatureClockSkew tolerates timestamps slightly ahead of the local clock
	signatureClockSkew = 5 * time.Minute
)

// unsignedParams are appended by the app itself when paging, after Shopify signed the query
var unsignedParams = map[string]bool{
	HMACParam:                    true,
	pagination.AfterCursorParam:  true,
	pagination.BeforeCursorParam: true,
}

var shopPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// Authenticator resolves the Shopify session behind an inbound admin request
type Authenticator struct {
	sessions  repository.SessionRepository
	apiSecret string
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthenticator creates a new authenticator. An empty apiSecret disables
// the hmac check.
func NewAuthenticator(sessions repository.SessionRepository, apiSecret string, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		sessions:  sessions,
		apiSecret: apiSecret,
		logger:    logger,
		now:       time.Now,
	}
}

// Authenticate returns the offline session of the shop the request is for.
// Every failure is an *errors.ErrUnauthorized.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (domain.Session, error) {
	shop, err := a.resolveShop(r)
	if err != nil {
		return domain.Session{}, err
	}

	session, err := a.sessions.Get(ctx, domain.OfflineSessionID(shop))
	if err != nil {
		var notFound *errors.ErrNotFound
		if !stderrors.As(err, &notFound) {
			a.logger.Error("Failed to load session", zap.String("shop", shop), zap.Error(err))
		}
		return domain.Session{}, &errors.ErrUnauthorized{Message: "no session for shop " + shop}
	}
	if session.AccessToken == "" {
		return domain.Session{}, &errors.ErrUnauthorized{Message: "session has no access token"}
	}
	if session.IsExpired(a.now()) {
		return domain.Session{}, &errors.ErrUnauthorized{Message: "session expired"}
	}

	return *session, nil
}

// resolveShop picks the shop a request is for. With a secret configured the
// shop comes from the signed query only and the header, when sent, must agree.
func (a *Authenticator) resolveShop(r *http.Request) (string, error) {
	header := r.Header.Get(ShopHeader)
	query := r.URL.Query()

	if a.apiSecret == "" {
		raw := header
		if raw == "" {
			raw = query.Get(ShopParam)
		}
		if raw == "" {
			return "", &errors.ErrUnauthorized{Message: "missing shop"}
		}
		return ValidateShop(raw)
	}

	if query.Get(ShopParam) == "" {
		return "", &errors.ErrUnauthorized{Message: "missing shop"}
	}
	shop, err := ValidateShop(query.Get(ShopParam))
	if err != nil {
		return "", err
	}
	if err := a.verifySignature(r.URL.RawQuery, query.Get(TimestampParam)); err != nil {
		a.logger.Warn("Rejected signed request", zap.String("shop", shop), zap.Error(err))
		return "", err
	}
	if header != "" && shopify.NormalizeShopDomain(header) != shop {
		a.logger.Warn("Rejected request with mismatched shop header",
			zap.String("shop", shop), zap.String("header", header))
		return "", &errors.ErrUnauthorized{Message: "shop header does not match signed shop"}
	}
	return shop, nil
}

func (a *Authenticator) verifySignature(rawQuery, timestamp string) error {
	if !VerifyHMAC(rawQuery, a.apiSecret) {
		return &errors.ErrUnauthorized{Message: "invalid hmac signature"}
	}
	if timestamp == "" {
		return &errors.ErrUnauthorized{Message: "missing timestamp"}
	}
	secs, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return &errors.ErrUnauthorized{Message: "invalid timestamp"}
	}
	age := a.now().Sub(time.Unix(secs, 0))
	if age > SignatureMaxAge || age < -signatureClockSkew {
		return &errors.ErrUnauthorized{Message: "signature expired"}
	}
	return nil
}

// Seed stores an offline session for a single-store install
func (a *Authenticator) Seed(ctx context.Context, shop, accessToken string) error {
	shop, err := ValidateShop(shop)
	if err != nil {
		return err
	}
	if accessToken == "" {
		return &errors.ErrValidation{Message: "access token is required"}
	}

	session := &domain.Session{
		ID:          domain.OfflineSessionID(shop),
		Shop:        shop,
		AccessToken: accessToken,
	}
	if err := a.sessions.Upsert(ctx, session); err != nil {
		return err
	}
	a.logger.Info("Seeded offline session", zap.String("shop", shop))
	return nil
}

// ValidateShop normalizes a shop domain and checks it is a myshopify.com host
func ValidateShop(raw string) (string, error) {
	shop := shopify.NormalizeShopDomain(raw)
	if !shopPattern.MatchString(shop) {
		return "", &errors.ErrUnauthorized{Message: "invalid shop domain: " + raw}
	}
	return shop, nil
}

// VerifyHMAC checks the hmac parameter of a raw query string against secret
func VerifyHMAC(rawQuery, secret string) bool {
	given, message, ok := hmacMessage(rawQuery)
	if !ok {
		return false
	}
	expected, err := hex.DecodeString(given)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hmac.Equal(mac.Sum(nil), expected)
}

// Sign returns the hmac Shopify would send for the given query parameters
func Sign(params map[string]string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedMessage(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

func hmacMessage(rawQuery string) (string, string, bool) {
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", "", false
	}
	given := query.Get(HMACParam)
	if given == "" {
		return "", "", false
	}
	params := make(map[string]string, len(query))
	for k, v := range query {
		if len(v) == 1 {
			params[k] = v[0]
			continue
		}
		params[strings.TrimSuffix(k, "[]")] = `["` + strings.Join(v, `", "`) + `"]`
	}
	return given, signedMessage(params), true
}

// signedMessage joins every signed parameter as k=v, sorted by key
func signedMessage(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if !unsignedParams[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}
