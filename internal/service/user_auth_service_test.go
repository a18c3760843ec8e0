package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/repository"
)

type stubVerifier struct {
	identity *FederatedIdentity
	err      error
}

func (v stubVerifier) Verify(_ context.Context, _ string, _ string) (*FederatedIdentity, error) {
	return v.identity, v.err
}

func newAuthTestService(t *testing.T, verifier IdentityVerifier) *UserAuthService {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret-key-for-users", ExpireHours: 2},
		FederatedAuth: config.FederatedAuthConfig{
			Enabled:   verifier != nil,
			Providers: []string{constants.AuthProviderGoogle},
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db), verifier)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthTestService(t, nil)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: " Ada@Example.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.Email != "ada@example.com" || result.Token == "" {
		t.Fatalf("unexpected register result: %+v", result.User)
	}
	claims, err := svc.ParseUserJWT(result.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != result.User.ID || claims.Name != "Ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	login, err := svc.Login(ctx, LoginInput{Email: "ADA@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != result.User.ID || login.User.LastLoginAt == nil {
		t.Fatalf("unexpected login user: %+v", login.User)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong-pass1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthTestService(t, nil)
	ctx := context.Background()
	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing name", RegisterInput{Email: "a@b.co", Password: "secret123"}, ErrInvalidName},
		{"bad email", RegisterInput{Name: "A", Email: "not-an-email", Password: "secret123"}, ErrInvalidEmail},
		{"short password", RegisterInput{Name: "A", Email: "a@b.co", Password: "abc1"}, ErrWeakPassword},
		{"no digit", RegisterInput{Name: "A", Email: "a@b.co", Password: "abcdefghij"}, ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseUserJWTRejectsForeignToken(t *testing.T) {
	svc := newAuthTestService(t, nil)
	other := newAuthTestService(t, nil)
	other.cfg.UserJWT.SecretKey = "another-secret"
	result, err := other.Register(context.Background(), RegisterInput{Name: "Bo", Email: "bo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.ParseUserJWT(result.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := svc.ParseUserJWT("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestFederatedLoginDisabledByDefault(t *testing.T) {
	svc := newAuthTestService(t, nil)
	if _, err := svc.FederatedLogin(context.Background(), "google", "token"); !errors.Is(err, ErrFederatedLoginDisabled) {
		t.Fatalf("expected ErrFederatedLoginDisabled, got %v", err)
	}
}

func TestFederatedLoginCreatesAndLinksUsers(t *testing.T) {
	ctx := context.Background()
	verifier := stubVerifier{identity: &FederatedIdentity{ProviderUserID: "g-1", Email: "grace@example.com", Name: "Grace"}}
	svc := newAuthTestService(t, verifier)

	first, err := svc.FederatedLogin(ctx, "Google", "id-token")
	if err != nil {
		t.Fatalf("federated login failed: %v", err)
	}
	if first.User.AuthProvider != constants.AuthProviderGoogle || first.User.Name != "Grace" {
		t.Fatalf("unexpected federated user: %+v", first.User)
	}
	again, err := svc.FederatedLogin(ctx, "google", "id-token")
	if err != nil {
		t.Fatalf("repeat federated login failed: %v", err)
	}
	if again.User.ID != first.User.ID {
		t.Fatalf("identity must resolve to the same user: %d != %d", again.User.ID, first.User.ID)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "grace@example.com", Password: "secret123"}); !errors.Is(err, ErrAuthMethodMismatch) {
		t.Fatalf("password login on federated account must fail, got %v", err)
	}

	local, err := svc.Register(ctx, RegisterInput{Name: "Lin", Email: "lin@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	svc.verifier = stubVerifier{identity: &FederatedIdentity{ProviderUserID: "g-2", Email: "lin@example.com"}}
	linked, err := svc.FederatedLogin(ctx, "google", "id-token")
	if err != nil {
		t.Fatalf("link login failed: %v", err)
	}
	if linked.User.ID != local.User.ID {
		t.Fatalf("expected existing account to be linked")
	}
	if _, ok := AuthMethodOf(linked.User).(FederatedAuth); !ok {
		t.Fatalf("linked account must use federated auth")
	}

	svc.verifier = stubVerifier{identity: &FederatedIdentity{ProviderUserID: "g-3", Email: "grace@example.com"}}
	if _, err := svc.FederatedLogin(ctx, "google", "id-token"); !errors.Is(err, ErrAuthMethodMismatch) {
		t.Fatalf("relinking a bound account must fail, got %v", err)
	}

	svc.verifier = stubVerifier{err: errors.New("bad signature")}
	if _, err := svc.FederatedLogin(ctx, "google", "id-token"); !errors.Is(err, ErrFederatedTokenInvalid) {
		t.Fatalf("expected ErrFederatedTokenInvalid, got %v", err)
	}
	if _, err := svc.FederatedLogin(ctx, "github", "id-token"); !errors.Is(err, ErrFederatedLoginDisabled) {
		t.Fatalf("unlisted provider must be disabled, got %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 6, RequireUpper: true, RequireSpecial: true}
	err := validatePassword(policy, "abc")
	var policyErr PasswordPolicyError
	if !errors.As(err, &policyErr) || policyErr.Key() != "error.password_min_length" {
		t.Fatalf("expected min length violation, got %v", err)
	}
	if err := validatePassword(policy, "abcdef!"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected upper-case violation, got %v", err)
	}
	if err := validatePassword(policy, "Abcdef!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, ""); err != nil {
		t.Fatalf("empty policy must accept anything, got %v", err)
	}
}

func TestChangePasswordRevokesPreviousTokens(t *testing.T) {
	svc := newAuthTestService(t, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Grace", Email: "grace@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	userID := registered.User.ID

	if _, err := svc.ChangePassword(ctx, userID, "wrong1234", "another123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := svc.ChangePassword(ctx, userID, "secret123", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	changed, err := svc.ChangePassword(ctx, userID, "secret123", "another123")
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	oldClaims, _ := svc.ParseUserJWT(registered.Token)
	newClaims, err := svc.ParseUserJWT(changed.Token)
	if err != nil {
		t.Fatalf("parse new token failed: %v", err)
	}
	if newClaims.TokenVersion != oldClaims.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d -> %d", oldClaims.TokenVersion, newClaims.TokenVersion)
	}
	if changed.User.TokenInvalidBefore == nil {
		t.Fatalf("expected token_invalid_before to be set")
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "grace@example.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "grace@example.com", Password: "another123"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestRevokeSessionsBumpsTokenVersion(t *testing.T) {
	svc := newAuthTestService(t, nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Linus", Email: "linus@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.RevokeSessions(ctx, registered.User.ID); err != nil {
		t.Fatalf("revoke sessions failed: %v", err)
	}
	user, err := svc.GetUserByID(ctx, registered.User.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.TokenVersion != registered.User.TokenVersion+1 || user.TokenInvalidBefore == nil {
		t.Fatalf("unexpected user after revoke: version=%d invalid_before=%v", user.TokenVersion, user.TokenInvalidBefore)
	}
	if err := svc.RevokeSessions(ctx, 4242); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
