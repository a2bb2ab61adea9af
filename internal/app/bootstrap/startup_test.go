package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "capstone_hub_test",
		TokenSecret:      "0123456789ABCDEF0123456789ABCDEF",
		TokenCookie:      "capstonehub-token",
		TokenTTL:         24 * time.Hour,
		FrontendURL:      "http://localhost:3000",
		ReminderInterval: time.Hour,
		ReminderWindow:   48 * time.Hour,
	}
}

func TestValidateConfig_Accepts(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(coreCfg, validAppConfig(), testLogger()); err != nil {
		t.Errorf("expected valid config to pass, got %v", err)
	}
}

func TestValidateConfig_RejectsShortSecret(t *testing.T) {
	cfg := validAppConfig()
	cfg.TokenSecret = "too-short"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, testLogger()); err == nil {
		t.Error("expected short token secret to be rejected")
	}
}

func TestValidateConfig_RejectsDefaultSecretInProd(t *testing.T) {
	cfg := validAppConfig()
	cfg.TokenSecret = "dev-only-change-me-please-0123456789ABCDEF"
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, cfg, testLogger()); err == nil {
		t.Error("expected default token secret to be rejected in prod")
	}
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, testLogger()); err != nil {
		t.Errorf("default secret should be tolerated in dev, got %v", err)
	}
}

func TestValidateConfig_RejectsBadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "not-a-mongo-uri"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, testLogger()); err == nil {
		t.Error("expected invalid mongo URI to be rejected")
	}
}

func TestValidateConfig_RejectsHalfConfiguredSuperAdmin(t *testing.T) {
	cfg := validAppConfig()
	cfg.SuperAdminEmail = "root@uni.edu"
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, cfg, testLogger()); err == nil {
		t.Error("expected superadmin email without password to be rejected")
	}
}

func TestStartup_CreatesSuperAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{CapstoneHubMongoDatabase: db}
	cfg := validAppConfig()
	cfg.SuperAdminName = "Portal Root"
	cfg.SuperAdminEmail = "Root@Uni.EDU"
	cfg.SuperAdminPassword = "a-long-startup-password"

	if err := Startup(ctx, &config.CoreConfig{Env: "dev"}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	reminder.Stop()

	var a models.Admin
	err := db.Collection("admins").FindOne(ctx, bson.M{"email": "root@uni.edu"}).Decode(&a)
	if err != nil {
		t.Fatalf("superadmin not created: %v", err)
	}
	if !a.SuperAdmin || !a.WritePermission {
		t.Errorf("expected superadmin flags set, got %+v", a)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("a-long-startup-password")) != nil {
		t.Errorf("stored hash does not match the configured password")
	}

	// A second run leaves the account alone.
	if err := Startup(ctx, &config.CoreConfig{Env: "dev"}, cfg, deps, testLogger()); err != nil {
		t.Fatalf("second Startup failed: %v", err)
	}
	reminder.Stop()

	n, err := db.Collection("admins").CountDocuments(ctx, bson.M{"email": "root@uni.edu"})
	if err != nil {
		t.Fatalf("count admins: %v", err)
	}
	if n != 1 {
		t.Errorf("expected one superadmin document, got %d", n)
	}
}
