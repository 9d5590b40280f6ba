package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arnavshah/group-planner-go/pkg/config"
	"github.com/arnavshah/group-planner-go/pkg/database"
)

var testCfg = config.AuthConfig{
	JWTSecret:       "jwt-secret",
	APIMasterSecret: "master-secret",
	AdminUsername:   "root",
	AdminPassword:   "hunter22",
	TokenTTL:        time.Hour,
}

func TestToken_RoundTrip(t *testing.T) {
	a := New(testCfg)
	token, err := a.CreateToken("root")
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "root", claims.Username)

	other := New(config.AuthConfig{JWTSecret: "other"})
	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	a := New(testCfg)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := a.CreateToken("root")
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.VerifyToken(token)
	assert.Error(t, err)
}

func TestHMACKey(t *testing.T) {
	a := New(testCfg)
	key := a.GenerateHMACKey("club")

	userID, err := a.VerifyHMACKey(key)
	require.NoError(t, err)
	assert.Equal(t, "club", userID)

	_, err = a.VerifyHMACKey("club")
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)
	_, err = a.VerifyHMACKey("club.deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	_, err = New(config.AuthConfig{APIMasterSecret: "x"}).VerifyHMACKey(key)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "****", Preview("short"))
	assert.Equal(t, "clu...cdef", Preview("club.0123456789abcdef"))
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.MasterUser{}))

	require.NoError(t, EnsureAdminExists(db, testCfg, zap.NewNop()))
	require.NoError(t, EnsureAdminExists(db, testCfg, zap.NewNop()))

	var users []database.MasterUser
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "root", users[0].Username)
	assert.True(t, CheckPasswordHash("hunter22", users[0].PasswordHash))
	assert.False(t, CheckPasswordHash("wrong", users[0].PasswordHash))
}
