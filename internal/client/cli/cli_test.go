package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodokanal/labsync/internal/client/api"
	"github.com/vodokanal/labsync/internal/client/labdata"
	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/internal/client/sync"
	"github.com/vodokanal/labsync/internal/clock"
	"github.com/vodokanal/labsync/internal/models"
	wire "github.com/vodokanal/labsync/pkg/api"
)

var cliNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// testCli собирает Cli с моками, буфером вместо stdout
// и фиксированными ответами на интерактивные вопросы
type testCli struct {
	cli      *Cli
	out      *bytes.Buffer
	records  *storage.RecordStorageMock
	metadata *storage.MetadataStorageMock
	session  *storage.SessionStorageMock
	apiMock  *api.ClientAPIMock
	syncMock *sync.ServiceMock
}

func newTestCli(t *testing.T, stdin string, passwords ...string) *testCli {
	t.Helper()

	out := &bytes.Buffer{}
	records := &storage.RecordStorageMock{}
	metadata := &storage.MetadataStorageMock{}
	session := &storage.SessionStorageMock{}
	apiMock := &api.ClientAPIMock{}
	syncMock := &sync.ServiceMock{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	labData := labdata.NewService(records, clock.NewFixed(cliNow), logger)

	passwordIdx := 0
	c := &Cli{
		apiClient:   apiMock,
		labData:     labData,
		syncService: syncMock,
		metadata:    metadata,
		session:     session,
		in:          bufio.NewReader(strings.NewReader(stdin)),
		out:         out,
		readPassword: func(prompt string) (string, error) {
			require.Less(t, passwordIdx, len(passwords), "unexpected password prompt %q", prompt)
			p := passwords[passwordIdx]
			passwordIdx++
			return p, nil
		},
	}

	return &testCli{
		cli:      c,
		out:      out,
		records:  records,
		metadata: metadata,
		session:  session,
		apiMock:  apiMock,
		syncMock: syncMock,
	}
}

func authenticatedSession() *storage.Session {
	return &storage.Session{
		Username:    "ivanova",
		UserID:      "user-1",
		AccessToken: "test-token",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	tc := newTestCli(t, "")

	err := tc.cli.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRunAdd(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}
	var saved *models.LocalRecord
	tc.records.SaveRecordFunc = func(ctx context.Context, rec *models.LocalRecord) error {
		saved = rec
		return nil
	}

	err := tc.cli.Run(context.Background(), "add",
		[]string{"sample", `{"site_id":"well-7","ph":7.2}`})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, models.EntityTypeSample, saved.EntityType)
	assert.Equal(t, "ivanova", saved.LastModifiedBy)
	assert.Contains(t, tc.out.String(), saved.EntityID)
}

func TestRunAdd_PayloadFromPrompt(t *testing.T) {
	tc := newTestCli(t, `{"site_id":"well-3","ph":8.0}`+"\n")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}
	tc.records.SaveRecordFunc = func(ctx context.Context, rec *models.LocalRecord) error {
		return nil
	}

	err := tc.cli.Run(context.Background(), "add", []string{"sample"})
	require.NoError(t, err)
	assert.Len(t, tc.records.SaveRecordCalls(), 1)
}

func TestRunAdd_InvalidJSON(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}

	err := tc.cli.Run(context.Background(), "add", []string{"sample", "{not json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestRunAdd_NotAuthenticated(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return nil, storage.ErrSessionNotFound
	}

	err := tc.cli.Run(context.Background(), "add", []string{"sample", `{}`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login")
}

func TestRunList(t *testing.T) {
	tc := newTestCli(t, "")
	tc.records.ListActiveByTypeFunc = func(ctx context.Context, entityType string) ([]*models.LocalRecord, error) {
		return []*models.LocalRecord{{
			ChangeRecord: models.ChangeRecord{
				EntityType:     models.EntityTypeSample,
				EntityID:       "sample-42",
				Payload:        []byte(`{"ph":7.2}`),
				Version:        3,
				LastModified:   cliNow,
				LastModifiedBy: "tech-ivanova",
			},
			Synced: false,
		}}, nil
	}

	err := tc.cli.Run(context.Background(), "list", []string{"sample"})
	require.NoError(t, err)

	output := tc.out.String()
	assert.Contains(t, output, "sample-42")
	assert.Contains(t, output, "pending sync")
	assert.Contains(t, output, "tech-ivanova")
}

func TestRunList_Empty(t *testing.T) {
	tc := newTestCli(t, "")
	tc.records.ListActiveByTypeFunc = func(ctx context.Context, entityType string) ([]*models.LocalRecord, error) {
		return nil, nil
	}

	err := tc.cli.Run(context.Background(), "list", []string{"site"})
	require.NoError(t, err)
	assert.Contains(t, tc.out.String(), "No site records found")
}

func TestRunList_MissingType(t *testing.T) {
	tc := newTestCli(t, "")

	err := tc.cli.Run(context.Background(), "list", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing entity type")
}

func TestRunGet(t *testing.T) {
	tc := newTestCli(t, "")
	tc.records.GetRecordFunc = func(ctx context.Context, entityType, entityID string) (*models.LocalRecord, error) {
		return &models.LocalRecord{
			ChangeRecord: models.ChangeRecord{
				EntityType:     entityType,
				EntityID:       entityID,
				Payload:        []byte(`{"site_id":"well-7","ph":7.2}`),
				Version:        2,
				LastModified:   cliNow,
				LastModifiedBy: "tech-ivanova",
			},
			Synced: true,
		}, nil
	}

	err := tc.cli.Run(context.Background(), "get", []string{"sample", "sample-42"})
	require.NoError(t, err)

	output := tc.out.String()
	assert.Contains(t, output, "sample-42")
	assert.Contains(t, output, `"site_id": "well-7"`)
}

func TestRunGet_MissingArgs(t *testing.T) {
	tc := newTestCli(t, "")

	err := tc.cli.Run(context.Background(), "get", []string{"sample"})
	require.Error(t, err)
}

func TestRunDelete(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}
	tc.records.GetRecordFunc = func(ctx context.Context, entityType, entityID string) (*models.LocalRecord, error) {
		return &models.LocalRecord{
			ChangeRecord: models.ChangeRecord{
				EntityType: entityType,
				EntityID:   entityID,
				Payload:    []byte(`{}`),
				Version:    1,
			},
			Synced: true,
		}, nil
	}
	var saved *models.LocalRecord
	tc.records.SaveRecordFunc = func(ctx context.Context, rec *models.LocalRecord) error {
		saved = rec
		return nil
	}

	err := tc.cli.Run(context.Background(), "delete", []string{"sample", "sample-42"})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.True(t, saved.Deleted)
	assert.Contains(t, tc.out.String(), "deleted")
}

func TestRunStatus_NotAuthenticated(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return nil, storage.ErrSessionNotFound
	}

	err := tc.cli.Run(context.Background(), "status", nil)
	require.NoError(t, err)
	assert.Contains(t, tc.out.String(), "Not authenticated")
}

func TestRunStatus_PendingRecords(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}
	tc.metadata.GetDeviceIDFunc = func(ctx context.Context) (string, error) {
		return "device-7", nil
	}
	tc.syncMock.GetPendingCountFunc = func(ctx context.Context) (int, error) {
		return 3, nil
	}

	err := tc.cli.Run(context.Background(), "status", nil)
	require.NoError(t, err)

	output := tc.out.String()
	assert.Contains(t, output, "Authenticated")
	assert.Contains(t, output, "device-7")
	assert.Contains(t, output, "3 record(s)")
}

func TestRunSync(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}
	tc.syncMock.SyncFunc = func(ctx context.Context) (*sync.Result, error) {
		return &sync.Result{Pushed: 2, Pulled: 1, Conflicts: 1}, nil
	}

	err := tc.cli.Run(context.Background(), "sync", nil)
	require.NoError(t, err)

	output := tc.out.String()
	assert.Contains(t, output, "Pushed to server:   2")
	assert.Contains(t, output, "Pulled from server: 1")
	assert.Contains(t, output, "Conflicts resolved: 1")
}

func TestRunSync_ExpiredToken(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		sess := authenticatedSession()
		sess.ExpiresAt = time.Now().Add(-time.Hour).Unix()
		return sess, nil
	}

	err := tc.cli.Run(context.Background(), "sync", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
	assert.Empty(t, tc.syncMock.SyncCalls())
}

func TestRunRegister_PasswordMismatch(t *testing.T) {
	tc := newTestCli(t, "ivanova\n", "password-one", "password-two")

	err := tc.cli.Run(context.Background(), "register", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
}

func TestRunLogin(t *testing.T) {
	token := signedTestToken(t, "user-1")
	tc := newTestCli(t, "ivanova\n", "secret-password")

	tc.metadata.GetDeviceIDFunc = func(ctx context.Context) (string, error) {
		return "", nil
	}
	var savedDeviceID string
	tc.metadata.SaveDeviceIDFunc = func(ctx context.Context, deviceID string) error {
		savedDeviceID = deviceID
		return nil
	}
	tc.apiMock.LoginFunc = func(ctx context.Context, req wire.LoginRequest) (*wire.TokenResponse, error) {
		assert.Equal(t, "ivanova", req.Username)
		assert.Equal(t, "secret-password", req.Password)
		assert.NotEmpty(t, req.DeviceID)
		return &wire.TokenResponse{AccessToken: token, ExpiresIn: 3600}, nil
	}
	var savedSession *storage.Session
	tc.session.SaveSessionFunc = func(ctx context.Context, sess *storage.Session) error {
		savedSession = sess
		return nil
	}

	err := tc.cli.Run(context.Background(), "login", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, savedDeviceID)
	require.NotNil(t, savedSession)
	assert.Equal(t, "ivanova", savedSession.Username)
	assert.Equal(t, "user-1", savedSession.UserID)
	assert.Equal(t, token, savedSession.AccessToken)
	assert.Greater(t, savedSession.ExpiresAt, time.Now().Unix())
}

func TestRunLogin_ReusesDeviceID(t *testing.T) {
	token := signedTestToken(t, "user-1")
	tc := newTestCli(t, "ivanova\n", "secret-password")

	tc.metadata.GetDeviceIDFunc = func(ctx context.Context) (string, error) {
		return "device-7", nil
	}
	tc.apiMock.LoginFunc = func(ctx context.Context, req wire.LoginRequest) (*wire.TokenResponse, error) {
		assert.Equal(t, "device-7", req.DeviceID)
		return &wire.TokenResponse{AccessToken: token, ExpiresIn: 3600}, nil
	}
	tc.session.SaveSessionFunc = func(ctx context.Context, sess *storage.Session) error {
		return nil
	}

	err := tc.cli.Run(context.Background(), "login", nil)
	require.NoError(t, err)
	assert.Empty(t, tc.metadata.SaveDeviceIDCalls())
}

func TestRunLogout(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return authenticatedSession(), nil
	}
	tc.session.DeleteSessionFunc = func(ctx context.Context) error {
		return nil
	}

	err := tc.cli.Run(context.Background(), "logout", nil)
	require.NoError(t, err)

	assert.Len(t, tc.session.DeleteSessionCalls(), 1)
	assert.Contains(t, tc.out.String(), "Logged out")
}

func TestRunLogout_NotLoggedIn(t *testing.T) {
	tc := newTestCli(t, "")
	tc.session.GetSessionFunc = func(ctx context.Context) (*storage.Session, error) {
		return nil, storage.ErrSessionNotFound
	}

	err := tc.cli.Run(context.Background(), "logout", nil)
	require.NoError(t, err)
	assert.Contains(t, tc.out.String(), "Not logged in")
}

func signedTestToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   userID,
		"username":  "ivanova",
		"device_id": "device-7",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}
