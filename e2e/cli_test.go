package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manhunt-game/manhunt-go/internal/api"
	"github.com/manhunt-game/manhunt-go/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "manhunt-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/manhunt")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Clock:             app.Clock,
		AuthService:       app.AuthService,
		SocialService:     app.SocialService,
		MatchController:   app.MatchController,
		ProximityService:  app.ProximityService,
		ExperienceService: app.ExperienceService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Player struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
		IsGuest     bool   `json:"is_guest"`
	} `json:"player"`
	SessionToken string `json:"session_token"`
}

type playerResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
	Location    struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	CurrentMatch *string `json:"current_match"`
}

type matchResponse struct {
	ID      string `json:"id"`
	HostID  string `json:"host_id"`
	Name    string `json:"name"`
	Started bool   `json:"started"`
	Members []struct {
		PlayerID string `json:"player_id"`
		Role     string `json:"role"`
		Ready    bool   `json:"ready"`
		Caught   bool   `json:"caught"`
	} `json:"members"`
}

type nearbyPlayerResponse struct {
	Player     playerResponse `json:"player"`
	DistanceKm float64        `json:"distance_km"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	output, err := cli.run("player", "guest", "--name", "Alice", "--lat", "51.5", "--lon", "-0.12")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)
	assert.InDelta(t, 51.5, player.Location.Latitude, 1e-9)

	// Move and check the location took
	output, err = cli.run("player", "locate", "--lat", "48.85", "--lon", "2.35")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.InDelta(t, 48.85, player.Location.Latitude, 1e-9)
}

func TestCLI_FriendCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two players
	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))

	output, err = cli2.run("player", "guest", "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))

	// Alice sends Bob a request
	output, err = cli1.run("friend", "add", auth2.Player.ID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "sent")

	// Bob sees it and accepts
	output, err = cli2.run("friend", "requests")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, auth1.Player.ID)

	output, err = cli2.run("friend", "accept", auth1.Player.ID)
	require.NoError(t, err, "output: %s", output)

	// Both see each other as friends
	output, err = cli1.run("friend", "list")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, auth2.Player.ID)

	output, err = cli2.run("friend", "list")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, auth1.Player.ID)

	// Remove and verify
	output, err = cli1.run("friend", "remove", auth2.Player.ID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli1.run("friend", "list")
	require.NoError(t, err, "output: %s", output)
	assert.NotContains(t, output, auth2.Player.ID)
}

func TestCLI_MatchFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create two players close together
	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))
	token1 := auth1.SessionToken

	output, err = cli2.run("player", "guest", "--name", "Bob", "--lat", "0.0005")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))
	token2 := auth2.SessionToken

	// Alice hosts a match
	output, err = cli1.runWithToken(token1, "match", "host", "--name", "Park Hunt")
	require.NoError(t, err, "output: %s", output)
	var match matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	matchID := match.ID
	t.Logf("Created match: %s", matchID)

	// Bob joins
	output, err = cli2.runWithToken(token2, "match", "join", matchID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.Len(t, match.Members, 2)

	// Roles and readiness
	_, err = cli1.runWithToken(token1, "match", "role", matchID, "hunter")
	require.NoError(t, err)
	_, err = cli2.runWithToken(token2, "match", "role", matchID, "hider")
	require.NoError(t, err)
	_, err = cli1.runWithToken(token1, "match", "ready", matchID)
	require.NoError(t, err)
	_, err = cli2.runWithToken(token2, "match", "ready", matchID)
	require.NoError(t, err)

	// Start
	output, err = cli1.runWithToken(token1, "match", "start", matchID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli1.runWithToken(token1, "match", "get", matchID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &match))
	assert.True(t, match.Started)

	// Alice sees Bob as a visible hider and probes for him
	output, err = cli1.runWithToken(token1, "match", "hiders")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, auth2.Player.ID)

	output, err = cli1.runWithToken(token1, "match", "nearest-hider", "--radius-m", "100")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, auth2.Player.ID)

	// Catch Bob, then end the match
	output, err = cli1.runWithToken(token1, "match", "catch", matchID, auth2.Player.ID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli1.runWithToken(token1, "match", "end")
	require.NoError(t, err, "output: %s", output)

	_, err = cli1.runWithToken(token1, "match", "get", matchID)
	assert.Error(t, err, "should not find match after ending")
}

func TestCLI_NearbyPlayers(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	output, err := cli1.run("player", "guest", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	var auth1 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth1))

	// Bob spawns about 500m north
	output, err = cli2.run("player", "guest", "--name", "Bob", "--lat", "0.0045")
	require.NoError(t, err, "output: %s", output)
	var auth2 authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth2))

	output, err = cli1.run("nearby", "players", "--radius-km", "1")
	require.NoError(t, err, "output: %s", output)

	var nearby []nearbyPlayerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &nearby))
	require.Len(t, nearby, 1)
	assert.Equal(t, auth2.Player.ID, nearby[0].Player.ID)
	assert.Less(t, nearby[0].DistanceKm, 1.0)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "unauthorized")

	// Get non-existent match
	output, err = cli.run("player", "guest", "--name", "Alice")
	require.NoError(t, err)
	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))

	output, err = cli.runWithToken(auth.SessionToken, "match", "get", "NOPE1234")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
