package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"
)

const DefaultHealthCheckTimeout = 30 * time.Second

// TestEnv points the suite at a running hotel server and the database it
// writes to. The server must be started with MONGO_DATABASE_NAME set to the
// same database.
type TestEnv struct {
	MongoURI     string
	DatabaseName string
	ServerURL    string
}

func NewTestEnv() *TestEnv {
	port := getEnv("TEST_SERVER_PORT", "4000")
	return &TestEnv{
		MongoURI:     getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName: getEnv("TEST_DB_NAME", DefaultDatabaseName),
		ServerURL:    getEnv("TEST_SERVER_URL", fmt.Sprintf("http://localhost:%s", port)),
	}
}

// Setup empties every collection and waits for the server. Cleanup is
// registered on t.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Client) {
	t.Helper()

	db := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	db.CleanDatabase(t)
	t.Cleanup(func() {
		db.CleanDatabase(t)
		db.Close(t)
	})

	client := NewClient(e.ServerURL)
	client.WaitForHealthy(t, DefaultHealthCheckTimeout)

	return db, client
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
