//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "quickbite-api"
	ConsumerName = "quickbite-web"

	StateMenuSeeded    = "menu has items"
	StateStudentExists = "student pact_student exists"
	StateAdminSession  = "admin is signed in"
)

const (
	StudentUsername = "pact_student"
	StudentPassword = "pact!pass1"
	AdminUsername   = "pact_admin"
	AdminPassword   = "pact!pass2"

	// ExampleToken stands in for the bearer token the provider issues at
	// state setup; the provider swaps it for the real one.
	ExampleToken   = "pact-admin-token"
	MissingOrderID = "missing-order"
)

// ExampleMenuItem provides stable test data for menu interactions.
func ExampleMenuItem() map[string]any {
	return map[string]any{
		"id":          "menu-1",
		"name":        "Margherita Pizza",
		"description": "Classic cheese & tomato",
		"price":       199.0,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
