package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newCommandServer(t *testing.T, reply string, got *[]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("unexpected authorization header: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode command: %v", err)
		}
		fmt.Fprint(w, reply)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestUpstashStore(t *testing.T, server *httptest.Server, opts ...UpstashOption) *UpstashStore {
	t.Helper()
	opts = append(opts, WithHTTPClient(server.Client()))
	store, err := NewUpstashStore(UpstashConfig{URL: server.URL, Token: "token"}, "device-1", opts...)
	if err != nil {
		t.Fatalf("NewUpstashStore() error = %v", err)
	}
	return store
}

func TestUpstashStoreRedisKeyIsDeviceScoped(t *testing.T) {
	t.Parallel()

	store := &UpstashStore{keyPrefix: defaultKeyPrefix, deviceID: "device-1"}
	got, err := store.redisKey(KeyOpenAIAPIKey)
	if err != nil {
		t.Fatalf("redisKey() error = %v", err)
	}
	if got != "assistant:settings:device-1:openai_api_key" {
		t.Fatalf("redisKey() = %q", got)
	}

	if _, err := store.redisKey("  "); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("redisKey() error = %v, want ErrInvalidKey", err)
	}
}

func TestUpstashStoreSetWithTTL(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := newCommandServer(t, `{"result":"OK"}`, &gotCommand)
	store := newTestUpstashStore(t, server, WithTTL(1500*time.Millisecond))

	if err := store.Set(context.Background(), KeyOpenAIModel, "gpt-4"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if len(gotCommand) != 5 {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
	if gotCommand[0] != "SET" || gotCommand[1] != "assistant:settings:device-1:openai_model" || gotCommand[2] != "gpt-4" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
	if gotCommand[3] != "EX" || gotCommand[4] != float64(2) {
		t.Fatalf("unexpected expiry: %#v", gotCommand[3:])
	}
}

func TestUpstashStoreGet(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := newCommandServer(t, `{"result":"sk-test"}`, &gotCommand)
	store := newTestUpstashStore(t, server)

	value, ok, err := store.Get(context.Background(), KeyOpenAIAPIKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || value != "sk-test" {
		t.Fatalf("Get() = %q, %v", value, ok)
	}
	if gotCommand[0] != "GET" {
		t.Fatalf("command[0] = %v, want GET", gotCommand[0])
	}
}

func TestUpstashStoreGetMissingKey(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := newCommandServer(t, `{"result":null}`, &gotCommand)
	store := newTestUpstashStore(t, server)

	value, ok, err := store.Get(context.Background(), KeyOpenAIAPIKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || value != "" {
		t.Fatalf("Get() = %q, %v, want missing", value, ok)
	}
}

func TestUpstashStoreDelete(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := newCommandServer(t, `{"result":1}`, &gotCommand)
	store := newTestUpstashStore(t, server)

	if err := store.Delete(context.Background(), KeyOpenAIAPIKey); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotCommand[0] != "DEL" || gotCommand[1] != "assistant:settings:device-1:openai_api_key" {
		t.Fatalf("unexpected command: %#v", gotCommand)
	}
}

func TestUpstashStoreRedisError(t *testing.T) {
	t.Parallel()

	var gotCommand []any
	server := newCommandServer(t, `{"error":"WRONGPASS"}`, &gotCommand)
	store := newTestUpstashStore(t, server)

	if _, _, err := store.Get(context.Background(), KeyOpenAIAPIKey); err == nil || err.Error() != "WRONGPASS" {
		t.Fatalf("Get() error = %v, want WRONGPASS", err)
	}
}

func TestNewUpstashStoreRequiresDevice(t *testing.T) {
	t.Parallel()

	if _, err := NewUpstashStore(UpstashConfig{URL: "https://example.upstash.io", Token: "t"}, " "); err == nil {
		t.Fatal("expected error for empty device id")
	}
}
