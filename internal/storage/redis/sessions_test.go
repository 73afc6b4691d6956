package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"go.uber.org/fx/fxtest"

	"github.com/thermopolio/thermopolio/internal/config"
	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
)

func TestSessionStoreSaveAndGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewSessionStore(client)
	ctx := context.Background()

	session := model.Session{
		ID:        "abc",
		UserID:    7,
		UserType:  model.UserTypeCustomer,
		CreatedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mock.ExpectSet("session:abc", payload, time.Hour).SetVal("OK")
	if err := store.Save(ctx, session, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	mock.ExpectGet("session:abc").SetVal(string(payload))
	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 7 || got.UserType != model.UserTypeCustomer || !got.CreatedAt.Equal(session.CreatedAt) {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Actor() != (model.Actor{UserID: 7, UserType: model.UserTypeCustomer}) {
		t.Fatalf("unexpected actor: %+v", got.Actor())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSessionStoreErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewSessionStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, model.Session{}, time.Minute); err == nil {
		t.Fatal("expected error for empty id")
	}

	mock.ExpectGet("session:missing").RedisNil()
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectGet("session:broken").SetErr(errors.New("connection refused"))
	if _, err := store.Get(ctx, "broken"); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}

	mock.ExpectGet("session:garbage").SetVal("{not json")
	if _, err := store.Get(ctx, "garbage"); err == nil {
		t.Fatal("expected decode error")
	}

	session := model.Session{ID: "x", UserID: 1, UserType: model.UserTypeOnlus}
	payload, _ := json.Marshal(session)
	mock.ExpectSet("session:x", payload, time.Minute).SetErr(errors.New("oom"))
	if err := store.Save(ctx, session, time.Minute); err == nil {
		t.Fatal("expected save error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewSessionStore(client)

	mock.ExpectDel("session:abc").SetVal(1)
	if err := store.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mock.ExpectDel("session:abc").SetVal(0)
	if err := store.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("delete of missing session: %v", err)
	}

	mock.ExpectDel("session:abc").SetErr(errors.New("down"))
	if err := store.Delete(context.Background(), "abc"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestRegisterLifecycle(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewSessionStore(client)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lifecycleParams{Lifecycle: lc, Client: client, Store: store, Logger: logger})

	mock.ExpectPing().SetErr(errors.New("unreachable"))
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start must tolerate unreachable redis: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
}

func TestNewClientUsesConfig(t *testing.T) {
	client := newClient(&config.Config{RedisAddr: "cache:6380", RedisPassword: "pw", RedisDB: 3})
	defer client.Close()

	opts := client.Options()
	if opts.Addr != "cache:6380" || opts.Password != "pw" || opts.DB != 3 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}
