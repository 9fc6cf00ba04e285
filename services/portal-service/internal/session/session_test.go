package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	bolt, err := OpenBolt(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { _ = bolt.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"redis":  NewRedisBackend(rdb, time.Hour),
		"bolt":   bolt,
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New("sess-1", b)
			if _, err := s.Get(ctx, KeyUser); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := s.Save(ctx, KeyUser, map[string]string{"firstName": "Ali"}); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := s.Set(ctx, KeyCompany, []byte(`{}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			var got map[string]string
			if err := s.Load(ctx, KeyUser, &got); err != nil || got["firstName"] != "Ali" {
				t.Fatalf("load: %v %v", got, err)
			}

			other := New("sess-2", b)
			if ok, _ := other.Has(ctx, KeyUser); ok {
				t.Fatalf("sessions must not share keys")
			}

			if err := s.Clear(ctx, KeyUser, KeyCompany, KeyAppointments); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if ok, err := s.Has(ctx, KeyCompany); ok || err != nil {
				t.Fatalf("expected cleared company, ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestRedisBackendAppliesTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	b := NewRedisBackend(rdb, time.Minute)
	if err := b.Set(context.Background(), "s", KeyUser, []byte("x")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("portal:session:s:user"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := b.Get(context.Background(), "s", KeyUser); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestGate(t *testing.T) {
	ctx := context.Background()
	s := New("s", NewMemoryBackend())

	if to, _ := Gate(ctx, s); to != PathRegister {
		t.Fatalf("expected %s, got %q", PathRegister, to)
	}
	_ = s.Set(ctx, KeyUser, []byte(`{}`))
	if to, _ := Gate(ctx, s); to != PathOnboarding {
		t.Fatalf("expected %s, got %q", PathOnboarding, to)
	}
	_ = s.Set(ctx, KeyCompany, []byte(`{}`))
	if to, err := Gate(ctx, s); to != "" || err != nil {
		t.Fatalf("expected pass, got %q err=%v", to, err)
	}
}

func TestMiddlewareIssuesAndReusesCookie(t *testing.T) {
	m := NewManager(NewMemoryBackend(), CookieConfig{TTL: time.Hour})
	var ids []string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, FromContext(r.Context()).ID())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != ids[0] || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)
	if ids[1] != ids[0] {
		t.Fatalf("expected session reuse, got %v", ids)
	}

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: "randevubot_session", Value: "../../etc"})
	h.ServeHTTP(httptest.NewRecorder(), bad)
	if ids[2] == "../../etc" {
		t.Fatalf("expected malformed id to be replaced")
	}
}
