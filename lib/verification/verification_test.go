package verification

import (
	"regexp"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	dbmodels "verify-code-backend/models/db"
)

type fakeStore struct {
	recs      []dbmodels.VerificationCode
	nextID    uint
	createErr error
	findErr   error
}

func (s *fakeStore) Create(rec dbmodels.VerificationCode) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	rec.ID = s.nextID
	s.recs = append(s.recs, rec)
	return nil
}

func (s *fakeStore) FindValid(email, code string, notBefore int64) (*dbmodels.VerificationCode, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, rec := range s.recs {
		if rec.Email == email && rec.Code == code && rec.CreatedAt > notBefore {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) PurgeOlderThan(cutoff int64) (int64, error) {
	kept := s.recs[:0]
	var count int64
	for _, rec := range s.recs {
		if rec.CreatedAt < cutoff {
			count++
			continue
		}
		kept = append(kept, rec)
	}
	s.recs = kept
	return count, nil
}

func (s *fakeStore) Ping() error {
	return nil
}

type sentMail struct {
	from    string
	to      string
	message string
	subject string
}

type fakeSender struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeSender) SendEMail(from, to, message, subject string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{from: from, to: to, message: message, subject: subject})
	return nil
}

func (f *fakeSender) Verify() error {
	return nil
}

func newTestHandler() (*impl, *fakeStore, *fakeSender) {
	store := &fakeStore{}
	sender := &fakeSender{}
	handler := &impl{
		store:      store,
		sender:     sender,
		emailFrom:  "noreply@example.com",
		ttl:        2 * time.Minute,
		codeLength: 6,
	}
	return handler, store, sender
}

func TestSendVerifyCode(t *testing.T) {
	codePattern := regexp.MustCompile(`^[0-9A-F]{6}$`)

	t.Run(`email normalized and code persisted check`, func(t *testing.T) {
		handler, store, sender := newTestHandler()
		err := handler.SendVerifyCode("Acme", "alice", "ALICE@Example.com")
		require.Nil(t, err)
		require.Equal(t, 1, len(store.recs))
		rec := store.recs[0]
		require.Equal(t, "Acme", rec.Company)
		require.Equal(t, "alice", rec.Username)
		require.Equal(t, "alice@example.com", rec.Email)
		require.Equal(t, true, codePattern.MatchString(rec.Code))
		require.Equal(t, 1, len(sender.sent))
		require.Equal(t, "alice@example.com", sender.sent[0].to)
		require.Contains(t, sender.sent[0].message, rec.Code)
	})

	t.Run(`repeated issuance is additive check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "alice@example.com"))
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "alice@example.com"))
		require.Equal(t, 2, len(store.recs))

		valid, err := handler.VerifyCode("alice@example.com", store.recs[0].Code)
		require.Nil(t, err)
		require.Equal(t, true, valid)
		valid, err = handler.VerifyCode("alice@example.com", store.recs[1].Code)
		require.Nil(t, err)
		require.Equal(t, true, valid)
	})

	t.Run(`storage failure check`, func(t *testing.T) {
		handler, store, sender := newTestHandler()
		store.createErr = errors.New("connection refused")
		err := handler.SendVerifyCode("Acme", "alice", "alice@example.com")
		require.Equal(t, ErrStorage, err)
		require.Equal(t, 0, len(sender.sent))
	})

	t.Run(`delivery failure keeps record check`, func(t *testing.T) {
		handler, store, sender := newTestHandler()
		sender.sendErr = errors.New("smtp timeout")
		err := handler.SendVerifyCode("Acme", "alice", "alice@example.com")
		require.Equal(t, ErrDelivery, err)
		// запись сохранена и код остаётся действительным
		require.Equal(t, 1, len(store.recs))
		valid, err := handler.VerifyCode("alice@example.com", store.recs[0].Code)
		require.Nil(t, err)
		require.Equal(t, true, valid)
	})
}

func TestVerifyCode(t *testing.T) {
	t.Run(`valid right after issuance check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "ALICE@Example.com"))
		valid, err := handler.VerifyCode("alice@example.com", store.recs[0].Code)
		require.Nil(t, err)
		require.Equal(t, true, valid)
	})

	t.Run(`email normalized on verify check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "alice@example.com"))
		valid, err := handler.VerifyCode("ALICE@Example.com", store.recs[0].Code)
		require.Nil(t, err)
		require.Equal(t, true, valid)
	})

	t.Run(`wrong code check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "alice@example.com"))
		wrongCode := "000000"
		if store.recs[0].Code == wrongCode {
			wrongCode = "000001"
		}
		valid, err := handler.VerifyCode("alice@example.com", wrongCode)
		require.Nil(t, err)
		require.Equal(t, false, valid)
	})

	t.Run(`unknown email check`, func(t *testing.T) {
		handler, _, _ := newTestHandler()
		valid, err := handler.VerifyCode("nobody@example.com", "ABCDEF")
		require.Nil(t, err)
		require.Equal(t, false, valid)
	})

	t.Run(`expired code check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "alice@example.com"))
		// сдвигаем время создания за границу времени жизни
		store.recs[0].CreatedAt = time.Now().Add(-handler.ttl - time.Second).UnixMilli()
		valid, err := handler.VerifyCode("alice@example.com", store.recs[0].Code)
		require.Nil(t, err)
		require.Equal(t, false, valid)
	})

	t.Run(`repeated redemption within ttl check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		require.Nil(t, handler.SendVerifyCode("Acme", "alice", "alice@example.com"))
		for k := 0; k < 3; k++ {
			valid, err := handler.VerifyCode("alice@example.com", store.recs[0].Code)
			require.Nil(t, err)
			require.Equal(t, true, valid)
		}
	})

	t.Run(`storage failure check`, func(t *testing.T) {
		handler, store, _ := newTestHandler()
		store.findErr = errors.New("connection refused")
		valid, err := handler.VerifyCode("alice@example.com", "ABCDEF")
		require.Equal(t, ErrStorage, err)
		require.Equal(t, false, valid)
	})
}
