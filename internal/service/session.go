package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/uow"
)

type SessionService struct {
	Broker uow.Broker
}

func NewSessionService(b uow.Broker) *SessionService {
	return &SessionService{Broker: b}
}

func (s *SessionService) NewSession(ctx context.Context, accessToken string, expiresAt time.Time, userID int64, username string) error {
	return s.send(ctx, models.Session{
		Action:      models.SessionCreate,
		AccessToken: accessToken,
		TokenType:   models.BearerTokenType,
		ExpiresIn:   &expiresAt,
		UserID:      userID,
		Username:    username,
	})
}

func (s *SessionService) TerminateSession(ctx context.Context, userID int64, username string) error {
	return s.send(ctx, models.Session{
		Action:   models.SessionTerminate,
		UserID:   userID,
		Username: username,
	})
}

func (s *SessionService) send(ctx context.Context, ev models.Session) error {
	return s.Broker.Do(ctx, func(ctx context.Context, u *uow.BrokerUnit) error {
		return u.Sessions.Send(ctx, ev)
	})
}
