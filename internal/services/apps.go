// Package services provides the host-side business logic of the launcher.
package services

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"
)

// ErrUnknownApp indicates the requested application is not in the directory.
var ErrUnknownApp = errors.New("unknown application")

// Lister enumerates installed applications.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// AppService exposes the App Directory to the bridge.
type AppService struct {
	lister Lister
	logger *zap.Logger
}

// NewAppService creates a new AppService instance.
func NewAppService(lister Lister, logger *zap.Logger) *AppService {
	return &AppService{lister: lister, logger: logger.Named("apps")}
}

// List returns application names in directory order.
func (s *AppService) List(ctx context.Context) ([]string, error) {
	apps, err := s.lister.List(ctx)
	if err != nil {
		s.logger.Warn("listing applications failed", zap.Error(err))
		return nil, err
	}
	s.logger.Debug("listed applications", zap.Int("count", len(apps)))
	return apps, nil
}

// Contains reports whether name is exactly one of the listed applications.
func (s *AppService) Contains(ctx context.Context, name string) (bool, error) {
	apps, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(apps, name), nil
}
