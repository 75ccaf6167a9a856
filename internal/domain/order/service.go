package order

import (
	"context"
	"fmt"
)

// Service is the read side exposed over REST.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetOrder(ctx context.Context, id string) (Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return o, nil
}
