package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
)

// CreatureService covers per-creature calls that are not part of the paged
// listing: favourite details and the favourite background image.
type CreatureService interface {
	Details(ctx context.Context, id int64) (*models.CreatureDetails, error)
	// ChangeBackground uploads the image file at path as the background of
	// favourite id.
	ChangeBackground(ctx context.Context, id int64, path string) error
	ResetBackground(ctx context.Context, id int64) error
}

type creatureService struct {
	client  api.Client
	session Session
	// encode turns a local file into a data URI.
	encode func(path string) (string, error)
}

func NewCreatureService(client api.Client, session Session) CreatureService {
	return &creatureService{client: client, session: session, encode: models.EncodeImageFile}
}

func (c *creatureService) Details(ctx context.Context, id int64) (*models.CreatureDetails, error) {
	token, err := c.session.ValidToken()
	if err != nil {
		return nil, err
	}
	d, err := c.client.GetCreatureDetails(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("creature details error: %w", err)
	}
	return d, nil
}

func (c *creatureService) ChangeBackground(ctx context.Context, id int64, path string) error {
	token, err := c.session.ValidToken()
	if err != nil {
		return err
	}
	uri, err := c.encode(path)
	if err != nil {
		return err
	}
	if err := c.client.ChangeFavoriteBackground(ctx, token, id, uri); err != nil {
		return fmt.Errorf("change background error: %w", err)
	}
	return nil
}

func (c *creatureService) ResetBackground(ctx context.Context, id int64) error {
	token, err := c.session.ValidToken()
	if err != nil {
		return err
	}
	if err := c.client.ResetFavoriteBackground(ctx, token, id); err != nil {
		return fmt.Errorf("reset background error: %w", err)
	}
	return nil
}
