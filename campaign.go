/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notifystore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/notifystore/datastore"
	"github.com/suparena/notifystore/dispatch"
	"github.com/suparena/notifystore/notification"
)

// CampaignService is the facade callers use to send a campaign. It retrieves
// every persisted notification through the NotificationStore's polymorphic
// read and pushes each one to the sender registered for its variant.
type CampaignService struct {
	store datastore.NotificationStore
	table *dispatch.Table
	log   zerolog.Logger
}

// NewCampaignService builds the dispatch table from the complete sender list
// and returns a ready-to-use service. Sender registration problems (two
// senders for one variant, unknown variant) surface here, before any campaign
// runs.
func NewCampaignService(store datastore.NotificationStore, senders []dispatch.Sender, log zerolog.Logger) (*CampaignService, error) {
	table, err := dispatch.NewTable(senders...)
	if err != nil {
		return nil, err
	}
	return &CampaignService{
		store: store,
		table: table,
		log:   log.With().Str("component", "campaign").Logger(),
	}, nil
}

// SendCampaign retrieves all notifications and dispatches each to its variant's
// sender. The batch aborts on the first routing or delivery failure; the error
// identifies the offending notification.
func (s *CampaignService) SendCampaign(ctx context.Context, name, message string) error {
	batch, err := s.store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notifications: %w", err)
	}
	return s.send(ctx, dispatch.Campaign{Name: name, Message: message}, batch)
}

// SendCampaignSince behaves like SendCampaign but only targets notifications
// created at or after the given time.
func (s *CampaignService) SendCampaignSince(ctx context.Context, name, message string, since time.Time) error {
	batch, err := s.store.FindSince(ctx, since.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to load notifications: %w", err)
	}
	return s.send(ctx, dispatch.Campaign{Name: name, Message: message}, batch)
}

func (s *CampaignService) send(ctx context.Context, campaign dispatch.Campaign, batch []notification.Notification) error {
	s.log.Info().
		Str("campaign", campaign.Name).
		Int("notifications", len(batch)).
		Msg("dispatching campaign")

	if err := s.table.Dispatch(ctx, campaign, batch); err != nil {
		s.log.Error().
			Str("campaign", campaign.Name).
			Err(err).
			Msg("campaign aborted")
		return err
	}

	s.log.Info().
		Str("campaign", campaign.Name).
		Int("notifications", len(batch)).
		Msg("campaign delivered")
	return nil
}
