package storefront

import (
	"context"
	"net/url"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/storage"
)

// open resolves the catalog and the medium from the config.
func (s *storefront) open() error {
	switch {
	case s.config.catalog != nil:
		s.catalog = s.config.catalog
	case s.config.catalogPath != "":
		cat, err := catalog.LoadFile(s.config.catalogPath)
		if err != nil {
			return errors.WrapResource("load", "catalog", s.config.catalogPath, err)
		}
		s.catalog = cat
	default:
		cat, err := catalog.Embedded()
		if err != nil {
			return err
		}
		s.catalog = cat
	}

	if s.config.medium != nil {
		s.medium = s.config.medium
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.StorageTimeout)
	defer cancel()

	medium, err := storage.Open(ctx, s.config.storageURL)
	if err != nil {
		return err
	}
	s.medium = medium
	s.logger.Info().Str("storage", redactURL(s.config.storageURL)).Msg("Opened storage")
	return nil
}

// Ping reports whether the persistence medium is reachable.
func (s *storefront) Ping(ctx context.Context) error {
	return storage.Ping(ctx, s.medium)
}

// Close releases the medium when it was opened from a URL.
func (s *storefront) Close() error {
	if s.config.medium != nil {
		return nil
	}
	if err := s.medium.Close(); err != nil {
		return errors.WrapResource("close", "storage", "", err)
	}
	return nil
}

// redactURL hides credentials in a storage URL before it is logged.
func redactURL(raw string) string {
	if raw == "" {
		return constants.DefaultStorageURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid>"
	}
	return u.Redacted()
}
