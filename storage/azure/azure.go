// Package azure stores uploads in Azure Blob Storage and signs read URLs
// with a user-delegation SAS, or a shared-key SAS when an account key is
// configured.
package azure

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"

	"github.com/kbukum/speechkit/errors"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/storage"
)

// clockSkew backdates SAS start times.
const clockSkew = 5 * time.Minute

func init() {
	storage.RegisterFactory(storage.ProviderAzure, func(cfg storage.Config, log *logger.Logger) (storage.Storage, error) {
		return New(cfg, log)
	})
}

// Storage implements storage.Storage over one blob container.
type Storage struct {
	client    *azblob.Client
	container *container.Client
	name      string
	sharedKey *azblob.SharedKeyCredential
	log       *logger.Logger
	now       func() time.Time
}

// New connects to the account named in cfg.
func New(cfg storage.Config, log *logger.Logger) (*Storage, error) {
	serviceURL := cfg.Endpoint
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AccountName)
	}

	s := &Storage{name: cfg.Container, log: log.WithComponent("storage.azure"), now: time.Now}

	var err error
	if cfg.AccountKey != "" {
		s.sharedKey, err = azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
		if err != nil {
			return nil, errors.Configuration("storage.account_key", err.Error())
		}
		s.client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, s.sharedKey, nil)
	} else {
		var cred azcore.TokenCredential
		cred, err = credential(cfg)
		if err != nil {
			return nil, errors.Configuration("storage.credentials", err.Error())
		}
		s.client, err = azblob.NewClient(serviceURL, cred, nil)
	}
	if err != nil {
		return nil, errors.Storage("create blob client", err)
	}
	s.container = s.client.ServiceClient().NewContainerClient(cfg.Container)
	return s, nil
}

func credential(cfg storage.Config) (azcore.TokenCredential, error) {
	if cfg.TenantID != "" && cfg.ClientID != "" && cfg.ClientSecret != "" {
		return azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	}
	return azidentity.NewDefaultAzureCredential(nil)
}

// EnsureContainer creates the container when it does not exist.
func (s *Storage) EnsureContainer(ctx context.Context) error {
	_, err := s.container.GetProperties(ctx, nil)
	if err == nil {
		return nil
	}
	if !bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return errors.Storage(fmt.Sprintf("Container '%s' could not be checked", s.name), err)
	}

	s.log.Info("creating blob container", logger.Fields("container", s.name))
	if _, err := s.container.Create(ctx, nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return errors.Storage(fmt.Sprintf("Container '%s' does not exist and could not be created", s.name), err)
	}
	return nil
}

// Upload streams reader into a block blob, overwriting any existing blob.
func (s *Storage) Upload(ctx context.Context, name string, reader io.Reader) error {
	if _, err := s.client.UploadStream(ctx, s.name, name, reader, nil); err != nil {
		return fmt.Errorf("storage: azure upload: %w", err)
	}
	return nil
}

// Delete removes the blob. A missing blob is not an error.
func (s *Storage) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteBlob(ctx, s.name, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("storage: azure delete: %w", err)
	}
	return nil
}

// Exists checks the blob's properties.
func (s *Storage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.container.NewBlobClient(name).GetProperties(ctx, nil)
	switch {
	case err == nil:
		return true, nil
	case bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("storage: azure exists: %w", err)
	}
}

// URL returns the unsigned blob URL.
func (s *Storage) URL(_ context.Context, name string) (string, error) {
	return s.container.NewBlobClient(name).URL(), nil
}

// SignedURL returns a read-only HTTPS SAS URL valid for ttl.
func (s *Storage) SignedURL(ctx context.Context, name string, ttl time.Duration) (string, error) {
	start := s.now().UTC().Add(-clockSkew)
	expiry := s.now().UTC().Add(ttl)
	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		StartTime:     start,
		ExpiryTime:    expiry,
		Permissions:   to.Ptr(sas.BlobPermissions{Read: true}).String(),
		ContainerName: s.name,
		BlobName:      name,
	}

	var (
		params sas.QueryParameters
		err    error
	)
	if s.sharedKey != nil {
		params, err = values.SignWithSharedKey(s.sharedKey)
	} else {
		var udc *service.UserDelegationCredential
		udc, err = s.client.ServiceClient().GetUserDelegationCredential(ctx, service.KeyInfo{
			Start:  to.Ptr(start.Format(sas.TimeFormat)),
			Expiry: to.Ptr(expiry.Format(sas.TimeFormat)),
		}, nil)
		if err != nil {
			return "", fmt.Errorf("storage: user delegation key: %w", err)
		}
		params, err = values.SignWithUserDelegation(udc)
	}
	if err != nil {
		return "", fmt.Errorf("storage: sign blob url: %w", err)
	}

	base, _ := s.URL(ctx, name)
	return base + "?" + params.Encode(), nil
}

var (
	_ storage.Storage           = (*Storage)(nil)
	_ storage.SignedURLProvider = (*Storage)(nil)
	_ storage.ContainerEnsurer  = (*Storage)(nil)
)
