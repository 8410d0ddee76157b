package gcp

import (
	"context"
	"errors"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ErrCredential indicates that a required secret could not be resolved.
var ErrCredential = errors.New("credential unavailable")

// SecretManagerProvider resolves named secrets through Secret Manager. It
// holds no per-request state and is safe for concurrent use. Values are not
// cached; every Fetch reads the latest version.
type SecretManagerProvider struct {
	client    *secretmanager.Client
	projectID string
}

// NewSecretManagerProvider creates a provider scoped to one project.
func NewSecretManagerProvider(ctx context.Context, projectID string) (*SecretManagerProvider, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a secret manager provider")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &SecretManagerProvider{client: client, projectID: projectID}, nil
}

// Fetch returns the latest version of the named secret.
func (p *SecretManagerProvider) Fetch(ctx context.Context, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.projectID, name),
	}

	resp, err := p.client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: access secret %q: %v", ErrCredential, name, err)
	}

	return string(resp.GetPayload().GetData()), nil
}

// Close releases the underlying client connection.
func (p *SecretManagerProvider) Close() error {
	return p.client.Close()
}
